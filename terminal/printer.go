package terminal

import (
	"bufio"
	"io"
	"sync"
)

// Printer writes to an underlying stream and flushes after every call, so
// partial lines such as a carriage-return status show up immediately
type Printer struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// NewPrinter wraps w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: bufio.NewWriterSize(w, 16384)}
}

// Print writes s and flushes
func (p *Printer) Print(s string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.w.WriteString(s); err != nil {
		return err
	}
	return p.w.Flush()
}

// Overwrite returns to column zero, writes s and clears the rest of the line
func (p *Printer) Overwrite(s string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.w.WriteByte('\r')
	p.w.WriteString(s)
	p.w.Write(csiEraseLine)
	return p.w.Flush()
}

// Frame writes lines, one per row, as a single flush
// With home set the cursor first moves to the top-left corner so each frame
// replaces the previous one; clear additionally wipes the screen first
func (p *Printer) Frame(lines []string, home, clear bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case clear:
		p.w.Write(csiClear)
	case home:
		p.w.Write(csiHome)
	}
	for _, line := range lines {
		p.w.WriteString(line)
		p.w.Write(csiEraseLine)
		p.w.WriteByte('\n')
	}
	return p.w.Flush()
}

// HideCursor hides the cursor until ShowCursor
func (p *Printer) HideCursor() error {
	return p.Print(string(csiCursorHide))
}

// ShowCursor restores the cursor
func (p *Printer) ShowCursor() error {
	return p.Print(string(csiCursorShow))
}
