package engine

import (
	"github.com/lixenwraith/vi-timer/display"
	"github.com/lixenwraith/vi-timer/terminal"
)

const pausedSuffix = " paused"

// TextOutput rewrites one status line per frame
type TextOutput struct {
	p      *terminal.Printer
	millis bool
}

// NewTextOutput prints [HH:MM:SS], or [HH:MM:SS:mmm] with millis
func NewTextOutput(p *terminal.Printer, millis bool) *TextOutput {
	return &TextOutput{p: p, millis: millis}
}

// Present overwrites the current line; the final frame ends it
func (o *TextOutput) Present(f Frame) error {
	line := display.Text(f.Value, o.millis)
	if f.Paused {
		line += pausedSuffix
	}
	if err := o.p.Overwrite(line); err != nil {
		return err
	}
	if f.Finished {
		return o.p.Print("\n")
	}
	return nil
}

// BlockOutput prints the 15 glyph rows per frame
type BlockOutput struct {
	p      *terminal.Printer
	mode   display.Mode
	clear  bool
	millis bool

	drawn bool
}

// NewBlockOutput creates a block printer
// With clear set the screen is wiped before the first frame and later frames
// redraw in place from the top-left corner; without it frames scroll
func NewBlockOutput(p *terminal.Printer, mode display.Mode, clear, millis bool) *BlockOutput {
	return &BlockOutput{p: p, mode: mode, clear: clear, millis: millis}
}

// Present prints one frame
func (o *BlockOutput) Present(f Frame) error {
	frame := display.FormatFrame(f.Value, o.mode)
	lines := frame[:]

	if o.millis || f.Paused {
		tail := ""
		if o.millis {
			tail = display.Text(f.Value, true)
		}
		if f.Paused {
			tail += pausedSuffix
		}
		lines = append(lines, tail)
	}

	first := !o.drawn
	o.drawn = true
	return o.p.Frame(lines, o.clear && !first, o.clear && first)
}
