package terminal

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// PausePrompt is printed by WaitKey
const PausePrompt = "Press any key to continue..."

// WaitKey prints prompt and blocks until one key is pressed
// When in is a terminal it is switched to raw mode for the read so that no
// Enter is needed; otherwise a whole line is consumed
func WaitKey(in *os.File, p *Printer, prompt string) error {
	if err := p.Print(prompt); err != nil {
		return errors.Wrap(err, "write prompt")
	}

	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		_, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return errors.Wrap(err, "read line")
		}
		return p.Print("\n")
	}

	old, err := term.MakeRaw(fd)
	if err != nil {
		return errors.Wrap(err, "enter raw mode")
	}
	defer term.Restore(fd, old)

	buf := make([]byte, 1)
	if _, err := in.Read(buf); err != nil && err != io.EOF {
		return errors.Wrap(err, "read key")
	}
	return p.Print("\r\n")
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
