package terminal

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
)

// ErrPromptAborted is returned when the user interrupts the prompt
var ErrPromptAborted = errors.New("prompt aborted")

// Prompter reads a line of input
type Prompter interface {
	Readline() (string, error)
	Close() error
}

// NewDurationPrompter creates an interactive readline prompter with history
// kept only for the session
func NewDurationPrompter(prompt string) (Prompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, errors.Wrap(err, "init readline")
	}
	return rl, nil
}

// PromptDuration asks until parse accepts a non-empty answer
// parse errors are shown and the question repeated
func PromptDuration(pr Prompter, p *Printer, parse func(string) error) (string, error) {
	for {
		line, err := pr.Readline()
		if err == readline.ErrInterrupt {
			return "", ErrPromptAborted
		}
		if err != nil {
			return "", errors.Wrap(ErrPromptAborted, err.Error())
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := parse(line); err != nil {
			p.Print(err.Error() + "\n")
			continue
		}
		return line, nil
	}
}
