// Package render draws timer frames on a full tcell screen and turns key
// presses into pause and quit requests.
package render

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/vi-timer/display"
	"github.com/lixenwraith/vi-timer/engine"
	"github.com/lixenwraith/vi-timer/glyph"
	"github.com/lixenwraith/vi-timer/status"
	"github.com/lixenwraith/vi-timer/terminal"
)

// Toggler is the pause control the view drives; clock.Pausable satisfies it
type Toggler interface {
	Toggle() bool
}

// View is an engine.Output that owns a tcell screen
// Present and HandleEvent may run on different goroutines
type View struct {
	mu     sync.Mutex
	screen tcell.Screen
	width  int
	height int

	mode   display.Mode
	millis bool
	status *status.Registry
	pause  Toggler

	last     engine.Frame
	hasFrame bool
}

// NewView wraps an initialized screen
// pause may be nil, in which case pause keys are ignored
func NewView(screen tcell.Screen, mode display.Mode, millis bool, reg *status.Registry, pause Toggler) *View {
	v := &View{
		screen: screen,
		mode:   mode,
		millis: millis,
		status: reg,
		pause:  pause,
	}
	v.width, v.height = screen.Size()
	screen.HideCursor()
	return v
}

// NewScreen creates and initializes the terminal screen
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

// Present draws f and keeps it for redraws on resize
func (v *View) Present(f engine.Frame) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.last = f
	v.hasFrame = true
	v.draw()
	return nil
}

// HandleEvent applies one screen event and reports whether the user asked to quit
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		// A finished countdown stays on screen until any key
		if v.finished() {
			return true
		}
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return true
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q', 'Q':
				return true
			case ' ', 'p', 'P':
				v.togglePause()
			}
		}

	case *tcell.EventResize:
		v.mu.Lock()
		v.width, v.height = v.screen.Size()
		v.screen.Sync()
		if v.hasFrame {
			v.draw()
		}
		v.mu.Unlock()
	}
	return false
}

// Listen polls screen events until a quit key, then calls cancel
// PollEvent returns nil once the screen is finalized, which ends the loop
func (v *View) Listen(ctx context.Context, cancel context.CancelFunc) {
	terminal.Go(func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil || ctx.Err() != nil {
				return
			}
			if v.HandleEvent(ev) {
				cancel()
				return
			}
		}
	})
}

// Close restores the terminal
func (v *View) Close() {
	v.screen.Fini()
}

func (v *View) finished() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.hasFrame && v.last.Finished
}

func (v *View) togglePause() {
	if v.pause == nil {
		return
	}
	paused := v.pause.Toggle()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.hasFrame {
		v.last.Paused = paused
		v.draw()
	}
}

// draw renders the last frame centered with a status line below
// Caller holds mu
func (v *View) draw() {
	bg := tcell.StyleDefault.Background(RgbBackground)
	v.screen.Fill(' ', bg)

	fg := RgbDigits
	switch {
	case v.last.Finished:
		fg = RgbFinished
	case v.last.Paused:
		fg = RgbPaused
	}
	digitStyle := bg.Foreground(fg)

	frame := display.FormatFrame(v.last.Value, v.mode)
	frameWidth := runewidth.StringWidth(frame[0])
	x0 := max((v.width-frameWidth)/2, 0)
	y0 := max((v.height-glyph.Rows-2)/2, 0)

	for i, line := range frame {
		v.drawText(x0, y0+i, line, digitStyle)
	}

	statusLine := display.Text(v.last.Value, v.millis)
	if v.status != nil {
		statusLine += "  " + v.status.Line()
	}
	sx := max((v.width-runewidth.StringWidth(statusLine))/2, 0)
	v.drawText(sx, y0+glyph.Rows+1, statusLine, bg.Foreground(RgbStatusBar))

	v.screen.Show()
}

// drawText writes s from (x, y), clipping at the screen edge
func (v *View) drawText(x, y int, s string, style tcell.Style) {
	if y < 0 || y >= v.height {
		return
	}
	for _, ch := range s {
		if x >= v.width {
			return
		}
		v.screen.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
}
