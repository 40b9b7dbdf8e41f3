package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-timer/display"
	"github.com/lixenwraith/vi-timer/engine"
	"github.com/lixenwraith/vi-timer/status"
	"github.com/lixenwraith/vi-timer/timer"
)

const (
	simWidth  = 120
	simHeight = 30
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(simWidth, simHeight)
	t.Cleanup(s.Fini)
	return s
}

type fakeToggle struct{ paused bool }

func (f *fakeToggle) Toggle() bool {
	f.paused = !f.paused
	return f.paused
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func rowText(s tcell.Screen, y int) string {
	var sb strings.Builder
	for x := 0; x < simWidth; x++ {
		sb.WriteRune(runeAt(s, x, y))
	}
	return sb.String()
}

func TestViewDrawsCenteredGlyphs(t *testing.T) {
	s := newSimScreen(t)
	v := NewView(s, display.Long, false, nil, nil)

	require.NoError(t, v.Present(engine.Frame{Value: timer.Value{Hours: 1}}))

	x0 := (simWidth - display.LineWidth(display.Long)) / 2
	y0 := (simHeight - 15 - 2) / 2

	// Tens of hours is a zero: full top band
	for x := x0; x < x0+12; x++ {
		assert.Equal(t, '0', runeAt(s, x, y0), "x=%d", x)
	}
	// Units of hours is a one: right column only
	assert.Equal(t, ' ', runeAt(s, x0+12+3, y0))
	assert.Equal(t, '1', runeAt(s, x0+12+3+8, y0))

	// Colon centre cell in the middle band only
	colonX := x0 + 27 + 4
	assert.Equal(t, ' ', runeAt(s, colonX, y0+5))
	assert.Equal(t, ':', runeAt(s, colonX, y0+6))
	assert.Equal(t, ':', runeAt(s, colonX, y0+8))
	assert.Equal(t, ' ', runeAt(s, colonX, y0+9))

	assert.Contains(t, rowText(s, y0+16), "[01:00:00]")
}

func TestViewStatusLine(t *testing.T) {
	s := newSimScreen(t)
	reg := status.NewRegistry()
	reg.Strings.Get(status.KeyMode).Store("precise")
	reg.Ints.Get(status.KeyRefreshes).Store(12)

	v := NewView(s, display.Short, true, reg, nil)
	require.NoError(t, v.Present(engine.Frame{Value: timer.Value{Minutes: 2, Seconds: 5, Milliseconds: 300}}))

	y0 := (simHeight - 15 - 2) / 2
	line := rowText(s, y0+16)
	assert.Contains(t, line, "[00:02:05:300]")
	assert.Contains(t, line, "mode=precise")
	assert.Contains(t, line, "refreshes=12")
}

func TestViewKeys(t *testing.T) {
	s := newSimScreen(t)
	tg := &fakeToggle{}
	v := NewView(s, display.Short, false, nil, tg)
	require.NoError(t, v.Present(engine.Frame{}))

	assert.False(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)))
	assert.True(t, tg.paused)
	assert.True(t, v.last.Paused)

	assert.False(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	assert.False(t, tg.paused)
	assert.False(t, v.last.Paused)

	assert.False(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))

	assert.True(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
}

func TestViewFinishedFrameWaitsForAnyKey(t *testing.T) {
	s := newSimScreen(t)
	tg := &fakeToggle{}
	v := NewView(s, display.Short, false, nil, tg)

	require.NoError(t, v.Present(engine.Frame{Direction: timer.Down, Finished: true}))

	// Resizes keep the finished frame up
	s.SetSize(100, 25)
	assert.False(t, v.HandleEvent(tcell.NewEventResize(100, 25)))

	x0 := (100 - display.LineWidth(display.Short)) / 2
	y0 := (25 - 15 - 2) / 2
	_, _, style, _ := s.GetContent(x0, y0)
	fg, _, _ := style.Decompose()
	assert.Equal(t, RgbFinished, fg)

	assert.True(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)))
	assert.False(t, tg.paused, "keys after the finish only dismiss")
}

func TestViewPauseWithoutToggler(t *testing.T) {
	s := newSimScreen(t)
	v := NewView(s, display.Short, false, nil, nil)

	assert.NotPanics(t, func() {
		v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone))
	})
}

func TestViewResizeRedraws(t *testing.T) {
	s := newSimScreen(t)
	v := NewView(s, display.Short, false, nil, nil)
	require.NoError(t, v.Present(engine.Frame{Value: timer.Value{Minutes: 8}}))

	s.SetSize(80, 20)
	assert.False(t, v.HandleEvent(tcell.NewEventResize(80, 20)))
	assert.Equal(t, 80, v.width)
	assert.Equal(t, 20, v.height)

	x0 := (80 - display.LineWidth(display.Short)) / 2
	y0 := (20 - 15 - 2) / 2
	// Tens of minutes is zero
	assert.Equal(t, '0', runeAt(s, x0, y0))
}
