// Package display composes timer readings into printable lines.
package display

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lixenwraith/vi-timer/glyph"
	"github.com/lixenwraith/vi-timer/timer"
)

// DigitGap separates the two digits of one field
const DigitGap = "   "

// ErrUnknownMode is returned by ParseMode
var ErrUnknownMode = errors.New("unknown display mode")

// Mode selects how many fields a block line carries
type Mode uint8

const (
	// Short shows minutes:seconds
	Short Mode = iota
	// Long shows hours:minutes:seconds
	Long
)

// String returns the lowercase mode name
func (m Mode) String() string {
	if m == Long {
		return "long"
	}
	return "short"
}

// ParseMode accepts "short" or "long", case-insensitive
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "short":
		return Short, nil
	case "long":
		return Long, nil
	}
	return Long, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Source is anything that can report a reading; both timers qualify
type Source interface {
	Value() timer.Value
}

// fields returns the values shown for mode, most significant first
func fields(v timer.Value, mode Mode) []int {
	if mode == Long {
		return []int{v.Hours, v.Minutes, v.Seconds}
	}
	return []int{v.Minutes, v.Seconds}
}

// LineWidth returns the printed width of one row for mode
func LineWidth(mode Mode) int {
	n := len(fields(timer.Value{}, mode))
	perField := 2*glyph.RowWidth + len(DigitGap)
	return n*perField + (n-1)*glyph.RowWidth
}

// FormatRow builds output row `row` (0-14) of the block display for v
func FormatRow(v timer.Value, row int, mode Mode) (string, error) {
	if row < 0 || row >= glyph.Rows {
		return "", fmt.Errorf("%w: %d", glyph.ErrRowRange, row)
	}

	fs := fields(v, mode)
	colon, _ := glyph.RenderRow(glyph.Colon, row)

	var sb strings.Builder
	sb.Grow(LineWidth(mode))
	for i, f := range fs {
		tens, units := glyph.Split(f)

		r, _ := glyph.RenderRow(tens, row)
		sb.WriteString(r)
		sb.WriteString(DigitGap)
		r, _ = glyph.RenderRow(units, row)
		sb.WriteString(r)

		if i < len(fs)-1 {
			sb.WriteString(colon)
		}
	}
	return sb.String(), nil
}

// FormatTimerRow formats row `row` of src's current reading
func FormatTimerRow(src Source, row int, mode Mode) (string, error) {
	return FormatRow(src.Value(), row, mode)
}

// FormatFrame builds every row of the block display for v
func FormatFrame(v timer.Value, mode Mode) [glyph.Rows]string {
	var frame [glyph.Rows]string
	for r := range frame {
		// Row indices here are always in range
		frame[r], _ = FormatRow(v, r, mode)
	}
	return frame
}

// Text renders v as [HH:MM:SS], or [HH:MM:SS:mmm] with millis
func Text(v timer.Value, millis bool) string {
	if millis {
		return v.TextMillis()
	}
	return v.Text()
}
