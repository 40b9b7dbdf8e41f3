// Package glyph draws decimal digits and separators as large block glyphs.
//
// Every glyph is a grid of Rows x Cols cells, each cell CellWidth characters
// wide. A lit cell repeats the symbol's character ("7777"), an unlit one is
// blank. Printing the same row of several glyphs side by side, for every row,
// reconstructs a large seven-segment style display.
package glyph

import (
	"errors"
	"fmt"
	"strings"
)

// Grid geometry
const (
	Rows      = 15
	Cols      = 3
	CellWidth = 4

	// RowWidth is the printed width of one glyph row
	RowWidth = Cols * CellWidth

	// rows per horizontal band: top, upper, middle, lower, bottom
	bandHeight = 3
	bandCount  = Rows / bandHeight
)

// ErrRowRange is returned when a row index falls outside 0..Rows-1
var ErrRowRange = errors.New("glyph row out of range")

// Symbol identifies a renderable glyph; digits use their own value
type Symbol uint8

// Non-digit symbols keep their historical numbering; anything not listed
// renders as Error
const (
	Blank Symbol = 10
	Error Symbol = 11
	Colon Symbol = 13
)

// Cell is one fixed-width glyph cell
type Cell string

// BlankCell is the unlit cell
const BlankCell Cell = "    "

// Glyph is an immutable Rows x Cols grid of cells
type Glyph [Rows][Cols]Cell

// Row returns row r of the glyph with its cells joined
func (g Glyph) Row(r int) (string, error) {
	if r < 0 || r >= Rows {
		return "", fmt.Errorf("%w: %d", ErrRowRange, r)
	}
	var sb strings.Builder
	sb.Grow(RowWidth)
	for _, c := range g[r] {
		sb.WriteString(string(c))
	}
	return sb.String(), nil
}

// IsDigit reports whether s is one of 0-9
func (s Symbol) IsDigit() bool {
	return s <= 9
}

// Char returns the character a lit cell of s is made of
func (s Symbol) Char() byte {
	switch {
	case s.IsDigit():
		return '0' + byte(s)
	case s == Colon:
		return ':'
	case s == Blank:
		return ' '
	default:
		return 'E'
	}
}

// String returns a readable symbol name
func (s Symbol) String() string {
	switch {
	case s.IsDigit():
		return string(s.Char())
	case s == Colon:
		return "COLON"
	case s == Blank:
		return "BLANK"
	default:
		return "ERROR"
	}
}

// Render returns the glyph for sym; unknown symbols fall back to the Error glyph
func Render(sym Symbol) Glyph {
	if g, ok := table[sym]; ok {
		return g
	}
	return table[Error]
}

// RenderRow returns row r of sym's glyph joined into one string
func RenderRow(sym Symbol, r int) (string, error) {
	return Render(sym).Row(r)
}

// Split separates a two-digit field into tens and units digits
// Values outside 0..99 cannot be shown in two cells and yield (Error, Error)
func Split(value int) (tens, units Symbol) {
	if value < 0 || value > 99 {
		return Error, Error
	}
	return Symbol(value / 10), Symbol(value % 10)
}
