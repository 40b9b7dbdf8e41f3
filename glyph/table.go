package glyph

import "strings"

// lit marks which of the three columns are drawn within a band
type lit [Cols]bool

var (
	none   = lit{}
	full   = lit{true, true, true}
	sides  = lit{true, false, true}
	left   = lit{true, false, false}
	right  = lit{false, false, true}
	center = lit{false, true, false}
)

// shape lists band patterns top to bottom: top, upper, middle, lower, bottom
type shape [bandCount]lit

var shapes = map[Symbol]shape{
	0:     {full, sides, sides, sides, full},
	1:     {right, right, right, right, right},
	2:     {full, right, full, left, full},
	3:     {full, right, full, right, full},
	4:     {sides, sides, full, right, right},
	5:     {full, left, full, right, full},
	6:     {full, left, full, sides, full},
	7:     {full, right, right, right, right},
	8:     {full, sides, full, sides, full},
	9:     {full, sides, full, right, full},
	Error: {full, left, full, left, full},
	Colon: {none, none, center, none, none},
	Blank: {none, none, none, none, none},
}

// table holds every glyph, built once at init
var table map[Symbol]Glyph

func init() {
	table = make(map[Symbol]Glyph, len(shapes))
	for sym, sh := range shapes {
		table[sym] = build(sym, sh)
	}
}

func build(sym Symbol, sh shape) Glyph {
	on := Cell(strings.Repeat(string(sym.Char()), CellWidth))

	var g Glyph
	for r := 0; r < Rows; r++ {
		band := sh[r/bandHeight]
		for c := 0; c < Cols; c++ {
			if band[c] {
				g[r][c] = on
			} else {
				g[r][c] = BlankCell
			}
		}
	}
	return g
}
