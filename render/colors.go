package render

import "github.com/gdamore/tcell/v2"

// Full-screen palette
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbDigits     = tcell.NewRGBColor(0, 200, 0)     // Normal Green
	RgbPaused     = tcell.NewRGBColor(255, 255, 0)   // Bright Yellow
	RgbFinished   = tcell.NewRGBColor(255, 80, 80)   // Normal Red
	RgbStatusBar  = tcell.NewRGBColor(180, 180, 180) // Brighter gray
)
