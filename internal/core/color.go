package core

// Color represents a foreground color for a span of log text.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for log segments and HUD elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightBlue
	ColorOrange
	ColorGray
)
