package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI color.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)

// Palette lists the ball colors in display order.
// Index 0 is used for ball color 1.
var Palette = []Color{
	ColorRed,
	ColorGreen,
	ColorBlue,
	ColorYellow,
	ColorMagenta,
	ColorCyan,
	ColorOrange,
	ColorWhite,
}

// PaletteColor returns the screen color for a 1-based ball color.
// Colors beyond the palette wrap around.
func PaletteColor(ball int) Color {
	if ball <= 0 {
		return ColorDefault
	}
	return Palette[(ball-1)%len(Palette)]
}
