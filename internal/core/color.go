package core

// Color is a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

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
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray
)

// Fade dims a color by opacity. Distant objects drawn with a low alpha
// fall back to grays so they read as far away on a terminal.
func Fade(c Color, alpha float64) Color {
	switch {
	case alpha >= 0.6:
		return c
	case alpha >= 0.3:
		return ColorGray
	default:
		return ColorDarkGray
	}
}
