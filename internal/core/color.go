package core

// Color is a logical foreground color for a screen cell. The TUI maps each
// value to a terminal style, so games never deal with escape codes.
type Color uint8

// Palette used by the duel boards and HUD.
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
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray

	// ColorTarget marks tiles at or above the match target. Rendered bold.
	ColorTarget
)
