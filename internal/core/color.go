package core

// Color is the foreground of a screen cell. The platform turns each value
// into an ANSI color; the engine only names them.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed           // errors, clock under 10s
	ColorGreen         // won clock, freshly written digit
	ColorYellow        // warnings
	ColorMagenta       // hint line
	ColorCyan          // shifted neighbours
	ColorWhite         // filled slot
	ColorBrightRed     // search window that did not match
	ColorBrightGreen   // matching window, level cleared
	ColorBrightYellow  // board cursor
	ColorBrightCyan    // title
	ColorOrange        // vacated slot after delete
	ColorGray          // empty slots, indices, secondary text
)
