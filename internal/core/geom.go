// Package core provides the screen buffer and small shared types used by
// the heist engine and the terminal platform. It imports nothing outside
// the standard library, so the engine never depends on Bubble Tea.
package core

// Rect is an axis-aligned box on the screen.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle at (x, y) with the given size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// CenterX returns the column in the middle of r.
func (r Rect) CenterX() int {
	return r.X + r.W/2
}

// Row lays out n boxes of w by h side by side starting at (x, y).
func Row(x, y, w, h, n int) []Rect {
	if n <= 0 {
		return nil
	}
	cells := make([]Rect, n)
	for i := range cells {
		cells[i] = NewRect(x+i*w, y, w, h)
	}
	return cells
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
