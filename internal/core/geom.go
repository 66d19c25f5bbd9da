// Package core holds the platform-neutral pieces shared by the game and the
// terminal front end: the screen buffer, input frames, geometry and colors.
// Nothing here imports Bubble Tea.
package core

// Point is a terminal cell position, X to the right and Y down.
type Point struct {
	X, Y int
}

// Rect is a box of cells with its top-left corner at (X, Y).
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks r by d cells on every side. The result never has a
// negative size.
func (r Rect) Inset(d int) Rect {
	return Rect{
		X: r.X + d,
		Y: r.Y + d,
		W: max(r.W-2*d, 0),
		H: max(r.H-2*d, 0),
	}
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
