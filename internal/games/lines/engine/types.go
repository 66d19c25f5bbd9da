// Package engine implements the board state and rules of the Lines puzzle:
// grid storage, reachability checks, line clearing, ball spawning and the
// selection state machine. It is UI-agnostic and deterministic given a
// random source.
package engine

import "fmt"

// Color identifies a ball color. Valid palette colors are 1..K;
// zero is never placed on the grid.
type Color uint8

// Cell represents a single grid cell.
type Cell struct {
	Occupied bool  // Whether the cell holds a ball
	Color    Color // Valid only when Occupied is true
}

// Empty returns an unoccupied cell.
func Empty() Cell {
	return Cell{}
}

// Ball returns an occupied cell with the given color.
func Ball(c Color) Cell {
	return Cell{Occupied: true, Color: c}
}

// Coord is a grid position. Row grows downward, Col grows to the right.
type Coord struct {
	Row int
	Col int
}

// At is a convenience constructor for Coord.
func At(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns a new Coord offset by (dr, dc).
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// neighbors lists the 4-connected offsets: down, up, right, left.
var neighbors = [4][2]int{
	{1, 0},
	{-1, 0},
	{0, 1},
	{0, -1},
}
