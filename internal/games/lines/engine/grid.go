package engine

// Grid is a fixed-size square board of cells.
// Cells are stored in row-major order: index = row*N + col.
type Grid struct {
	n     int
	cells []Cell
}

// GridView is the read-only surface of a grid handed to renderers.
type GridView interface {
	Size() int
	InBounds(c Coord) bool
	Occupied(c Coord) bool
	ColorAt(c Coord) Color
	CountEmpty() int
}

var _ GridView = (*Grid)(nil)

// NewGrid creates an empty n×n grid.
func NewGrid(n int) *Grid {
	if n < 0 {
		n = 0
	}
	return &Grid{
		n:     n,
		cells: make([]Cell, n*n),
	}
}

// Size returns the grid dimension N.
func (g *Grid) Size() int {
	return g.n
}

func (g *Grid) index(c Coord) int {
	return c.Row*g.n + c.Col
}

// InBounds returns true if the coordinate lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.n && c.Col >= 0 && c.Col < g.n
}

// Get returns the cell at c, or an empty cell when out of bounds.
func (g *Grid) Get(c Coord) Cell {
	if !g.InBounds(c) {
		return Empty()
	}
	return g.cells[g.index(c)]
}

// Occupied reports whether c holds a ball.
// Out-of-bounds coordinates report false; callers are expected to check bounds.
func (g *Grid) Occupied(c Coord) bool {
	return g.Get(c).Occupied
}

// ColorAt returns the ball color at c. Only meaningful when Occupied(c).
func (g *Grid) ColorAt(c Coord) Color {
	cell := g.Get(c)
	if !cell.Occupied {
		return 0
	}
	return cell.Color
}

// Place puts a ball of the given color at c, overwriting any prior content.
// Emptiness of the target is the caller's rule to enforce.
func (g *Grid) Place(c Coord, color Color) {
	if g.InBounds(c) {
		g.cells[g.index(c)] = Ball(color)
	}
}

// Clear empties the cell at c.
func (g *Grid) Clear(c Coord) {
	if g.InBounds(c) {
		g.cells[g.index(c)] = Empty()
	}
}

// CountEmpty returns the number of unoccupied cells.
func (g *Grid) CountEmpty() int {
	return len(g.cells) - g.CountOccupied()
}

// CountOccupied returns the number of cells holding a ball.
func (g *Grid) CountOccupied() int {
	count := 0
	for _, cell := range g.cells {
		if cell.Occupied {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{n: g.n, cells: cells}
}

// Equal returns true if both grids have the same size and contents.
// Colors of empty cells are ignored.
func (g *Grid) Equal(other *Grid) bool {
	if g.n != other.n {
		return false
	}
	for i, cell := range g.cells {
		o := other.cells[i]
		if cell.Occupied != o.Occupied {
			return false
		}
		if cell.Occupied && cell.Color != o.Color {
			return false
		}
	}
	return true
}

// Rows returns a copy of the board as a matrix of colors, 0 meaning empty.
func (g *Grid) Rows() [][]Color {
	rows := make([][]Color, g.n)
	for r := range g.n {
		rows[r] = make([]Color, g.n)
		for c := range g.n {
			rows[r][c] = g.ColorAt(At(r, c))
		}
	}
	return rows
}
