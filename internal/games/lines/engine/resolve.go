package engine

// ResolveMode selects how matched runs are cleared within one pass.
type ResolveMode string

const (
	// ResolveSequential clears each matched window as soon as it is found,
	// so windows checked later in the same pass see earlier clears.
	ResolveSequential ResolveMode = "sequential"

	// ResolveCollect finds every matching window first and clears them together.
	// Every cell of a run of length >= L is cleared.
	ResolveCollect ResolveMode = "collect"
)

// Resolver finds and clears runs of LineLength same-colored balls.
type Resolver struct {
	grid       *Grid
	lineLength int
	mode       ResolveMode
}

// NewResolver creates a resolver bound to the grid.
func NewResolver(g *Grid, lineLength int, mode ResolveMode) *Resolver {
	if mode != ResolveCollect {
		mode = ResolveSequential
	}
	return &Resolver{grid: g, lineLength: lineLength, mode: mode}
}

// Mode returns the clearing mode in use.
func (r *Resolver) Mode() ResolveMode {
	return r.mode
}

// Resolve clears all matched runs and reports whether any were cleared.
func (r *Resolver) Resolve() bool {
	return r.ResolveCount() > 0
}

// ResolveCount clears all matched runs and returns how many windows matched.
//
// Anchors are scanned row by row; at each anchor the window to the right is
// tested before the window below.
func (r *Resolver) ResolveCount() int {
	if r.lineLength <= 0 || r.lineLength > r.grid.n {
		return 0
	}

	var pending []Coord
	found := 0

	n := r.grid.n
	for row := range n {
		for col := range n {
			anchor := At(row, col)
			for _, dir := range [2][2]int{{0, 1}, {1, 0}} {
				if !r.matches(anchor, dir[0], dir[1]) {
					continue
				}
				found++
				if r.mode == ResolveSequential {
					r.clearWindow(anchor, dir[0], dir[1])
					continue
				}
				for k := range r.lineLength {
					pending = append(pending, anchor.Add(dir[0]*k, dir[1]*k))
				}
			}
		}
	}

	for _, c := range pending {
		r.grid.Clear(c)
	}
	return found
}

// matches reports whether the window of lineLength cells starting at anchor
// in direction (dr, dc) holds balls of one color.
func (r *Resolver) matches(anchor Coord, dr, dc int) bool {
	g := r.grid
	last := anchor.Add(dr*(r.lineLength-1), dc*(r.lineLength-1))
	if !g.InBounds(last) || !g.Occupied(anchor) {
		return false
	}

	color := g.ColorAt(anchor)
	for k := 1; k < r.lineLength; k++ {
		c := anchor.Add(dr*k, dc*k)
		if !g.Occupied(c) || g.ColorAt(c) != color {
			return false
		}
	}
	return true
}

func (r *Resolver) clearWindow(anchor Coord, dr, dc int) {
	for k := range r.lineLength {
		r.grid.Clear(anchor.Add(dr*k, dc*k))
	}
}

// HasRun reports whether the grid currently contains any matching window.
// It does not modify the grid.
func (r *Resolver) HasRun() bool {
	n := r.grid.n
	for row := range n {
		for col := range n {
			if r.matches(At(row, col), 0, 1) || r.matches(At(row, col), 1, 0) {
				return true
			}
		}
	}
	return false
}
