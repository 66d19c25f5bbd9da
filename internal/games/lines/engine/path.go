package engine

// PathExists reports whether a ball at start can travel to end through
// 4-connected empty cells. The ball's own cell counts as vacated.
//
// Returns false when either coordinate is out of bounds, when start == end,
// when start holds no ball or when end is occupied.
func PathExists(g *Grid, start, end Coord) bool {
	if !g.InBounds(start) || !g.InBounds(end) {
		return false
	}
	if start == end {
		return false
	}
	if !g.Occupied(start) || g.Occupied(end) {
		return false
	}
	return reachable(g, start, end)
}

// reachable runs a breadth-first search from start over empty cells.
// start itself is not required to be empty.
func reachable(g *Grid, start, end Coord) bool {
	visited := make([]bool, g.n*g.n)
	queue := make([]Coord, 0, g.n*g.n)

	queue = append(queue, start)
	visited[g.index(start)] = true

	for head := 0; head < len(queue); head++ {
		p := queue[head]
		if p == end {
			return true
		}

		for _, d := range neighbors {
			next := p.Add(d[0], d[1])
			if !g.InBounds(next) || visited[g.index(next)] || g.Occupied(next) {
				continue
			}
			visited[g.index(next)] = true
			queue = append(queue, next)
		}
	}
	return false
}

// Reachable returns every empty cell a ball at start could move to.
// Useful for highlighting legal targets; start itself is not included.
func Reachable(g *Grid, start Coord) []Coord {
	if !g.InBounds(start) {
		return nil
	}

	visited := make([]bool, g.n*g.n)
	queue := []Coord{start}
	visited[g.index(start)] = true

	var out []Coord
	for head := 0; head < len(queue); head++ {
		p := queue[head]
		if p != start {
			out = append(out, p)
		}
		for _, d := range neighbors {
			next := p.Add(d[0], d[1])
			if !g.InBounds(next) || visited[g.index(next)] || g.Occupied(next) {
				continue
			}
			visited[g.index(next)] = true
			queue = append(queue, next)
		}
	}
	return out
}
