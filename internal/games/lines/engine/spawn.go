package engine

// Source is the random number capability the spawner draws from.
// *math/rand.Rand satisfies it.
type Source interface {
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

// Spawner places randomly colored balls on random empty cells.
type Spawner struct {
	grid   *Grid
	colors int
	rng    Source
}

// NewSpawner creates a spawner drawing colors 1..colors from rng.
func NewSpawner(g *Grid, colors int, rng Source) *Spawner {
	return &Spawner{grid: g, colors: colors, rng: rng}
}

// TrySpawn places count balls. If fewer than count cells are empty it places
// nothing and returns false; the board is never partially filled.
func (s *Spawner) TrySpawn(count int) bool {
	if count <= 0 {
		return true
	}
	if s.grid.CountEmpty() < count || s.colors <= 0 {
		return false
	}

	n := s.grid.n
	placed := 0
	for placed < count {
		c := At(s.rng.Intn(n), s.rng.Intn(n))
		if s.grid.Occupied(c) {
			continue
		}
		s.grid.Place(c, Color(s.rng.Intn(s.colors)+1))
		placed++
	}
	return true
}
