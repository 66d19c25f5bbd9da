package engine_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-lines/internal/games/lines/engine"
)

// quietRules returns default rules that spawn nothing after a move,
// so tests can observe the move in isolation.
func quietRules() engine.Rules {
	r := engine.DefaultRules()
	r.BallsPerMove = 0
	return r
}

func newController(t *testing.T, rules engine.Rules, g *engine.Grid) *engine.Controller {
	t.Helper()
	return engine.NewWithGrid(rules, g, rand.New(rand.NewSource(1)))
}

func snapshotGrid(v engine.GridView) *engine.Grid {
	g := engine.NewGrid(v.Size())
	for r := range v.Size() {
		for c := range v.Size() {
			p := engine.At(r, c)
			if v.Occupied(p) {
				g.Place(p, v.ColorAt(p))
			}
		}
	}
	return g
}

func TestNewSeedsInitialBalls(t *testing.T) {
	c := engine.New(engine.DefaultRules(), rand.New(rand.NewSource(5)))

	if got := 81 - c.Grid().CountEmpty(); got != 5 {
		t.Errorf("initial balls = %d, expected 5", got)
	}
	if _, ok := c.Selection(); ok {
		t.Error("new controller should start idle")
	}
}

func TestNewCheckedRejectsBadRules(t *testing.T) {
	r := engine.DefaultRules()
	r.LineLength = 12

	_, err := engine.NewChecked(r, rand.New(rand.NewSource(1)))
	if !errors.Is(err, engine.ErrInvalidRules) {
		t.Errorf("NewChecked error = %v, expected ErrInvalidRules", err)
	}
}

func TestRulesValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *engine.Rules)
		valid  bool
	}{
		{"defaults", func(r *engine.Rules) {}, true},
		{"empty resolve mode", func(r *engine.Rules) { r.Resolve = "" }, true},
		{"collect mode", func(r *engine.Rules) { r.Resolve = engine.ResolveCollect }, true},
		{"tiny board", func(r *engine.Rules) { r.Size = 1 }, false},
		{"no colors", func(r *engine.Rules) { r.Colors = 0 }, false},
		{"line longer than board", func(r *engine.Rules) { r.LineLength = 10 }, false},
		{"too many initial balls", func(r *engine.Rules) { r.InitialBalls = 82 }, false},
		{"negative spawn", func(r *engine.Rules) { r.BallsPerMove = -1 }, false},
		{"unknown mode", func(r *engine.Rules) { r.Resolve = "greedy" }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := engine.DefaultRules()
			tc.modify(&r)
			err := r.Validate()
			if tc.valid && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.valid && err == nil {
				t.Error("Validate() = nil, expected error")
			}
		})
	}
}

func TestClickTransitions(t *testing.T) {
	g := engine.NewGrid(9)
	g.Place(engine.At(0, 0), 1)
	g.Place(engine.At(5, 5), 2)
	c := newController(t, quietRules(), g)

	// Idle + empty cell: ignored
	if out := c.HandleClick(engine.At(3, 3)); out.Kind != engine.OutcomeIgnored {
		t.Errorf("click on empty while idle = %v, expected ignored", out.Kind)
	}

	// Idle + occupied: selected
	if out := c.HandleClick(engine.At(0, 0)); out.Kind != engine.OutcomeSelected {
		t.Fatalf("click on ball = %v, expected selected", out.Kind)
	}
	if sel, ok := c.Selection(); !ok || sel != engine.At(0, 0) {
		t.Fatalf("Selection() = %v,%v, expected (0,0),true", sel, ok)
	}

	// Selected + another ball: rejected, selection unchanged
	out := c.HandleClick(engine.At(5, 5))
	if out.Kind != engine.OutcomeRejected {
		t.Errorf("click on second ball = %v, expected rejected", out.Kind)
	}
	if sel, _ := c.Selection(); sel != engine.At(0, 0) {
		t.Errorf("selection moved to %v, expected (0,0)", sel)
	}

	// Selected + same cell: deselected
	if out := c.HandleClick(engine.At(0, 0)); out.Kind != engine.OutcomeDeselected {
		t.Errorf("click on selected ball = %v, expected deselected", out.Kind)
	}
	if _, ok := c.Selection(); ok {
		t.Error("selection should be cleared")
	}
}

func TestClickOutOfBoundsIgnored(t *testing.T) {
	g := engine.NewGrid(9)
	g.Place(engine.At(0, 0), 1)
	c := newController(t, quietRules(), g)
	c.HandleClick(engine.At(0, 0))
	before := g.Clone()

	for _, p := range []engine.Coord{engine.At(-1, 0), engine.At(9, 9), engine.At(0, 42)} {
		if out := c.HandleClick(p); out.Kind != engine.OutcomeIgnored {
			t.Errorf("click at %v = %v, expected ignored", p, out.Kind)
		}
	}
	if !g.Equal(before) {
		t.Error("out-of-bounds clicks modified the grid")
	}
	if sel, ok := c.Selection(); !ok || sel != engine.At(0, 0) {
		t.Error("out-of-bounds clicks changed the selection")
	}
}

func TestMoveSucceeds(t *testing.T) {
	g := engine.NewGrid(9)
	g.Place(engine.At(0, 0), 3)
	g.Place(engine.At(4, 4), 1)
	c := newController(t, quietRules(), g)
	before := g.CountOccupied()

	c.HandleClick(engine.At(0, 0))
	out := c.HandleClick(engine.At(8, 8))

	if out.Kind != engine.OutcomeMoved {
		t.Fatalf("move outcome = %v, expected moved", out.Kind)
	}
	if out.From != engine.At(0, 0) || out.To != engine.At(8, 8) {
		t.Errorf("outcome from/to = %v/%v", out.From, out.To)
	}
	if out.Cleared {
		t.Error("no line should have been cleared")
	}
	if g.Occupied(engine.At(0, 0)) {
		t.Error("origin should be empty after the move")
	}
	if g.ColorAt(engine.At(8, 8)) != 3 {
		t.Errorf("target color = %d, expected 3", g.ColorAt(engine.At(8, 8)))
	}
	if g.CountOccupied() != before {
		t.Errorf("ball count changed from %d to %d", before, g.CountOccupied())
	}
	if _, ok := c.Selection(); ok {
		t.Error("selection should be cleared after a move")
	}
}

func TestMoveSpawnsAfterwards(t *testing.T) {
	g := engine.NewGrid(9)
	g.Place(engine.At(0, 0), 3)
	c := newController(t, engine.DefaultRules(), g)

	c.HandleClick(engine.At(0, 0))
	out := c.HandleClick(engine.At(0, 1))
	if out.Kind != engine.OutcomeMoved {
		t.Fatalf("move outcome = %v, expected moved", out.Kind)
	}
	if out.SpawnFailed {
		t.Error("spawn should succeed on an open board")
	}
	if got := g.CountOccupied(); got != 3 {
		t.Errorf("CountOccupied() = %d, expected 3", got)
	}
}

func TestMoveBlockedByWall(t *testing.T) {
	g := engine.NewGrid(9)
	for r := range 9 {
		g.Place(engine.At(r, 4), engine.Color(r%5+1))
	}
	g.Place(engine.At(0, 0), 2)
	c := newController(t, engine.DefaultRules(), g)
	before := g.Clone()

	c.HandleClick(engine.At(0, 0))
	out := c.HandleClick(engine.At(0, 8))

	if out.Kind != engine.OutcomeRejected {
		t.Errorf("move across wall = %v, expected rejected", out.Kind)
	}
	if !g.Equal(before) {
		t.Error("rejected move modified the grid")
	}
	if sel, ok := c.Selection(); !ok || sel != engine.At(0, 0) {
		t.Error("rejected move should keep the selection")
	}
}

func TestMoveCompletesLine(t *testing.T) {
	g := engine.NewGrid(9)
	for col := range 4 {
		g.Place(engine.At(0, col), 3)
	}
	g.Place(engine.At(5, 4), 3)
	c := newController(t, quietRules(), g)

	c.HandleClick(engine.At(5, 4))
	out := c.HandleClick(engine.At(0, 4))

	if out.Kind != engine.OutcomeMoved || !out.Cleared {
		t.Fatalf("outcome = %+v, expected moved with cleared line", out)
	}
	if out.Lines != 1 {
		t.Errorf("Lines = %d, expected 1", out.Lines)
	}
	if g.CountOccupied() != 0 {
		t.Errorf("CountOccupied() = %d, expected 0", g.CountOccupied())
	}
}

func TestMoveReportsSpawnStarvation(t *testing.T) {
	rules := engine.Rules{
		Size:         4,
		Colors:       3,
		LineLength:   4,
		BallsPerMove: 3,
		Resolve:      engine.ResolveSequential,
	}
	g := engine.NewGrid(4)
	for r := range 4 {
		for col := range 4 {
			g.Place(engine.At(r, col), engine.Color((r+col)%3+1))
		}
	}
	g.Clear(engine.At(3, 2))
	g.Clear(engine.At(3, 3))
	c := newController(t, rules, g)

	c.HandleClick(engine.At(3, 1))
	out := c.HandleClick(engine.At(3, 3))

	if out.Kind != engine.OutcomeMoved {
		t.Fatalf("outcome = %v, expected moved", out.Kind)
	}
	if !out.SpawnFailed {
		t.Error("expected SpawnFailed with two empty cells and three to spawn")
	}
	if g.CountEmpty() != 2 {
		t.Errorf("CountEmpty() = %d, expected 2", g.CountEmpty())
	}
}

func TestSelectAndMoveToIntents(t *testing.T) {
	g := engine.NewGrid(9)
	g.Place(engine.At(2, 2), 4)
	c := newController(t, quietRules(), g)

	if c.Select(engine.At(1, 1)) {
		t.Error("Select on empty cell should fail")
	}
	if out := c.MoveTo(engine.At(1, 1)); out.Kind != engine.OutcomeIgnored {
		t.Errorf("MoveTo without selection = %v, expected ignored", out.Kind)
	}
	if !c.Select(engine.At(2, 2)) {
		t.Fatal("Select on ball should succeed")
	}
	if c.Select(engine.At(2, 2)) {
		t.Error("Select while already selected should fail")
	}
	if len(c.Reachable()) != 80 {
		t.Errorf("Reachable() = %d cells, expected 80", len(c.Reachable()))
	}
	if out := c.MoveTo(engine.At(1, 1)); out.Kind != engine.OutcomeMoved {
		t.Errorf("MoveTo = %v, expected moved", out.Kind)
	}
}

func TestControllerDeterministic(t *testing.T) {
	play := func() *engine.Grid {
		c := engine.New(engine.DefaultRules(), rand.New(rand.NewSource(2024)))
		for r := range 9 {
			for col := range 9 {
				c.HandleClick(engine.At(r, col))
				c.HandleClick(engine.At(8-r, 8-col))
			}
		}
		return snapshotGrid(c.Grid())
	}

	if !play().Equal(play()) {
		t.Error("same seed and clicks produced different boards")
	}
}
