package engine

// OutcomeKind classifies the effect of a click.
type OutcomeKind int

const (
	OutcomeIgnored    OutcomeKind = iota // Out of bounds, or empty cell with nothing selected
	OutcomeSelected                      // A ball became selected
	OutcomeDeselected                    // The selected ball was clicked again
	OutcomeMoved                         // The selected ball moved; lines resolved, balls spawned
	OutcomeRejected                      // Move refused: target occupied or unreachable
)

// String returns a human-readable name for the outcome.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeSelected:
		return "selected"
	case OutcomeDeselected:
		return "deselected"
	case OutcomeMoved:
		return "moved"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Outcome describes what a click did.
type Outcome struct {
	Kind OutcomeKind
	From Coord // Selected cell before the click (moves and rejections)
	To   Coord // Clicked cell

	Cleared     bool // A move cleared at least one line
	Lines       int  // Number of windows cleared by the move
	SpawnFailed bool // Not enough empty cells for the post-move spawn
}

// Controller owns the grid and the current selection and runs the
// move → resolve → spawn cycle.
type Controller struct {
	rules    Rules
	grid     *Grid
	resolver *Resolver
	spawner  *Spawner

	selected    Coord
	hasSelected bool
}

// New creates a controller with an empty grid seeded by one spawn of
// rules.InitialBalls. Rules are used as given; see NewChecked.
func New(rules Rules, rng Source) *Controller {
	g := NewGrid(rules.Size)
	c := &Controller{
		rules:    rules,
		grid:     g,
		resolver: NewResolver(g, rules.LineLength, rules.Resolve),
		spawner:  NewSpawner(g, rules.Colors, rng),
	}
	c.spawner.TrySpawn(rules.InitialBalls)
	return c
}

// NewChecked validates rules before creating the controller.
func NewChecked(rules Rules, rng Source) (*Controller, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return New(rules, rng), nil
}

// NewWithGrid creates a controller around an existing grid without seeding.
// The grid size overrides rules.Size.
func NewWithGrid(rules Rules, g *Grid, rng Source) *Controller {
	rules.Size = g.Size()
	return &Controller{
		rules:    rules,
		grid:     g,
		resolver: NewResolver(g, rules.LineLength, rules.Resolve),
		spawner:  NewSpawner(g, rules.Colors, rng),
	}
}

// Rules returns the rule set in use.
func (c *Controller) Rules() Rules {
	return c.rules
}

// Grid returns a read-only view of the board.
func (c *Controller) Grid() GridView {
	return c.grid
}

// Selection returns the selected cell, if any.
func (c *Controller) Selection() (Coord, bool) {
	return c.selected, c.hasSelected
}

// Full reports whether no empty cell remains.
func (c *Controller) Full() bool {
	return c.grid.CountEmpty() == 0
}

// Select makes the ball at p the selection. Only succeeds from the idle
// state on an occupied, in-bounds cell.
func (c *Controller) Select(p Coord) bool {
	if c.hasSelected || !c.grid.InBounds(p) || !c.grid.Occupied(p) {
		return false
	}
	c.selected = p
	c.hasSelected = true
	return true
}

// Deselect clears the selection. Returns false if nothing was selected.
func (c *Controller) Deselect() bool {
	if !c.hasSelected {
		return false
	}
	c.hasSelected = false
	c.selected = Coord{}
	return true
}

// MoveTo moves the selected ball to p when a path exists, then resolves
// lines and spawns new balls. The selection is kept when the move is refused.
func (c *Controller) MoveTo(p Coord) Outcome {
	out := Outcome{Kind: OutcomeRejected, From: c.selected, To: p}
	if !c.hasSelected {
		out.Kind = OutcomeIgnored
		return out
	}
	if !PathExists(c.grid, c.selected, p) {
		return out
	}

	color := c.grid.ColorAt(c.selected)
	c.grid.Clear(c.selected)
	c.grid.Place(p, color)

	out.Kind = OutcomeMoved
	out.Lines = c.resolver.ResolveCount()
	out.Cleared = out.Lines > 0
	out.SpawnFailed = !c.spawner.TrySpawn(c.rules.BallsPerMove)

	c.Deselect()
	return out
}

// HandleClick applies one click at p to the selection state machine.
func (c *Controller) HandleClick(p Coord) Outcome {
	if !c.grid.InBounds(p) {
		return Outcome{Kind: OutcomeIgnored, From: c.selected, To: p}
	}

	if !c.hasSelected {
		if c.Select(p) {
			return Outcome{Kind: OutcomeSelected, To: p}
		}
		return Outcome{Kind: OutcomeIgnored, To: p}
	}

	if p == c.selected {
		from := c.selected
		c.Deselect()
		return Outcome{Kind: OutcomeDeselected, From: from, To: p}
	}

	return c.MoveTo(p)
}

// Reachable returns the cells the selected ball could move to.
func (c *Controller) Reachable() []Coord {
	if !c.hasSelected {
		return nil
	}
	return Reachable(c.grid, c.selected)
}
