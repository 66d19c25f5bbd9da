// Package lines adapts the Lines rule engine to the terminal platform:
// it maps clicks and keys onto grid cells, keeps the tally of lines and
// moves, and draws the board into the screen buffer.
package lines

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lines/internal/config"
	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/games/lines/engine"
	"github.com/vovakirdan/tui-lines/internal/games/lines/layouts"
	"github.com/vovakirdan/tui-lines/internal/registry"
)

// Mode selects how completed lines are cleared.
type Mode string

const (
	ModeClassic Mode = "classic" // Runs cleared anchor by anchor
	ModeStrict  Mode = "strict"  // Every cell of every run cleared at once
)

// Game implements registry.Game for Lines.
type Game struct {
	mode Mode
	ctrl *engine.Controller
	seed int64
	tick uint64

	layout string // ID of the starting layout, empty for a random deal

	cursor engine.Coord
	lines  int
	moves  int
	last   engine.Outcome

	screenW int
	screenH int

	gameOver bool
	paused   bool
	tooSmall bool
}

// Package-level variables for config
var (
	configPath string
	layoutPath string
	logger     = log.New(io.Discard)
)

// SetConfigPath sets the rules file used by the next Reset.
// An empty path uses the default search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetLayoutPath sets a starting layout file used instead of the random
// initial deal. An empty path deals randomly.
func SetLayoutPath(path string) {
	layoutPath = path
}

// SetLogger routes game events to l. A nil logger disables logging.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// New creates a classic Lines game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewStrict creates a Lines game that clears whole runs.
func NewStrict() *Game {
	return &Game{mode: ModeStrict}
}

func init() {
	registry.Register("lines", func() registry.Game {
		return New()
	})
	registry.Register("lines_strict", func() registry.Game {
		return NewStrict()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeStrict {
		return "lines_strict"
	}
	return "lines"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeStrict {
		return "Lines (Strict)"
	}
	return "Lines"
}

// Description summarizes how the variant clears lines.
func (g *Game) Description() string {
	if g.mode == ModeStrict {
		return "Every ball of a finished run disappears"
	}
	return "Runs clear five at a time; a run of six leaves one ball"
}

// Reset loads the rules and deals a fresh board, or sets up the starting
// layout when one is configured.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	rules := g.loadRules()

	if layoutPath != "" {
		layout, fitted, err := loadLayout(layoutPath, rules)
		if err == nil {
			g.start(cfg, fitted, layout.ToGrid())
			g.layout = layout.ID
			logger.Info("layout loaded", "id", layout.ID, "name", layout.Name)
			return
		}
		logger.Error("could not load layout, dealing randomly", "path", layoutPath, "error", err)
	}

	g.Start(cfg, rules)
}

// loadLayout reads a layout file and adapts rules to it.
func loadLayout(path string, rules engine.Rules) (layouts.Layout, engine.Rules, error) {
	layout, err := layouts.LoadPath(path)
	if err != nil {
		return layouts.Layout{}, rules, err
	}
	fitted, err := layout.Fit(rules)
	if err != nil {
		return layouts.Layout{}, rules, err
	}
	return layout, fitted, nil
}

// Start deals a fresh random board with the given rules. The mode
// overrides the resolve setting of rules.
func (g *Game) Start(cfg core.RuntimeConfig, rules engine.Rules) {
	g.start(cfg, rules, nil)
}

// start sets up a board. A nil grid is dealt randomly; otherwise play
// continues from grid as given.
func (g *Game) start(cfg core.RuntimeConfig, rules engine.Rules, grid *engine.Grid) {
	switch g.mode {
	case ModeStrict:
		rules.Resolve = engine.ResolveCollect
	default:
		rules.Resolve = engine.ResolveSequential
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if grid != nil {
		g.ctrl = engine.NewWithGrid(rules, grid, rng)
	} else {
		g.ctrl = engine.New(rules, rng)
	}

	g.seed = cfg.Seed
	g.layout = ""
	g.tick = 0
	g.cursor = engine.At(rules.Size/2, rules.Size/2)
	g.lines = 0
	g.moves = 0
	g.last = engine.Outcome{}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.gameOver = g.ctrl.Full()
	g.paused = false

	g.checkScreenSize()

	logger.Info("new game", "variant", g.ID(), "seed", cfg.Seed,
		"size", rules.Size, "colors", rules.Colors, "resolve", rules.Resolve)
}

// loadRules reads the configured rules, falling back to the defaults.
func (g *Game) loadRules() engine.Rules {
	cfg, err := config.LoadLines(configPath)
	if err != nil {
		logger.Error("could not load rules, using defaults", "path", configPath, "error", err)
		cfg = config.DefaultLinesConfig()
	}
	return cfg.EngineRules()
}

// checkScreenSize checks if the screen can hold the board and HUD.
func (g *Game) checkScreenSize() {
	w, h := boardSize(g.ctrl.Grid().Size())
	g.tooSmall = g.screenW < w+2 || g.screenH < hudHeight+h+1
}

// Resize adapts the layout to a new screen size and keeps the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Step applies the input of one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
		logger.Debug("pause", "paused", g.paused)
	}

	if g.paused || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	var event string
	n := g.ctrl.Grid().Size()

	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, n-1)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, n-1)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, n-1)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, n-1)
	}

	if in.Has(core.ActionCancel) {
		if sel, ok := g.ctrl.Selection(); ok {
			event = g.click(sel)
		}
	}

	if in.Has(core.ActionConfirm) {
		event = g.click(g.cursor)
	}

	for _, p := range in.Clicks {
		if g.gameOver {
			break
		}
		c := g.CellAt(p.X, p.Y)
		if g.ctrl.Grid().InBounds(c) {
			g.cursor = c
		}
		event = g.click(c)
	}

	return core.StepResult{State: g.State(), Event: event}
}

// click forwards one click to the controller and updates the tally.
func (g *Game) click(c engine.Coord) string {
	if g.gameOver {
		return ""
	}

	out := g.ctrl.HandleClick(c)
	g.last = out

	switch out.Kind {
	case engine.OutcomeIgnored:
		logger.Debug("click ignored", "cell", c)
		return ""
	case engine.OutcomeSelected:
		logger.Debug("ball selected", "cell", c)
	case engine.OutcomeDeselected:
		logger.Debug("ball deselected", "cell", c)
	case engine.OutcomeRejected:
		logger.Debug("move rejected", "from", out.From, "to", out.To)
	case engine.OutcomeMoved:
		g.moves++
		g.lines += out.Lines
		logger.Debug("ball moved", "from", out.From, "to", out.To)
		if out.Cleared {
			logger.Info("lines cleared", "count", out.Lines, "total", g.lines)
		}
		if out.SpawnFailed {
			logger.Warn("not enough free cells to spawn", "free", g.ctrl.Grid().CountEmpty())
		}
		if g.ctrl.Full() {
			g.gameOver = true
			logger.Info("board full", "lines", g.lines, "moves", g.moves)
		}
	}

	return describe(out)
}

// describe renders an outcome as a short status line.
func describe(out engine.Outcome) string {
	switch out.Kind {
	case engine.OutcomeSelected:
		return fmt.Sprintf("selected %s", out.To)
	case engine.OutcomeDeselected:
		return "selection dropped"
	case engine.OutcomeRejected:
		return fmt.Sprintf("no path to %s", out.To)
	case engine.OutcomeMoved:
		if out.Cleared {
			return fmt.Sprintf("%s -> %s, %d line(s)", out.From, out.To, out.Lines)
		}
		return fmt.Sprintf("%s -> %s", out.From, out.To)
	}
	return ""
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.lines,
		Moves:    g.moves,
		Balls:    g.balls(),
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// balls counts occupied cells.
func (g *Game) balls() int {
	if g.ctrl == nil {
		return 0
	}
	n := g.ctrl.Grid().Size()
	return n*n - g.ctrl.Grid().CountEmpty()
}

// LayoutID returns the ID of the starting layout, or "" for a random deal.
func (g *Game) LayoutID() string {
	return g.layout
}

// Cursor returns the keyboard cursor cell.
func (g *Game) Cursor() engine.Coord {
	return g.cursor
}
