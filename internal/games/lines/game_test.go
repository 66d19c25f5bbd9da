package lines

import (
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/games/lines/engine"
	"github.com/vovakirdan/tui-lines/internal/registry"
)

var testConfig = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 7}

// newBoardGame builds a game around a fixed board. Rows use digits for ball
// colors and '.' for empty cells.
func newBoardGame(t *testing.T, mode Mode, rules engine.Rules, rows ...string) *Game {
	t.Helper()

	grid := engine.NewGrid(len(rows))
	for r, line := range rows {
		if len(line) != len(rows) {
			t.Fatalf("row %d has %d cells, want %d", r, len(line), len(rows))
		}
		for c, ch := range line {
			if ch != '.' {
				grid.Place(engine.At(r, c), engine.Color(ch-'0'))
			}
		}
	}

	g := &Game{mode: mode}
	g.Start(testConfig, rules)

	rules.Resolve = engine.ResolveSequential
	if mode == ModeStrict {
		rules.Resolve = engine.ResolveCollect
	}
	g.ctrl = engine.NewWithGrid(rules, grid, rand.New(rand.NewSource(1)))
	g.cursor = engine.At(0, 0)
	g.gameOver = g.ctrl.Full()
	g.checkScreenSize()
	return g
}

// quietRules spawns nothing so boards stay exactly as built.
func quietRules() engine.Rules {
	r := engine.DefaultRules()
	r.InitialBalls = 0
	r.BallsPerMove = 0
	return r
}

func emptyRows(n int) []string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = strings.Repeat(".", n)
	}
	return rows
}

// clickCell presses the mouse over the ball position of c.
func clickCell(g *Game, c engine.Coord) core.StepResult {
	px, py := g.cellOrigin(c)
	frame := core.NewInputFrame()
	frame.Click(px+cellWidth/2, py+1)
	return g.Step(frame)
}

func press(g *Game, actions ...core.Action) core.StepResult {
	frame := core.NewInputFrame()
	for _, a := range actions {
		frame.Set(a)
	}
	return g.Step(frame)
}

func TestVariantsRegistered(t *testing.T) {
	tests := []struct {
		id    string
		title string
	}{
		{"lines", "Lines"},
		{"lines_strict", "Lines (Strict)"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			g, err := registry.Create(tt.id)
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", tt.id, err)
			}
			if g.ID() != tt.id || g.Title() != tt.title {
				t.Errorf("got %q/%q, want %q/%q", g.ID(), g.Title(), tt.id, tt.title)
			}
		})
	}
}

func TestResetDealsInitialBalls(t *testing.T) {
	g := New()
	g.Reset(testConfig)

	snap := g.Snapshot()
	if len(snap.Board) != engine.DefaultSize {
		t.Fatalf("board has %d rows, want %d", len(snap.Board), engine.DefaultSize)
	}
	if got := g.State().Balls; got != engine.DefaultInitialBalls {
		t.Errorf("Balls = %d, want %d", got, engine.DefaultInitialBalls)
	}
	if snap.Free != engine.DefaultSize*engine.DefaultSize-engine.DefaultInitialBalls {
		t.Errorf("Free = %d", snap.Free)
	}
	if snap.State != StatePlaying {
		t.Errorf("State = %s, want %s", snap.State, StatePlaying)
	}
}

func TestDeterminism(t *testing.T) {
	play := func() Snapshot {
		g := New()
		g.Reset(testConfig)
		for i := 0; i < 40; i++ {
			frame := core.NewInputFrame()
			switch i % 4 {
			case 0:
				frame.Set(core.ActionRight)
			case 1:
				frame.Set(core.ActionDown)
			default:
				frame.Set(core.ActionConfirm)
			}
			g.Step(frame)
		}
		return g.Snapshot()
	}

	a, b := play(), play()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and input produced different games:\n%+v\n%+v", a, b)
	}
}

func TestCellAtMapsEveryCell(t *testing.T) {
	g := New()
	g.Reset(testConfig)
	n := g.ctrl.Grid().Size()

	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			c := engine.At(row, col)
			px, py := g.cellOrigin(c)
			for dx := 0; dx < cellWidth; dx++ {
				if got := g.CellAt(px+dx, py+1); got != c {
					t.Fatalf("CellAt(%d,%d) = %s, want %s", px+dx, py+1, got, c)
				}
			}
		}
	}

	bx, by := g.origin()
	outside := []core.Point{
		{X: bx - 1, Y: by + 1},
		{X: bx + 1, Y: by - 1},
		{X: bx + n*cellWidth + 1, Y: by + 1},
		{X: bx + 1, Y: by + n*cellHeight + 1},
	}
	for _, p := range outside {
		if c := g.CellAt(p.X, p.Y); g.ctrl.Grid().InBounds(c) {
			t.Errorf("CellAt(%d,%d) = %s, want out of bounds", p.X, p.Y, c)
		}
	}
}

func TestMouseMove(t *testing.T) {
	rows := emptyRows(9)
	rows[0] = "3........"
	g := newBoardGame(t, ModeClassic, quietRules(), rows...)

	clickCell(g, engine.At(0, 0))
	if sel, ok := g.ctrl.Selection(); !ok || sel != engine.At(0, 0) {
		t.Fatalf("selection = %v,%v, want (0,0)", sel, ok)
	}

	res := clickCell(g, engine.At(4, 4))
	if res.State.Moves != 1 {
		t.Errorf("Moves = %d, want 1", res.State.Moves)
	}
	if res.Event == "" {
		t.Error("expected a move event")
	}
	grid := g.ctrl.Grid()
	if grid.Occupied(engine.At(0, 0)) || grid.ColorAt(engine.At(4, 4)) != 3 {
		t.Error("ball did not move to (4,4)")
	}
	if _, ok := g.ctrl.Selection(); ok {
		t.Error("selection should be cleared after a move")
	}
	if g.Cursor() != engine.At(4, 4) {
		t.Errorf("cursor = %s, want it to follow the click", g.Cursor())
	}
}

func TestClickOutsideBoardIgnored(t *testing.T) {
	rows := emptyRows(9)
	rows[0] = "3........"
	g := newBoardGame(t, ModeClassic, quietRules(), rows...)
	before := g.Snapshot()

	frame := core.NewInputFrame()
	frame.Click(0, 0)
	res := g.Step(frame)

	if res.Event != "" {
		t.Errorf("Event = %q, want none", res.Event)
	}
	after := g.Snapshot()
	if !reflect.DeepEqual(before.Board, after.Board) || after.HasSelect {
		t.Error("click outside the board changed the game")
	}
}

func TestKeyboardMove(t *testing.T) {
	rows := emptyRows(9)
	rows[0] = "5........"
	g := newBoardGame(t, ModeClassic, quietRules(), rows...)

	press(g, core.ActionConfirm)
	if _, ok := g.ctrl.Selection(); !ok {
		t.Fatal("Confirm on a ball should select it")
	}

	press(g, core.ActionDown)
	press(g, core.ActionRight)
	press(g, core.ActionConfirm)

	if g.ctrl.Grid().ColorAt(engine.At(1, 1)) != 5 {
		t.Error("ball did not move to the cursor cell")
	}
	if g.State().Moves != 1 {
		t.Errorf("Moves = %d, want 1", g.State().Moves)
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	g := newBoardGame(t, ModeClassic, quietRules(), emptyRows(9)...)

	for i := 0; i < 3; i++ {
		press(g, core.ActionUp)
		press(g, core.ActionLeft)
	}
	if g.Cursor() != engine.At(0, 0) {
		t.Errorf("cursor = %s, want (0,0)", g.Cursor())
	}

	for i := 0; i < 20; i++ {
		press(g, core.ActionDown)
		press(g, core.ActionRight)
	}
	if g.Cursor() != engine.At(8, 8) {
		t.Errorf("cursor = %s, want (8,8)", g.Cursor())
	}
}

func TestCancelDropsSelection(t *testing.T) {
	rows := emptyRows(9)
	rows[2] = "..4......"
	g := newBoardGame(t, ModeClassic, quietRules(), rows...)

	clickCell(g, engine.At(2, 2))
	res := press(g, core.ActionCancel)

	if _, ok := g.ctrl.Selection(); ok {
		t.Error("Cancel should drop the selection")
	}
	if res.Event != "selection dropped" {
		t.Errorf("Event = %q", res.Event)
	}
}

func TestBlockedMoveRejected(t *testing.T) {
	g := newBoardGame(t, ModeClassic, quietRules(),
		"1.2......",
		"22.......",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
	)

	clickCell(g, engine.At(0, 0))
	res := clickCell(g, engine.At(5, 5))

	if res.State.Moves != 0 {
		t.Errorf("Moves = %d, want 0", res.State.Moves)
	}
	if sel, ok := g.ctrl.Selection(); !ok || sel != engine.At(0, 0) {
		t.Error("selection should stay on the walled-in ball")
	}
	if !strings.HasPrefix(res.Event, "no path") {
		t.Errorf("Event = %q", res.Event)
	}
}

func TestLineClearing(t *testing.T) {
	tests := []struct {
		name      string
		mode      Mode
		wantLines int
		wantLeft  int
	}{
		{"classic leaves the sixth ball", ModeClassic, 1, 1},
		{"strict clears the whole run", ModeStrict, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := emptyRows(9)
			rows[0] = "2222.2..."
			rows[1] = "....2...."
			g := newBoardGame(t, tt.mode, quietRules(), rows...)

			clickCell(g, engine.At(1, 4))
			res := clickCell(g, engine.At(0, 4))

			if res.State.Score != tt.wantLines {
				t.Errorf("Score = %d, want %d", res.State.Score, tt.wantLines)
			}
			if res.State.Balls != tt.wantLeft {
				t.Errorf("Balls = %d, want %d", res.State.Balls, tt.wantLeft)
			}
		})
	}
}

func TestBoardFullEndsGame(t *testing.T) {
	rules := engine.Rules{Size: 3, Colors: 2, LineLength: 3, BallsPerMove: 1}
	g := newBoardGame(t, ModeClassic, rules,
		"121",
		"212",
		"12.",
	)
	g.screenW, g.screenH = 40, 12
	g.checkScreenSize()

	clickCell(g, engine.At(2, 1))
	res := clickCell(g, engine.At(2, 2))

	if !res.State.GameOver {
		t.Fatal("expected game over on a full board")
	}
	if res.State.Balls != 9 || res.State.Moves != 1 {
		t.Errorf("state = %+v", res.State)
	}
	if g.Snapshot().State != StateBoardFull {
		t.Errorf("Snapshot state = %s", g.Snapshot().State)
	}

	res = clickCell(g, engine.At(0, 0))
	if res.State.Moves != 1 || res.Event != "" {
		t.Error("input after game over should be ignored")
	}
}

func TestPauseBlocksInput(t *testing.T) {
	rows := emptyRows(9)
	rows[0] = "1........"
	g := newBoardGame(t, ModeClassic, quietRules(), rows...)

	res := press(g, core.ActionPause)
	if !res.State.Paused {
		t.Fatal("expected paused state")
	}

	press(g, core.ActionConfirm)
	if _, ok := g.ctrl.Selection(); ok {
		t.Error("input while paused should be ignored")
	}

	res = press(g, core.ActionPause)
	if res.State.Paused {
		t.Error("second pause should resume")
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 1})

	if !g.State().Paused {
		t.Error("small window should pause the game")
	}
	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("Snapshot state = %s", g.Snapshot().State)
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected a resize hint")
	}
}

func TestRenderBoard(t *testing.T) {
	rows := emptyRows(9)
	rows[3] = "...1.2..."
	g := newBoardGame(t, ModeClassic, quietRules(), rows...)
	clickCell(g, engine.At(3, 3))

	screen := core.NewScreen(testConfig.ScreenW, testConfig.ScreenH)
	g.Render(screen)

	if got := strings.Count(screen.String(), string(ballChar)); got != 2 {
		t.Errorf("rendered %d balls, want 2", got)
	}
	if !strings.Contains(screen.Row(1), "Lines: 0") {
		t.Errorf("HUD row = %q", screen.Row(1))
	}

	px, py := g.cellOrigin(engine.At(3, 3))
	ball := screen.GetCell(px+cellWidth/2, py+1)
	if ball.Color != core.PaletteColor(1) || !ball.Highlight {
		t.Errorf("selected ball cell = %+v", ball)
	}
	px, py = g.cellOrigin(engine.At(3, 5))
	if c := screen.GetCell(px+cellWidth/2, py+1); c.Color != core.PaletteColor(2) || c.Highlight {
		t.Errorf("unselected ball cell = %+v", c)
	}
	if got := strings.Count(screen.String(), string(hintChar)); got != 81-2 {
		t.Errorf("marked %d reachable cells, want %d", got, 81-2)
	}
}

func TestSetConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.yaml")
	data := "board:\n  size: 7\n  colors: 3\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := NewStrict()
	g.Reset(testConfig)

	if n := g.ctrl.Grid().Size(); n != 7 {
		t.Errorf("board size = %d, want 7", n)
	}
	if got := g.ctrl.Rules().Resolve; got != engine.ResolveCollect {
		t.Errorf("Resolve = %s, want %s", got, engine.ResolveCollect)
	}
}

func TestBrokenConfigFallsBack(t *testing.T) {
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.Reset(testConfig)

	if n := g.ctrl.Grid().Size(); n != engine.DefaultSize {
		t.Errorf("board size = %d, want default %d", n, engine.DefaultSize)
	}
}

func TestLayoutStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "almost.yaml")
	data := `id: almost
rows:
  - "1111..."
  - "....1.."
  - "......."
  - "......."
  - "......."
  - "......."
  - "......6"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	SetLayoutPath(path)
	t.Cleanup(func() { SetLayoutPath("") })

	g := New()
	g.Reset(testConfig)

	snap := g.Snapshot()
	if len(snap.Board) != 7 || snap.Free != 49-6 {
		t.Fatalf("layout not applied: size %d, free %d", len(snap.Board), snap.Free)
	}
	if g.LayoutID() != "almost" {
		t.Errorf("LayoutID() = %q, want almost", g.LayoutID())
	}
	if g.ctrl.Rules().Colors != 6 {
		t.Errorf("palette should grow to the layout colors, got %d", g.ctrl.Rules().Colors)
	}

	clickCell(g, engine.At(1, 4))
	res := clickCell(g, engine.At(0, 4))
	if res.State.Score != 1 {
		t.Errorf("Score = %d, want the prepared line cleared", res.State.Score)
	}
}

func TestBrokenLayoutDealsRandomly(t *testing.T) {
	SetLayoutPath(filepath.Join(t.TempDir(), "missing.yaml"))
	t.Cleanup(func() { SetLayoutPath("") })

	g := New()
	g.Reset(testConfig)

	if got := g.State().Balls; got != engine.DefaultInitialBalls {
		t.Errorf("Balls = %d, want a random deal of %d", got, engine.DefaultInitialBalls)
	}
}
