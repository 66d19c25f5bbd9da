package lines

import "github.com/vovakirdan/tui-lines/internal/games/lines/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateBoardFull   GameStateType = "board_full"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Seed      int64
	Board     [][]engine.Color // 0 marks an empty cell
	Selected  engine.Coord
	HasSelect bool
	Cursor    engine.Coord
	Lines     int
	Moves     int
	Free      int
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateBoardFull
	case g.paused:
		state = StatePaused
	}

	sel, ok := g.ctrl.Selection()
	grid := g.ctrl.Grid()
	n := grid.Size()
	board := make([][]engine.Color, n)
	for row := range board {
		board[row] = make([]engine.Color, n)
		for col := range board[row] {
			board[row][col] = grid.ColorAt(engine.At(row, col))
		}
	}

	return Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Seed:      g.seed,
		Board:     board,
		Selected:  sel,
		HasSelect: ok,
		Cursor:    g.cursor,
		Lines:     g.lines,
		Moves:     g.moves,
		Free:      grid.CountEmpty(),
		State:     state,
	}
}
