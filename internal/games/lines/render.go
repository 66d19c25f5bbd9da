package lines

import (
	"fmt"

	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/games/lines/engine"
)

const (
	cellWidth  = 4 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3

	ballChar = '●'
	hintChar = '·'
)

// boardSize returns the on-screen size of an n×n board with borders.
func boardSize(n int) (w, h int) {
	return n*cellWidth + 1, n*cellHeight + 1
}

// origin returns the top-left corner of the board on screen.
func (g *Game) origin() (x, y int) {
	w, _ := boardSize(g.ctrl.Grid().Size())
	return (g.screenW - w) / 2, hudHeight
}

// CellAt maps a screen position to a grid cell. Positions left of or above
// the board yield negative coordinates; the engine ignores them like any
// other out-of-range cell. Border lines belong to the cell below/right.
func (g *Game) CellAt(x, y int) engine.Coord {
	bx, by := g.origin()
	return engine.At(floorDiv(y-by, cellHeight), floorDiv(x-bx, cellWidth))
}

// cellOrigin returns the screen position of the top-left border corner of c.
func (g *Game) cellOrigin(c engine.Coord) (x, y int) {
	bx, by := g.origin()
	return bx + c.Col*cellWidth, by + c.Row*cellHeight
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// Render draws the board, HUD and overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := boardSize(g.ctrl.Grid().Size())
	dst.DrawTextCentered(g.screenH/2, "Window too small")
	dst.DrawTextCentered(g.screenH/2+1, fmt.Sprintf("Need %dx%d", w+2, hudHeight+h+1))
}

// renderHUD draws the title and tallies above the board.
func (g *Game) renderHUD(dst *core.Screen) {
	bx, _ := g.origin()
	w, _ := boardSize(g.ctrl.Grid().Size())

	dst.DrawTextCentered(0, g.Title())

	left := fmt.Sprintf("Lines: %d  Moves: %d", g.lines, g.moves)
	dst.DrawText(bx, 1, left)

	right := fmt.Sprintf("Free: %d", g.ctrl.Grid().CountEmpty())
	dst.DrawText(bx+w-len(right), 1, right)

	if sel, ok := g.ctrl.Selection(); ok {
		dst.DrawText(bx, 2, "Selected "+sel.String())
	} else if msg := describe(g.last); msg != "" {
		dst.DrawText(bx, 2, msg)
	}
}

// renderBoard draws the grid lines, balls, selection and cursor. While a
// ball is selected, the cells it can reach are marked.
func (g *Game) renderBoard(dst *core.Screen) {
	grid := g.ctrl.Grid()
	n := grid.Size()
	bx, by := g.origin()

	for row := 0; row <= n; row++ {
		for col := 0; col <= n; col++ {
			px := bx + col*cellWidth
			py := by + row*cellHeight
			dst.SetColor(px, py, junction(row, col, n), core.ColorGray)

			if col < n {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}
			if row < n {
				dst.SetColor(px, py+1, '│', core.ColorGray)
			}
		}
	}

	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			c := engine.At(row, col)
			if !grid.Occupied(c) {
				continue
			}
			px, py := g.cellOrigin(c)
			dst.SetColor(px+cellWidth/2, py+1, ballChar, core.PaletteColor(int(grid.ColorAt(c))))
		}
	}

	if sel, ok := g.ctrl.Selection(); ok {
		for _, c := range g.ctrl.Reachable() {
			px, py := g.cellOrigin(c)
			dst.SetColor(px+cellWidth/2, py+1, hintChar, core.ColorGray)
		}
		px, py := g.cellOrigin(sel)
		dst.Highlight(core.NewRect(px+1, py+1, cellWidth-1, 1))
	}

	px, py := g.cellOrigin(g.cursor)
	dst.SetColor(px+1, py+1, '[', core.ColorWhite)
	dst.SetColor(px+cellWidth-1, py+1, ']', core.ColorWhite)
}

// junction picks the box-drawing rune where grid lines meet.
func junction(row, col, n int) rune {
	switch {
	case row == 0 && col == 0:
		return '┌'
	case row == 0 && col == n:
		return '┐'
	case row == n && col == 0:
		return '└'
	case row == n && col == n:
		return '┘'
	case row == 0:
		return '┬'
	case row == n:
		return '┴'
	case col == 0:
		return '├'
	case col == n:
		return '┤'
	default:
		return '┼'
	}
}

// renderOverlays draws the pause and board-full banners over the board.
func (g *Game) renderOverlays(dst *core.Screen) {
	_, by := g.origin()
	_, h := boardSize(g.ctrl.Grid().Size())
	mid := by + h/2

	switch {
	case g.gameOver:
		g.banner(dst, mid, "BOARD FULL", fmt.Sprintf("%d lines in %d moves", g.lines, g.moves), "R to restart")
	case g.paused:
		g.banner(dst, mid, "PAUSED", "P to resume")
	}
}

// banner draws a boxed message centered on row mid.
func (g *Game) banner(dst *core.Screen, mid int, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	box := core.NewRect((g.screenW-width-4)/2, mid-len(lines)/2-1, width+4, len(lines)+2)

	inner := box.Inset(1)
	for y := inner.Y; y < inner.Bottom(); y++ {
		for x := inner.X; x < inner.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i, l)
	}
}
