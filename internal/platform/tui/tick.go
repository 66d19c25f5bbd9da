// Package tui runs Lines in the terminal with Bubble Tea: the tick loop,
// key and mouse mapping, the variant menu and the results table.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game step.
type TickMsg time.Time

// tickCmd schedules the next TickMsg. Rates below 1 fall back to 30 per second.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate < 1 {
		tickRate = 30
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
