package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/registry"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

// MenuItem is one variant in the picker.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	Best        int // Most lines cleared in a recorded game
}

// MenuResult is what the player chose in the menu.
type MenuResult struct {
	GameID          string // Set when a variant was picked
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

var (
	logoStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	itemStyle   = lipgloss.NewStyle().PaddingLeft(2)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
)

// logoColors paints the title one ball color per letter.
var logoColors = []core.Color{core.ColorRed, core.ColorGreen, core.ColorBlue, core.ColorYellow, core.ColorMagenta}

// MenuModel is the variant picker shown by `lines menu`.
type MenuModel struct {
	items  []MenuItem
	cursor int
	result MenuResult
	done   bool
}

// NewMenuModel lists the registered variants with their best recorded
// game. store may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var items []MenuItem
	for _, v := range registry.List() {
		item := MenuItem{GameID: v.ID, Title: v.Title, Description: v.Description}
		if store != nil {
			if best, err := store.BestLines(v.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}
	return MenuModel{items: items, result: MenuResult{Config: cfg}}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.result.Config.ScreenW = msg.Width
		m.result.Config.ScreenH = msg.Height

	case tea.KeyMsg:
		switch MapKeyToMenuAction(msg) {
		case MenuActionUp:
			m.move(-1)
		case MenuActionDown:
			m.move(1)
		case MenuActionSelect:
			if len(m.items) > 0 {
				m.result.GameID = m.items[m.cursor].GameID
				return m.finish()
			}
		case MenuActionScoreboard:
			m.result.WantsScoreboard = true
			return m.finish()
		case MenuActionQuit:
			m.result.Quit = true
			return m.finish()
		}
	}
	return m, nil
}

// move shifts the cursor, wrapping at both ends.
func (m *MenuModel) move(delta int) {
	if n := len(m.items); n > 0 {
		m.cursor = ((m.cursor+delta)%n + n) % n
	}
}

func (m MenuModel) finish() (tea.Model, tea.Cmd) {
	m.done = true
	return m, tea.Quit
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(logo())
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(mutedStyle.Render("No variants registered"))
	}
	for i, item := range m.items {
		line := fmt.Sprintf("%-16s best %3d", item.Title, item.Best)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.cursor < len(m.items) {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(m.items[m.cursor].Description))
	}
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("↑/↓ choose · enter play · tab results · q quit"))

	cfg := m.result.Config
	return lipgloss.Place(cfg.ScreenW, cfg.ScreenH, lipgloss.Center, lipgloss.Center, b.String())
}

// logo renders the title with one ball color per letter.
func logo() string {
	var parts []string
	for i, r := range "LINES" {
		style := logoStyle.Foreground(colorStyles[logoColors[i%len(logoColors)]].GetForeground())
		parts = append(parts, style.Render(string(r)))
	}
	return strings.Join(parts, " ")
}

// Result returns the choice made when the menu closed.
func (m MenuModel) Result() MenuResult {
	return m.result
}

// RunMenu shows the picker until the player chooses something.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok || !m.done {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
