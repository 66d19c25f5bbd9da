package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lines/internal/registry"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

const (
	resultsLimit   = 100 // Rows loaded per variant
	statsCardWidth = 24
	minWidthStats  = 76 // Narrower windows drop the stats card
)

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("245"))
	activeTabStyle = tabStyle.Bold(true).Foreground(lipgloss.Color("229")).Underline(true)
	cardStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardKeyMap holds the bindings of the results screen. Row scrolling
// uses the table's own bindings.
type ScoreboardKeyMap struct {
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns the results screen bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("→/tab", "next variant")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev variant")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the recorded games of one variant at a time.
type ScoreboardModel struct {
	store    *storage.Store
	variants []registry.Info
	current  int

	results []storage.Result
	stats   *storage.GameStats
	err     error

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int

	done   bool
	toMenu bool
}

// NewScoreboardModel creates the results screen. store may be nil, in
// which case every variant shows as empty.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:    store,
		variants: registry.List(),
		help:     help.New(),
		keys:     DefaultScoreboardKeyMap(),
	}
	m.resize(width, height)
	m.load()
	return m
}

// resize rebuilds the table for a new window size.
func (m *ScoreboardModel) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	dateWidth := 12
	if m.width >= minWidthStats+10 {
		dateWidth = 16
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Lines", Width: 6},
			{Title: "Moves", Width: 6},
			{Title: "Left", Width: 5},
			{Title: "Seed", Width: 10},
			{Title: "Played", Width: dateWidth},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-9, 3)),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).
		BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("240"))
	styles.Selected = styles.Selected.Bold(false).
		Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	m.table = t
	m.fillTable()
}

// load reads the ranking and stats of the current variant.
func (m *ScoreboardModel) load() {
	m.results, m.stats, m.err = nil, nil, nil

	if m.store != nil && len(m.variants) > 0 {
		id := m.variants[m.current].ID
		m.results, m.err = m.store.TopResults(id, resultsLimit)
		if m.err == nil {
			m.stats, m.err = m.store.GetGameStats(id)
		}
	}
	m.fillTable()
}

func (m *ScoreboardModel) fillTable() {
	rows := make([]table.Row, 0, len(m.results))
	for i, r := range m.results {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Lines),
			strconv.Itoa(r.Moves),
			strconv.Itoa(r.BallsLeft),
			strconv.FormatInt(r.Seed, 10),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.done, m.toMenu = true, true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.switchVariant(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.switchVariant(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// switchVariant moves to the next or previous variant, wrapping around.
func (m *ScoreboardModel) switchVariant(delta int) {
	n := len(m.variants)
	if n == 0 {
		return
	}
	m.current = ((m.current+delta)%n + n) % n
	m.load()
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.done {
		return ""
	}

	body := m.resultsView()
	if m.width >= minWidthStats {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.statsCard())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		m.tabs(),
		"",
		body,
		m.statusLine(),
		mutedStyle.Render(m.help.View(m.keys)),
	)
}

// tabs renders one tab per variant with the current one underlined.
func (m ScoreboardModel) tabs() string {
	if len(m.variants) == 0 {
		return mutedStyle.Render("No variants registered")
	}
	parts := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.current {
			parts[i] = activeTabStyle.Render(v.Title)
		} else {
			parts[i] = tabStyle.Render(v.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m ScoreboardModel) resultsView() string {
	if len(m.results) == 0 {
		msg := "No finished games yet.\nA game is recorded when the board fills up."
		return cardStyle.Render(mutedStyle.Italic(true).Padding(1, 3).Render(msg))
	}
	return cardStyle.Render(m.table.View())
}

// statsCard summarizes every recorded game of the variant.
func (m ScoreboardModel) statsCard() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Summary"))
	b.WriteString("\n\n")

	if m.stats == nil || m.stats.GamesCount == 0 {
		b.WriteString(mutedStyle.Render("nothing yet"))
	} else {
		rows := [][2]string{
			{"Games", strconv.Itoa(m.stats.GamesCount)},
			{"Best", fmt.Sprintf("%d lines", m.stats.BestLines)},
			{"Average", fmt.Sprintf("%.1f lines", m.stats.AvgLines)},
			{"Moves", strconv.FormatInt(m.stats.TotalMoves, 10)},
			{"Last", m.stats.LastPlayed.Local().Format("Jan 02")},
		}
		for _, r := range rows {
			fmt.Fprintf(&b, "%-8s %s\n", r[0], r[1])
		}
	}

	return cardStyle.Width(statsCardWidth).Render(strings.TrimRight(b.String(), "\n"))
}

// statusLine reports load errors and a missing database.
func (m ScoreboardModel) statusLine() string {
	switch {
	case m.err != nil:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render("Could not load results: " + m.err.Error())
	case m.store == nil:
		return mutedStyle.Render("Results database unavailable")
	}
	return ""
}

// BackToMenu reports whether the player left with Back rather than Quit.
func (m ScoreboardModel) BackToMenu() bool {
	return m.toMenu
}

// RunScoreboard shows the results screen until the player leaves. It
// reports whether they asked to return to the menu.
func RunScoreboard(store *storage.Store, width, height int) (bool, error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.BackToMenu(), nil
}
