package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hoops/internal/leaderboard"
)

// Scoreboard layout constants
const (
	tableMinWidth = 30 // Minimum table width
	chromeHeight  = 9  // Rows used by title, result line, borders and help
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Refresh, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// Result is the outcome of the game that opened the scoreboard.
type Result struct {
	Score   int   // Final score
	Rank    int   // 1-based placement, 0 if it did not make the board
	SaveErr error // Non-nil when the board could not be persisted
}

// ScoreboardModel is the Bubble Tea model for the high score screen.
type ScoreboardModel struct {
	keeper   *leaderboard.Keeper
	board    leaderboard.Board
	result   *Result
	loadErr  error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	live     bool // Reload periodically to pick up other sessions' scores
	quitting bool
}

// NewScoreboardModel creates a scoreboard that loads from keeper.
func NewScoreboardModel(keeper *leaderboard.Keeper, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		keeper: keeper,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

// NewGameOverModel creates a scoreboard showing a freshly recorded board.
func NewGameOverModel(board leaderboard.Board, result Result, width, height int) ScoreboardModel {
	m := NewScoreboardModel(nil, width, height)
	m.result = &result
	m.setBoard(board)
	return m
}

// Live returns a copy of m that reloads the board every few seconds.
func (m ScoreboardModel) Live() ScoreboardModel {
	m.live = true
	return m
}

// createTable creates a new table sized to the window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Date", Width: 12},
	}

	// Give spare width to the score column
	if tableWidth := m.width - 8; tableWidth > tableMinWidth {
		columns[1].Width = min(tableWidth-18, 14)
	}

	height := m.height - chromeHeight
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(min(height, leaderboard.Capacity)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// setBoard replaces the displayed board.
func (m *ScoreboardModel) setBoard(b leaderboard.Board) {
	m.board = b
	m.updateTableRows()
}

// updateTableRows updates the table with current entries.
func (m *ScoreboardModel) updateTableRows() {
	entries := m.board.Entries()
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("%d.)", i+1),
			fmt.Sprintf("%d", e.Score),
			e.RecordedOn.String(),
		}
	}
	m.table.SetRows(rows)

	// Put the cursor on the new entry when there is one
	if m.result != nil && m.result.Rank > 0 && m.result.Rank <= len(rows) {
		m.table.SetCursor(m.result.Rank - 1)
	} else {
		m.table.GotoTop()
	}
}

// Board returns the board currently shown.
func (m ScoreboardModel) Board() leaderboard.Board {
	return m.board
}

// Err returns the last load error, if any.
func (m ScoreboardModel) Err() error {
	return m.loadErr
}

// Init starts the first load.
func (m ScoreboardModel) Init() tea.Cmd {
	if m.keeper == nil {
		return nil
	}
	return loadCmd(m.keeper, false)
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case BoardLoadedMsg:
		m.loadErr = msg.Err
		if msg.Err == nil {
			m.setBoard(msg.Board)
		}
		// Only scheduled loads re-arm the timer, so one chain exists at a time
		if m.live && !msg.Manual {
			return m, refreshCmd(refreshInterval)
		}
		return m, nil

	case RefreshMsg:
		if m.keeper == nil {
			return m, nil
		}
		return m, loadCmd(m.keeper, false)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			if m.keeper == nil {
				return m, nil
			}
			return m, loadCmd(m.keeper, true)

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if m.result != nil {
		title = "GAME OVER"
	}
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n")

	if m.result != nil {
		b.WriteString(centerText(m.resultLine(), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Could not load scores: " + m.loadErr.Error()))
		b.WriteString("\n")
	}
	if m.result != nil && m.result.SaveErr != nil {
		b.WriteString(errorStyle.Render("Score not saved: " + m.result.SaveErr.Error()))
		b.WriteString("\n")
	}

	// Help bar
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// resultLine describes the final score and where it landed.
func (m ScoreboardModel) resultLine() string {
	line := fmt.Sprintf("Score: %d", m.result.Score)
	if m.result.Rank > 0 {
		return highlightStyle.Render(fmt.Sprintf("%s  (#%d)", line, m.result.Rank))
	}
	return line
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if m.board.IsEmpty() {
		emptyStyle := mutedStyle.
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No scores recorded yet.\nFinish a round to set a high score!")
	}

	return m.table.View()
}

// IsQuitting returns true if user wants to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen until the user quits.
func RunScoreboard(model ScoreboardModel) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
