package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hoops/internal/leaderboard"
	"github.com/vovakirdan/hoops/internal/shootout"
)

// Shot meter tuning
const (
	frameInterval = 50 * time.Millisecond
	flightTime    = 400 * time.Millisecond // Time a ball spends in the air
	meterMax      = 20                     // Meter positions run 0..meterMax
	meterCenter   = meterMax / 2
	sweetSpot     = 2 // Shots within this distance of the center go in
)

var (
	meterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	sweetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
)

// ShootoutKeyMap defines the key bindings during a round.
type ShootoutKeyMap struct {
	Shoot key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ShootoutKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Shoot, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ShootoutKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Shoot, k.Quit}}
}

// DefaultShootoutKeyMap returns default key bindings.
func DefaultShootoutKeyMap() ShootoutKeyMap {
	return ShootoutKeyMap{
		Shoot: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "shoot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// shot is a ball in the air.
type shot struct {
	aim     int
	landsAt time.Time
}

// finish holds what the round's game-over hook recorded. It is shared by
// every copy of the model.
type finish struct {
	done   bool
	board  leaderboard.Board
	result Result
}

// ShootoutModel plays one timed round. A sweeping meter stands in for the
// shooting arc: shots released near its center are baskets.
type ShootoutModel struct {
	round      *shootout.Round
	finish     *finish
	scoreboard ScoreboardModel
	keys       ShootoutKeyMap
	help       help.Model
	width      int
	height     int

	started bool
	last    time.Time
	aim     int
	aimDir  int
	ball    *shot
	over    bool
	quit    bool
}

// NewShootoutModel creates a round of the given length whose final score is
// recorded through keeper. A non-positive length means a standard round.
func NewShootoutModel(keeper *leaderboard.Keeper, length time.Duration, width, height int) ShootoutModel {
	f := &finish{}
	round := shootout.NewRound(length, func(score int) {
		out, err := keeper.Submit(score, leaderboard.Date{})
		f.done = true
		f.board = out.Board
		f.result = Result{Score: score, Rank: out.Rank, SaveErr: err}
	})

	return ShootoutModel{
		round:  round,
		finish: f,
		keys:   DefaultShootoutKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
		aimDir: 1,
	}
}

// Init starts the frame loop. The clock starts on the first frame.
func (m ShootoutModel) Init() tea.Cmd {
	return frameCmd(frameInterval)
}

// Update handles messages for the round, then for the game over screen.
func (m ShootoutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.over {
		next, cmd := m.scoreboard.Update(msg)
		m.scoreboard = next.(ScoreboardModel)
		if m.scoreboard.IsQuitting() {
			m.quit = true
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case FrameMsg:
		return m.frame(time.Time(msg))

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quit = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Shoot):
			if m.started && m.round.Launch() {
				m.ball = &shot{aim: m.aim, landsAt: m.last.Add(flightTime)}
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// frame moves the meter, lands the ball in flight and ticks the round.
func (m ShootoutModel) frame(now time.Time) (tea.Model, tea.Cmd) {
	if !m.started {
		m.round.Start(now)
		m.started = true
		m.last = now
		return m, frameCmd(frameInterval)
	}
	m.last = now

	m.aim += m.aimDir
	if m.aim <= 0 || m.aim >= meterMax {
		m.aim = max(0, min(m.aim, meterMax))
		m.aimDir = -m.aimDir
	}

	if m.ball != nil && !now.Before(m.ball.landsAt) {
		if isBasket(m.ball.aim) {
			m.round.Basket()
		} else {
			m.round.Miss()
		}
		m.ball = nil
	}

	if st := m.round.Tick(now); st.GameOver {
		m.over = true
		m.scoreboard = NewGameOverModel(m.finish.board, m.finish.result, m.width, m.height)
		return m, nil
	}
	return m, frameCmd(frameInterval)
}

// isBasket reports whether a shot released at aim goes in.
func isBasket(aim int) bool {
	d := aim - meterCenter
	if d < 0 {
		d = -d
	}
	return d <= sweetSpot
}

// View renders the round or the game over screen.
func (m ShootoutModel) View() string {
	if m.quit {
		return ""
	}
	if m.over {
		return m.scoreboard.View()
	}

	var b strings.Builder
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText("BASKETBALL SHOOTOUT", m.width)))
	b.WriteString("\n")
	b.WriteString(centerText("How many baskets can you make before the buzzer?", m.width))
	b.WriteString("\n\n")

	left := time.Duration(0)
	if m.started {
		left = m.round.TimeLeft(m.last)
	}
	status := fmt.Sprintf("Score: %d    Time left: %d", m.round.Score(), int(math.Ceil(left.Seconds())))
	b.WriteString(centerText(status, m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderMeter(), m.width))
	b.WriteString("\n")
	if m.ball != nil {
		b.WriteString(centerText(mutedStyle.Render("Ball in the air..."), m.width))
	}
	b.WriteString("\n\n")

	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderMeter draws the aim meter with the sweet spot marked.
func (m ShootoutModel) renderMeter() string {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i <= meterMax; i++ {
		switch {
		case i == m.aim:
			b.WriteString(highlightStyle.Render("O"))
		case isBasket(i):
			b.WriteString(sweetStyle.Render("="))
		default:
			b.WriteString(meterStyle.Render("-"))
		}
	}
	b.WriteString("]")
	return b.String()
}

// Result returns the recorded outcome once the round has ended.
func (m ShootoutModel) Result() (Result, bool) {
	return m.finish.result, m.finish.done
}

// IsQuitting returns true if the user wants to quit.
func (m ShootoutModel) IsQuitting() bool {
	return m.quit
}

// RunShootout plays a round until the user quits the game over screen.
func RunShootout(model ShootoutModel) (ShootoutModel, error) {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return model, err
	}
	return final.(ShootoutModel), nil
}
