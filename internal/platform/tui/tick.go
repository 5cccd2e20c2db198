// Package tui provides the Bubble Tea leaderboard screens, locally and over
// SSH via Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hoops/internal/leaderboard"
)

// refreshInterval is how often an open scoreboard reloads the store.
const refreshInterval = 5 * time.Second

// RefreshMsg is sent to trigger a scoreboard reload.
type RefreshMsg time.Time

// BoardLoadedMsg carries the result of a load. Manual is set for reloads
// the user asked for; those never extend the periodic refresh chain.
type BoardLoadedMsg struct {
	Board  leaderboard.Board
	Err    error
	Manual bool
}

// FrameMsg advances a running shootout round.
type FrameMsg time.Time

// refreshCmd returns a Bubble Tea command that sends a refresh after interval.
func refreshCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return RefreshMsg(t)
	})
}

// frameCmd returns a command that sends the next shootout frame.
func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// loadCmd loads the board from the keeper off the update loop.
func loadCmd(keeper *leaderboard.Keeper, manual bool) tea.Cmd {
	return func() tea.Msg {
		b, err := keeper.Board()
		return BoardLoadedMsg{Board: b, Err: err, Manual: manual}
	}
}
