package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hoops/internal/leaderboard"
)

var shootKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}

func step(t *testing.T, m ShootoutModel, msg tea.Msg) (ShootoutModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(ShootoutModel), cmd
}

func newTestShootout(t *testing.T, store *memStore, length time.Duration) ShootoutModel {
	t.Helper()
	day := leaderboard.Date{Year: 2024, Month: time.June, Day: 1}
	keeper := leaderboard.NewKeeper(store, leaderboard.WithClock(func() leaderboard.Date { return day }))
	return NewShootoutModel(keeper, length, 80, 24)
}

func TestShootoutScoresAndRecordsAtBuzzer(t *testing.T) {
	store := &memStore{board: boardOf(t, 5)}
	m := newTestShootout(t, store, 2*time.Second)
	t0 := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	if m.Init() == nil {
		t.Fatal("Init() should start the frame loop")
	}
	m, _ = step(t, m, FrameMsg(t0))

	// Released at the center: basket
	m.aim = meterCenter
	m, _ = step(t, m, shootKey)
	if m.ball == nil {
		t.Fatal("space should launch a ball")
	}
	m, _ = step(t, m, FrameMsg(t0.Add(500*time.Millisecond)))
	if got := m.round.Score(); got != 1 {
		t.Fatalf("Score() = %d after a centered shot, expected 1", got)
	}

	// Released at the edge: miss
	m.aim = 0
	m, _ = step(t, m, shootKey)
	m, _ = step(t, m, FrameMsg(t0.Add(time.Second)))
	if got := m.round.Score(); got != 1 {
		t.Fatalf("Score() = %d after an edge shot, expected 1", got)
	}

	m, cmd := step(t, m, FrameMsg(t0.Add(2*time.Second)))
	if cmd != nil {
		t.Error("frame loop should stop after the buzzer")
	}

	res, done := m.Result()
	if !done {
		t.Fatal("Result() should be recorded once the round ends")
	}
	if res.Score != 1 || res.Rank != 2 || res.SaveErr != nil {
		t.Errorf("Result() = %+v, expected score 1 at rank 2", res)
	}
	if store.board.Len() != 2 || store.board.At(1).Score != 1 {
		t.Errorf("stored board = %v, expected [5 1]", store.board.Entries())
	}
	if got := store.board.At(1).RecordedOn.String(); got != "2024-06-01" {
		t.Errorf("recorded on %s, expected 2024-06-01", got)
	}

	view := m.View()
	for _, want := range []string{"GAME OVER", "Score: 1", "#2"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	// The game over screen owns input now
	m, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil || !m.IsQuitting() {
		t.Error("q on the game over screen should quit")
	}
}

func TestShootoutBallInFlightAtBuzzerCounts(t *testing.T) {
	store := &memStore{}
	m := newTestShootout(t, store, time.Second)
	t0 := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	m, _ = step(t, m, FrameMsg(t0))
	m, _ = step(t, m, FrameMsg(t0.Add(900*time.Millisecond)))
	m.aim = meterCenter
	m, _ = step(t, m, shootKey)

	m, cmd := step(t, m, FrameMsg(t0.Add(time.Second)))
	if cmd == nil {
		t.Fatal("round should wait for the last ball to land")
	}
	if _, done := m.Result(); done {
		t.Fatal("nothing should be recorded while a ball is in the air")
	}

	// Input after the round goes to the game over screen
	m, _ = step(t, m, FrameMsg(t0.Add(1400*time.Millisecond)))
	m, _ = step(t, m, shootKey)
	if m.ball != nil {
		t.Error("launch after the buzzer should be rejected")
	}

	res, done := m.Result()
	if !done || res.Score != 1 || res.Rank != 1 {
		t.Errorf("Result() = %+v, %v; expected score 1 at rank 1", res, done)
	}
	if store.board.Best() != 1 {
		t.Errorf("stored best = %d, expected 1", store.board.Best())
	}
}

func TestShootoutQuitMidRoundRecordsNothing(t *testing.T) {
	store := &memStore{}
	m := newTestShootout(t, store, time.Second)

	m, _ = step(t, m, FrameMsg(time.Now()))
	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || !m.IsQuitting() {
		t.Fatal("esc should quit")
	}
	if _, done := m.Result(); done {
		t.Error("quitting mid round should not record a score")
	}
	if !store.board.IsEmpty() {
		t.Errorf("store = %v, expected empty", store.board.Entries())
	}
}

func TestShootoutView(t *testing.T) {
	m := newTestShootout(t, &memStore{}, time.Second)
	m, _ = step(t, m, FrameMsg(time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)))

	view := m.View()
	for _, want := range []string{"BASKETBALL SHOOTOUT", "Score: 0", "Time left: 1", "space"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestIsBasket(t *testing.T) {
	tests := []struct {
		aim  int
		want bool
	}{
		{aim: 0, want: false},
		{aim: meterCenter - sweetSpot - 1, want: false},
		{aim: meterCenter - sweetSpot, want: true},
		{aim: meterCenter, want: true},
		{aim: meterCenter + sweetSpot, want: true},
		{aim: meterMax, want: false},
	}

	for _, tt := range tests {
		if got := isBasket(tt.aim); got != tt.want {
			t.Errorf("isBasket(%d) = %v, expected %v", tt.aim, got, tt.want)
		}
	}
}
