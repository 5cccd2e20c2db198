// Package shootout keeps score and time for one timed shootout round.
// It holds no physics: the host reports launches, baskets and balls leaving
// play, and ticks the round with the current time.
package shootout

import "time"

// DefaultLength is the length of a standard round.
const DefaultLength = 60 * time.Second

// GameOverFunc receives the final score once the round ends.
type GameOverFunc func(finalScore int)

// State is a snapshot returned by Tick.
type State struct {
	Score    int           // Baskets made
	TimeLeft time.Duration // Zero once time is over
	TimeOver bool          // Buzzer has sounded
	InFlight bool          // A ball is still in play
	GameOver bool          // Time is over and the last ball has landed
}

// Round tracks a single round. A Round is driven from one goroutine.
type Round struct {
	length     time.Duration
	onGameOver GameOverFunc

	started  time.Time
	score    int
	inFlight bool
	timeOver bool
	gameOver bool
}

// NewRound creates a round of the given length. A non-positive length means
// DefaultLength. onGameOver may be nil.
func NewRound(length time.Duration, onGameOver GameOverFunc) *Round {
	if length <= 0 {
		length = DefaultLength
	}
	return &Round{length: length, onGameOver: onGameOver}
}

// Start resets the round and starts the clock at now.
func (r *Round) Start(now time.Time) {
	r.started = now
	r.score = 0
	r.inFlight = false
	r.timeOver = false
	r.gameOver = false
}

// Launch puts a ball in play. Only one ball may be in flight and no ball
// may be launched after the buzzer. Reports whether the launch happened.
func (r *Round) Launch() bool {
	if r.inFlight || r.timeOver {
		return false
	}
	r.inFlight = true
	return true
}

// Basket scores the ball in flight. A ball in the air at the buzzer still counts.
func (r *Round) Basket() {
	if !r.inFlight || r.gameOver {
		return
	}
	r.score++
	r.inFlight = false
}

// Miss removes the ball in flight without scoring.
func (r *Round) Miss() {
	r.inFlight = false
}

// Tick advances the clock to now. The round ends on the first tick where
// time is over and no ball is in flight; onGameOver runs on that tick only.
func (r *Round) Tick(now time.Time) State {
	if !r.timeOver && now.Sub(r.started) >= r.length {
		r.timeOver = true
	}

	if r.timeOver && !r.inFlight && !r.gameOver {
		r.gameOver = true
		if r.onGameOver != nil {
			r.onGameOver(r.score)
		}
	}

	return r.state(now)
}

// TimeLeft returns the remaining time, clamped at zero.
func (r *Round) TimeLeft(now time.Time) time.Duration {
	if r.timeOver {
		return 0
	}
	left := r.length - now.Sub(r.started)
	if left < 0 {
		return 0
	}
	return left
}

// Score returns baskets made so far.
func (r *Round) Score() int { return r.score }

// Over reports whether the round has ended.
func (r *Round) Over() bool { return r.gameOver }

func (r *Round) state(now time.Time) State {
	return State{
		Score:    r.score,
		TimeLeft: r.TimeLeft(now),
		TimeOver: r.timeOver,
		InFlight: r.inFlight,
		GameOver: r.gameOver,
	}
}
