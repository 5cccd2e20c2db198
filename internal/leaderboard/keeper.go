package leaderboard

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Store is the durable medium holding a Board between sessions.
//
// Load returns an empty Board when nothing has been saved yet and a
// *CorruptStoreError when saved data cannot be decoded. Save replaces the
// stored board atomically and returns a *StoreWriteError on failure.
type Store interface {
	Load() (Board, error)
	Save(Board) error
}

// Keeper runs the end-of-game sequence (load, record, save) against a Store.
// The whole sequence holds one lock so concurrent sessions sharing a store
// cannot lose each other's scores.
type Keeper struct {
	mu           sync.Mutex
	store        Store
	logger       *log.Logger
	today        func() Date
	resetCorrupt bool
}

// KeeperOption configures a Keeper.
type KeeperOption func(*Keeper)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *log.Logger) KeeperOption {
	return func(k *Keeper) {
		if l != nil {
			k.logger = l
		}
	}
}

// WithClock overrides the source of "today" used by OnGameOver.
func WithClock(today func() Date) KeeperOption {
	return func(k *Keeper) {
		if today != nil {
			k.today = today
		}
	}
}

// WithResetCorrupt makes the keeper treat a corrupt store as empty instead of
// failing. The corrupt data is overwritten on the next save.
func WithResetCorrupt(reset bool) KeeperOption {
	return func(k *Keeper) {
		k.resetCorrupt = reset
	}
}

// NewKeeper creates a Keeper over store.
func NewKeeper(store Store, opts ...KeeperOption) *Keeper {
	k := &Keeper{
		store:  store,
		logger: log.New(io.Discard),
		today:  Today,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Board loads the current leaderboard.
func (k *Keeper) Board() (Board, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.load()
}

// OnGameOver records finalScore dated today and persists the result.
// The returned Board is valid for display even when err is a save failure.
func (k *Keeper) OnGameOver(finalScore int) (Board, error) {
	return k.RecordOn(finalScore, Date{})
}

// Outcome is the result of recording one score.
type Outcome struct {
	Board Board
	Rank  int // 1-based placement of the new score, 0 if it was dropped
}

// RecordOn records score with an explicit date and persists the result.
func (k *Keeper) RecordOn(score int, when Date) (Board, error) {
	out, err := k.Submit(score, when)
	return out.Board, err
}

// Submit records score on when, persists the result and reports where the
// score placed. A zero when means the keeper's today. On a save failure the
// Outcome is still filled in.
func (k *Keeper) Submit(score int, when Date) (Outcome, error) {
	if score < 0 {
		return Outcome{}, fmt.Errorf("%w: %d", ErrInvalidScore, score)
	}
	if when.IsZero() {
		when = k.today()
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	current, err := k.load()
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Rank: current.Placement(score)}
	out.Board, err = current.Record(score, when)
	if err != nil {
		return Outcome{}, err
	}

	if err := k.store.Save(out.Board); err != nil {
		k.logger.Error("could not save leaderboard", "score", score, "error", err)
		return out, err
	}

	if out.Rank > 0 {
		k.logger.Info("score recorded", "score", score, "rank", out.Rank, "date", when)
	} else {
		k.logger.Info("score did not place", "score", score, "lowest", out.Board.At(out.Board.Len()-1).Score)
	}
	return out, nil
}

// Clear saves an empty leaderboard.
func (k *Keeper) Clear() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := k.store.Save(Board{}); err != nil {
		return err
	}
	k.logger.Info("leaderboard cleared")
	return nil
}

func (k *Keeper) load() (Board, error) {
	b, err := k.store.Load()
	if err == nil {
		return b, nil
	}
	if k.resetCorrupt && errors.Is(err, ErrCorruptStore) {
		k.logger.Warn("leaderboard store is corrupt, starting empty", "error", err)
		return Board{}, nil
	}
	return Board{}, err
}
