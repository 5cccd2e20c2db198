package leaderboard

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidScore is returned when a negative score is recorded.
	ErrInvalidScore = errors.New("leaderboard: invalid score")

	// ErrCorruptStore matches any *CorruptStoreError.
	ErrCorruptStore = errors.New("leaderboard: corrupt store")

	// ErrStoreWrite matches any *StoreWriteError.
	ErrStoreWrite = errors.New("leaderboard: store write failed")
)

// CorruptStoreError reports a store that exists but cannot be decoded.
// The caller decides whether to start over with an empty board.
type CorruptStoreError struct {
	Path string
	Err  error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("leaderboard: corrupt store %s: %v", e.Path, e.Err)
}

func (e *CorruptStoreError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrCorruptStore) hold for every CorruptStoreError.
func (e *CorruptStoreError) Is(target error) bool {
	return target == ErrCorruptStore
}

// StoreWriteError reports a failed save. The previously persisted copy is
// left intact; the in-memory board is still valid.
type StoreWriteError struct {
	Path string
	Err  error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("leaderboard: cannot write store %s: %v", e.Path, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrStoreWrite) hold for every StoreWriteError.
func (e *StoreWriteError) Is(target error) bool {
	return target == ErrStoreWrite
}
