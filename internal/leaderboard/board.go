// Package leaderboard implements the bounded high-score table: at most
// Capacity entries ranked by score, plus the keeper that loads, records and
// saves it at the end of each game.
package leaderboard

import (
	"fmt"
	"sort"
)

// Capacity is the maximum number of entries a Board holds.
const Capacity = 10

// Entry is one recorded score.
type Entry struct {
	Score      int
	RecordedOn Date
}

// Board is an immutable ranked snapshot of the leaderboard.
// Entries are ordered by score descending; equal scores keep the order in
// which they were recorded. The zero Board is empty and ready to use.
type Board struct {
	entries []Entry
}

// FromEntries rebuilds a Board from persisted entries.
// The entries must already satisfy the Board invariants.
func FromEntries(entries []Entry) (Board, error) {
	if len(entries) > Capacity {
		return Board{}, fmt.Errorf("leaderboard: %d entries exceed capacity %d", len(entries), Capacity)
	}
	for i, e := range entries {
		if e.Score < 0 {
			return Board{}, fmt.Errorf("leaderboard: entry %d: %w: %d", i, ErrInvalidScore, e.Score)
		}
		if e.RecordedOn.IsZero() {
			return Board{}, fmt.Errorf("leaderboard: entry %d has no date", i)
		}
		if i > 0 && entries[i-1].Score < e.Score {
			return Board{}, fmt.Errorf("leaderboard: entry %d out of order (%d after %d)", i, e.Score, entries[i-1].Score)
		}
	}

	owned := make([]Entry, len(entries))
	copy(owned, entries)
	return Board{entries: owned}, nil
}

// Len returns the number of entries.
func (b Board) Len() int {
	return len(b.entries)
}

// IsEmpty reports whether no score has been recorded.
func (b Board) IsEmpty() bool {
	return len(b.entries) == 0
}

// Entries returns a copy of the ranked entries.
func (b Board) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// At returns the entry at zero-based rank i.
func (b Board) At(i int) Entry {
	return b.entries[i]
}

// Best returns the top score, or 0 for an empty board.
func (b Board) Best() int {
	if len(b.entries) == 0 {
		return 0
	}
	return b.entries[0].Score
}

// Placement returns the 1-based rank a new score would take if recorded now,
// or 0 if it would not make the board. New scores rank after existing
// entries with the same score.
func (b Board) Placement(score int) int {
	rank := 1
	for _, e := range b.entries {
		if e.Score >= score {
			rank++
		}
	}
	if rank > Capacity {
		return 0
	}
	return rank
}

// Record returns a new Board with score appended, ranked and truncated to
// Capacity. b is not modified. A zero when means today.
func (b Board) Record(score int, when Date) (Board, error) {
	if score < 0 {
		return b, fmt.Errorf("%w: %d", ErrInvalidScore, score)
	}
	if when.IsZero() {
		when = Today()
	}

	next := make([]Entry, len(b.entries), len(b.entries)+1)
	copy(next, b.entries)
	next = append(next, Entry{Score: score, RecordedOn: when})

	sort.SliceStable(next, func(i, j int) bool {
		return next[i].Score > next[j].Score
	})

	if len(next) > Capacity {
		next = next[:Capacity]
	}
	return Board{entries: next}, nil
}
