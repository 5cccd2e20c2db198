package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"

	"github.com/vovakirdan/hoops/internal/leaderboard"
)

// parseDateFlag reads a --date value. ISO dates are taken as is; anything
// else ("yesterday", "last friday") is resolved relative to now.
func parseDateFlag(input string, now time.Time) (leaderboard.Date, error) {
	input = strings.TrimSpace(input)
	if d, err := leaderboard.ParseDate(input); err == nil {
		return d, nil
	}

	w := when.New(nil)
	w.Add(en.All...)

	r, err := w.Parse(strings.ToLower(input), now)
	if err != nil {
		return leaderboard.Date{}, fmt.Errorf("cannot parse date %q: %w", input, err)
	}
	if r == nil {
		return leaderboard.Date{}, fmt.Errorf("cannot parse date %q (want YYYY-MM-DD or e.g. \"yesterday\")", input)
	}

	d := leaderboard.DateOf(r.Time)
	if d.Year < 1 {
		return leaderboard.Date{}, fmt.Errorf("date %q is out of range", input)
	}
	return d, nil
}
