package models

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-date format used throughout the
// ledger document ("2006-01-02"). Dates carry no time component, and the
// canonical form sorts lexicographically in chronological order.
const DateLayout = time.DateOnly

// ParseDate parses a canonical calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a time as a canonical calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthName returns the full English month name for a date ("January" .. "December").
func MonthName(t time.Time) string {
	return t.Month().String()
}

// MonthNumber maps a full English month name to its 1-based number,
// or 0 for an unknown name. Used for chronological ordering of grouped income.
func MonthNumber(name string) int {
	for m := time.January; m <= time.December; m++ {
		if m.String() == name {
			return int(m)
		}
	}
	return 0
}
