package ledger

import (
	"time"

	"github.com/google/uuid"

	"financepro/internal/models"
)

// Recurring records expand into independent instances at creation time.
// Each instance carries its own ID and participates in reconciliation and
// aggregation on its own; editing or deleting one never touches the others.

// occurrences generates dates from start through horizon inclusive. Monthly
// steps anchor to the start's day of month and clamp to shorter months, so
// a Jan 31 template lands on Feb 28 and back on Mar 31.
func occurrences(start time.Time, freq models.Recurrence, horizon time.Time) []time.Time {
	var dates []time.Time
	switch freq {
	case models.RecurrenceWeekly:
		for d := start; !d.After(horizon); d = d.AddDate(0, 0, 7) {
			dates = append(dates, d)
		}
	case models.RecurrenceMonthly:
		anchor := start.Day()
		for i := 0; ; i++ {
			first := time.Date(start.Year(), start.Month()+time.Month(i), 1, 0, 0, 0, 0, time.UTC)
			day := anchor
			if last := daysInMonth(first.Year(), first.Month()); day > last {
				day = last
			}
			d := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
			if d.After(horizon) {
				break
			}
			dates = append(dates, d)
		}
	default:
		dates = []time.Time{start}
	}
	return dates
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ExpandExpense materializes a recurring expense through its end date. A
// non-recurring expense, or one without an end date, yields itself alone.
func ExpandExpense(e models.Expense) ([]models.Expense, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Recurring == models.RecurrenceNone || e.EndDate == "" {
		return []models.Expense{e}, nil
	}

	start, err := models.ParseDate(e.Date)
	if err != nil {
		return nil, &ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
	}
	horizon, err := models.ParseDate(e.EndDate)
	if err != nil {
		return nil, &ValidationError{Field: "endDate", Message: "must be YYYY-MM-DD"}
	}
	if horizon.Before(start) {
		return nil, &ValidationError{Field: "endDate", Message: "must not be before date"}
	}

	var out []models.Expense
	for i, d := range occurrences(start, e.Recurring, horizon) {
		inst := e
		if i > 0 {
			inst.ID = uuid.NewString()
		}
		inst.Date = models.FormatDate(d)
		out = append(out, inst)
	}
	return out, nil
}

// ExpandIncome materializes recurring income through the end of the start
// date's calendar year. Each instance caches its display month and year.
func ExpandIncome(inc models.Income) ([]models.Income, error) {
	if inc.ID == "" {
		inc.ID = uuid.NewString()
	}
	start, err := models.ParseDate(inc.Date)
	if err != nil {
		return nil, &ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
	}

	if !inc.Recurring {
		inc.Month = models.MonthName(start)
		inc.Year = start.Year()
		return []models.Income{inc}, nil
	}

	freq := inc.Frequency
	if freq == models.RecurrenceNone {
		freq = models.RecurrenceMonthly
		inc.Frequency = freq
	}
	horizon := time.Date(start.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)

	var out []models.Income
	for i, d := range occurrences(start, freq, horizon) {
		inst := inc
		if i > 0 {
			inst.ID = uuid.NewString()
		}
		inst.Date = models.FormatDate(d)
		inst.Month = models.MonthName(d)
		inst.Year = d.Year()
		out = append(out, inst)
	}
	return out, nil
}
