package view

import (
	"time"
)

// Period narrows the file list to the files created within it.
type Period int

const (
	PeriodAll Period = iota
	PeriodToday
	PeriodThisMonth
	PeriodLastMonth

	periodCount
)

func (p Period) String() string {
	switch p {
	case PeriodAll:
		return "All Time"
	case PeriodToday:
		return "Today"
	case PeriodThisMonth:
		return "This Month"
	case PeriodLastMonth:
		return "Last Month"
	}

	return "Unknown"
}

// Next cycles through the periods.
func (p Period) Next() Period {
	return (p + 1) % periodCount
}

// Contains reports whether t falls in the period relative to now.
func (p Period) Contains(t, now time.Time) bool {
	if p == PeriodAll {
		return true
	}

	start, end := p.Range(now)

	return !t.Before(start) && t.Before(end)
}

// Range returns the half-open interval [start, end) of the period.
func (p Period) Range(now time.Time) (time.Time, time.Time) {
	var start time.Time

	switch p {
	case PeriodToday:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 0, 1)
	case PeriodThisMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodLastMonth:
		start = time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}, time.Time{}
	}

	return start, start.AddDate(0, 1, 0)
}
