package service

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrMissingRange is returned when an operation that requires a date range
// receives a zero-valued one.
var ErrMissingRange = errors.New("date range is required")

// ErrInvalidRange is returned when a range starts after it ends.
var ErrInvalidRange = errors.New("date range start must not be after end")

// DateRange bounds a metrics query. Both ends are inclusive.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Validate checks that the range is present and well ordered.
func (r DateRange) Validate() error {
	if r.From.IsZero() || r.To.IsZero() {
		return ErrMissingRange
	}
	if r.From.After(r.To) {
		return ErrInvalidRange
	}
	return nil
}

// Contains reports whether t falls within the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// ShiftMonths returns the range with both ends moved by the given number of
// calendar months.
func (r DateRange) ShiftMonths(months int) DateRange {
	return DateRange{
		From: r.From.AddDate(0, months, 0),
		To:   r.To.AddDate(0, months, 0),
	}
}

// GroupBy selects the bucketing granularity for the hours trend.
type GroupBy string

const (
	// GroupByDay buckets by calendar date.
	GroupByDay GroupBy = "day"
	// GroupByWeek buckets by ISO week.
	GroupByWeek GroupBy = "week"
	// GroupByMonth buckets by calendar month.
	GroupByMonth GroupBy = "month"
)

// ParseGroupBy maps a raw value onto a granularity, defaulting to week.
func ParseGroupBy(raw string) (GroupBy, error) {
	switch GroupBy(raw) {
	case GroupByDay, GroupByWeek, GroupByMonth:
		return GroupBy(raw), nil
	case "":
		return GroupByWeek, nil
	default:
		return "", fmt.Errorf("%w: unknown group_by %q", ErrInvalidRange, raw)
	}
}

// periodKey returns the bucket label for a timestamp at the given
// granularity. Labels are zero-padded so lexicographic order matches
// chronological order.
func (g GroupBy) periodKey(t time.Time) string {
	utc := t.UTC()
	switch g {
	case GroupByDay:
		return utc.Format("2006-01-02")
	case GroupByMonth:
		return utc.Format("2006-01")
	default:
		year, week := utc.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	}
}

// startOfMonth truncates a timestamp to the first instant of its calendar month.
func startOfMonth(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
