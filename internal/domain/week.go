package domain

import (
	"fmt"
	"time"
)

// Day normalizes t to the UTC midnight of its calendar date. Every date
// the engine stores or compares (visit dates, work dates, log dates) goes
// through this, so "same day" is always a plain equality check.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekNumber maps a calendar date to the campaign week number.
//
// The convention is local to the campaign, not ISO-8601: week 1 starts on
// January 1 and weeks break on Sundays. Normalize to midnight, take the
// zero-based day offset from January 1, shift by January 1's weekday
// (0=Sunday) and divide by 7.
//
// Daily logs, weekly logs and visit grouping must all derive week numbers
// here; a second implementation anywhere else will eventually disagree at
// a year boundary.
func WeekNumber(t time.Time) int {
	day := Day(t)
	jan1 := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	dayOffset := int(day.Sub(jan1) / (24 * time.Hour))
	return (dayOffset+int(jan1.Weekday()))/7 + 1
}

// ParseDay parses a date string ("2006-01-02" or RFC3339) and normalizes
// it with Day. Unparseable input fails with ErrInvalidDate.
func ParseDay(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
