package week

import (
	"fmt"
	"time"
)

// All weekly aggregates are keyed by an integer week id encoded as
// ISO_year*100 + ISO_week, e.g. 2025 week 2 -> 202502. The encoding sorts
// correctly across year boundaries (202452 < 202501).

// FromTime returns the week id of the ISO week containing t (UTC).
func FromTime(t time.Time) int {
	year, isoWeek := t.UTC().ISOWeek()
	return year*100 + isoWeek
}

// Bounds returns the [start, end) window of the ISO week containing t:
// Monday 00:00 UTC inclusive through the following Monday 00:00 UTC exclusive.
func Bounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -(weekday - 1))
	return start, start.AddDate(0, 0, 7)
}

// MondayOf decodes a week id back to the Monday that starts that ISO week.
// January 4th is always inside ISO week 1, so week 1's Monday is the Monday
// on or before January 4th.
func MondayOf(id int) (time.Time, error) {
	year := id / 100
	isoWeek := id % 100
	if year < 1 || isoWeek < 1 || isoWeek > 53 {
		return time.Time{}, fmt.Errorf("invalid week id %d", id)
	}

	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	firstMonday := jan4.AddDate(0, 0, -(weekday - 1))

	return firstMonday.AddDate(0, 0, (isoWeek-1)*7), nil
}
