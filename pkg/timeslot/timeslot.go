package timeslot

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Interval is the fixed slot granularity. The grid spans the full day at
// this step regardless of any doctor's window.
const Interval = 30 * time.Minute

var (
	ErrInvalidTime = errors.New("invalid time of day, use HH:MM or HH:MM:SS")

	gridOnce sync.Once
	grid     []string
)

// Grid returns the canonical full-day slot grid: every time of day from
// 00:00:00 up to 23:30:00 in 30-minute steps, as zero-padded "HH:MM:SS"
// strings in ascending order. The slice is built once and shared
// process-wide; callers must treat it as read-only.
func Grid() []string {
	gridOnce.Do(func() {
		step := int(Interval.Minutes())
		grid = make([]string, 0, (24*60)/step)
		for m := 0; m < 24*60; m += step {
			grid = append(grid, m2t(m))
		}
	})
	return grid
}

func m2t(m int) string {
	hours := m / 60
	minutes := m % 60
	return fmt.Sprintf("%02d:%02d:00", hours, minutes)
}

// Normalize validates a wall-clock time of day and returns it as a
// zero-padded "HH:MM:SS" string. Both "HH:MM" and "HH:MM:SS" inputs are
// accepted; the hour must be zero-padded, since slot times compare as
// strings everywhere else.
func Normalize(t string) (string, error) {
	// time.Parse alone would accept single-digit hours like "9:00".
	switch len(t) {
	case len("15:04"):
		if parsed, err := time.Parse("15:04", t); err == nil {
			return parsed.Format("15:04:05"), nil
		}
	case len("15:04:05"):
		if parsed, err := time.Parse("15:04:05", t); err == nil {
			return parsed.Format("15:04:05"), nil
		}
	}
	return "", ErrInvalidTime
}

// TimeOfDay returns the "HH:MM:SS" portion of a timestamp. Zero-padded
// strings of this form compare lexicographically in time order, which is
// what the availability window filter relies on.
func TimeOfDay(t time.Time) string {
	return t.Format("15:04:05")
}

// Within reports whether a time of day falls inside [from, to] inclusive.
// All three arguments must be "HH:MM:SS" strings.
func Within(t, from, to string) bool {
	return t >= from && t <= to
}

// Combine overlays a time of day onto the calendar date of day, producing
// the absolute slot timestamp. Seconds and sub-second components are zeroed.
func Combine(day time.Time, timeOfDay string) (time.Time, error) {
	normalized, err := Normalize(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	parsed, _ := time.Parse("15:04:05", normalized)
	return time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), nil
}

// DayBounds returns the [start, end) timestamps delimiting the calendar day
// of the given date.
func DayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}
