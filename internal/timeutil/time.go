package timeutil

import (
	"fmt"
	"time"

	"github.com/sgreene/habitat/internal/constants"
)

// DayKey normalizes a time to its local calendar day key (YYYY-MM-DD).
// The time is truncated to local midnight before formatting, never to
// UTC midnight, so the key is stable across timezones.
func DayKey(t time.Time) string {
	return Midnight(t).Format(constants.DateFormat)
}

// Midnight returns t truncated to midnight in its own location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDayKey parses a YYYY-MM-DD day key into local midnight of that day.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, key, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// AddDays returns the day key offset by n calendar days from key.
// An unparseable key is returned unchanged.
func AddDays(key string, n int) string {
	t, err := ParseDayKey(key)
	if err != nil {
		return key
	}
	return DayKey(t.AddDate(0, 0, n))
}

// WeekStart returns the Monday of the week containing t, at local midnight.
func WeekStart(t time.Time) time.Time {
	day := Midnight(t)
	// time.Weekday: Sunday = 0 ... Saturday = 6; shift to Monday-first
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekdayIndex returns the Sunday-first weekday index (0-6) used by
// habit and schedule day masks.
func WeekdayIndex(t time.Time) int {
	return int(t.Weekday())
}

// MonthCells returns the 42-cell (6 weeks x 7 days) Monday-first grid
// for the month containing t. Cells outside the month are the zero
// time; callers test with IsZero.
func MonthCells(t time.Time) []time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	lead := (int(first.Weekday()) + 6) % 7 // blanks before the 1st, Monday-first
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cells := make([]time.Time, 42)
	for d := 0; d < daysInMonth; d++ {
		cells[lead+d] = first.AddDate(0, 0, d)
	}
	return cells
}

// ParseTimeOfDay parses an HH:MM string and returns minutes from midnight.
func ParseTimeOfDay(timeStr string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatTimeOfDay formats minutes from midnight as HH:MM.
func FormatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ValidTimeOfDay reports whether the string is a valid HH:MM time.
func ValidTimeOfDay(timeStr string) bool {
	_, err := ParseTimeOfDay(timeStr)
	return err == nil
}

// ValidDayKey reports whether the string is a valid YYYY-MM-DD day key.
func ValidDayKey(key string) bool {
	_, err := ParseDayKey(key)
	return err == nil
}
