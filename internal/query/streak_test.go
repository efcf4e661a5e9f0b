package query

import (
	"testing"
	"time"

	"github.com/sgreene/habitat/internal/timeutil"
)

func dayN(today string, offset int) string {
	return timeutil.AddDays(today, offset)
}

func TestStreak(t *testing.T) {
	const today = "2025-03-15"
	const habit = "h1"

	tests := []struct {
		name      string
		completed []string // day keys on which the habit was done
		expected  int
	}{
		{
			name:      "no completions",
			completed: nil,
			expected:  0,
		},
		{
			name:      "today only",
			completed: []string{today},
			expected:  1,
		},
		{
			name:      "three consecutive days",
			completed: []string{today, dayN(today, -1), dayN(today, -2)},
			expected:  3,
		},
		{
			name:      "one missed day is tolerated",
			completed: []string{today, dayN(today, -2)},
			expected:  2,
		},
		{
			name:      "today missed still counts yesterday",
			completed: []string{dayN(today, -1), dayN(today, -2)},
			expected:  2,
		},
		{
			name:      "two consecutive misses stop the count",
			completed: []string{today, dayN(today, -3)},
			expected:  1,
		},
		{
			name: "two separated misses stop at the second",
			completed: []string{
				today, dayN(today, -2), dayN(today, -3), // miss at -1 and -4
				dayN(today, -5),
			},
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completed := make(map[string][]string)
			for _, day := range tt.completed {
				completed[day] = append(completed[day], habit)
			}
			if got := Streak(completed, habit, today); got != tt.expected {
				t.Errorf("Streak = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestStreak_CappedAt365(t *testing.T) {
	const habit = "h1"
	today := "2025-03-15"

	completed := make(map[string][]string)
	for i := 0; i < 500; i++ {
		completed[dayN(today, -i)] = []string{habit}
	}

	if got := Streak(completed, habit, today); got != 365 {
		t.Errorf("Streak = %d, want 365", got)
	}
}

func TestStreak_InvalidDayKey(t *testing.T) {
	if got := Streak(map[string][]string{}, "h1", "not-a-day"); got != 0 {
		t.Errorf("Streak = %d, want 0", got)
	}
}

func TestWeeklyProgress(t *testing.T) {
	const habit = "h1"
	// 2025-03-12 is a Wednesday; its week runs 2025-03-10 .. 2025-03-16.
	reference := time.Date(2025, 3, 12, 12, 0, 0, 0, time.Local)

	completed := map[string][]string{
		"2025-03-10": {habit}, // Monday, in week
		"2025-03-12": {habit}, // Wednesday, in week
		"2025-03-16": {habit}, // Sunday, in week
		"2025-03-09": {habit}, // previous Sunday, out
		"2025-03-17": {habit}, // next Monday, out
	}

	if got := WeeklyProgress(completed, habit, reference); got != 3 {
		t.Errorf("WeeklyProgress = %d, want 3", got)
	}
}

func TestWeeklyProgress_SundayReference(t *testing.T) {
	const habit = "h1"
	// A Sunday reference must still count from the preceding Monday.
	reference := time.Date(2025, 3, 16, 9, 0, 0, 0, time.Local)
	completed := map[string][]string{
		"2025-03-10": {habit},
		"2025-03-16": {habit},
	}

	if got := WeeklyProgress(completed, habit, reference); got != 2 {
		t.Errorf("WeeklyProgress = %d, want 2", got)
	}
}
