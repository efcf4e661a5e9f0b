package query

import (
	"strings"
	"time"

	"github.com/sgreene/habitat/internal/models"
)

// IsFastingHabit reports whether the habit is recognized as a fasting
// habit by case-insensitive name containment.
func IsFastingHabit(habit models.Habit) bool {
	return strings.Contains(strings.ToLower(habit.Name), "fast")
}

// RemainingTime returns how long until the fast's target, never negative.
func RemainingTime(fast models.ActiveFast, now time.Time) time.Duration {
	remaining := fast.TargetTime.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsFastComplete reports whether the fast has reached its target time.
func IsFastComplete(fast models.ActiveFast, now time.Time) bool {
	return !now.Before(fast.TargetTime)
}

// FastProgressPercent returns elapsed progress toward the target as a
// percentage clamped to [0, 100].
func FastProgressPercent(fast models.ActiveFast, now time.Time) float64 {
	total := fast.TargetTime.Sub(fast.StartTime)
	if total <= 0 {
		return 100
	}
	pct := float64(now.Sub(fast.StartTime)) / float64(total) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
