package query

import (
	"time"

	"github.com/sgreene/habitat/internal/constants"
	"github.com/sgreene/habitat/internal/models"
	"github.com/sgreene/habitat/internal/timeutil"
)

// Streak walks backward from today (caller-supplied day key) for up to
// 365 days, counting completed days with a one-day grace policy: one
// missed day anywhere in the scan is tolerated; the second miss stops
// the count. A habit completed on {today, today-2} with a miss on
// today-1 therefore yields a streak of 2, not 1.
//
// The grace is one tolerated miss total over the scanned window, not a
// rolling grace per gap; the scan-and-count behavior is deliberate.
func Streak(completed map[string][]string, habitID, today string) int {
	start, err := timeutil.ParseDayKey(today)
	if err != nil {
		return 0
	}
	streak := 0
	missed := 0
	for i := 0; i < constants.StreakScanDays; i++ {
		day := timeutil.DayKey(start.AddDate(0, 0, -i))
		if models.HasID(completed[day], habitID) {
			streak++
		} else {
			missed++
			if missed > 1 {
				break
			}
		}
	}
	return streak
}

// WeeklyProgress counts completions whose day key falls within the
// Monday-Sunday week containing the reference date, inclusive.
func WeeklyProgress(completed map[string][]string, habitID string, reference time.Time) int {
	start := timeutil.WeekStart(reference)
	count := 0
	for i := 0; i < 7; i++ {
		day := timeutil.DayKey(start.AddDate(0, 0, i))
		if models.HasID(completed[day], habitID) {
			count++
		}
	}
	return count
}
