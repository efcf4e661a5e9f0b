package query

import (
	"sort"
	"time"

	"github.com/sgreene/habitat/internal/constants"
	"github.com/sgreene/habitat/internal/models"
	"github.com/sgreene/habitat/internal/timeutil"
)

// IsActiveOn reports whether the habit is active on the given date.
// A habit with no weekday mask is active every day. Activity governs
// whether the habit exists for completion purposes on that date.
func IsActiveOn(habit models.Habit, date time.Time) bool {
	if len(habit.Days) != 7 {
		return true
	}
	return habit.Days[timeutil.WeekdayIndex(date)]
}

// ActiveHabits returns the habits active on the date, filtered by
// identity and sorted by display order with name as tie-break. The
// ordering is deterministic and stable; the UI relies on positional
// indices for reordering.
func ActiveHabits(habits []models.Habit, date time.Time, identityFilter string) []models.Habit {
	out := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if identityFilter != "" && identityFilter != constants.AllIdentities && h.IdentityID != identityFilter {
			continue
		}
		if !IsActiveOn(h, date) {
			continue
		}
		out = append(out, h)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// StatusOn reports a habit's status for a day.
func StatusOn(s models.Snapshot, habitID, dayKey string) constants.DayStatus {
	if models.HasID(s.Completed[dayKey], habitID) {
		return constants.StatusDone
	}
	marks := s.Marks[dayKey]
	if models.HasID(marks.Skip, habitID) {
		return constants.StatusSkipped
	}
	if models.HasID(marks.Fail, habitID) {
		return constants.StatusFailed
	}
	return constants.StatusNone
}

// DayCompletionPercent returns completed/active for the date as a 0-1
// fraction, and 0 when no habits are active.
func DayCompletionPercent(s models.Snapshot, date time.Time, identityFilter string) float64 {
	active := ActiveHabits(s.Habits, date, identityFilter)
	if len(active) == 0 {
		return 0
	}
	day := timeutil.DayKey(date)
	completed := 0
	for _, h := range active {
		if models.HasID(s.Completed[day], h.ID) {
			completed++
		}
	}
	return float64(completed) / float64(len(active))
}

// StepsDoneOn returns the completed step IDs of a routine habit for a day.
func StepsDoneOn(s models.Snapshot, habitID, dayKey string) []string {
	return s.StepLogs[dayKey][habitID]
}

// NoteOn returns the note for a (day, habit) pair, empty when absent.
func NoteOn(s models.Snapshot, habitID, dayKey string) string {
	return s.Notes[dayKey][habitID]
}

// ScheduledReminder is a computed reminder value handed to the
// notification layer; the query layer only computes, never notifies.
type ScheduledReminder struct {
	HabitName string
	Time      string // HH:MM
}

// DueSchedules returns the reminders for habits whose schedule recurs
// on the given date, sorted by time then name.
func DueSchedules(s models.Snapshot, date time.Time) []ScheduledReminder {
	var out []ScheduledReminder
	for _, h := range s.Habits {
		sched, ok := s.Schedules[h.ID]
		if !ok {
			continue
		}
		if !scheduleRecursOn(sched, date) {
			continue
		}
		out = append(out, ScheduledReminder{HabitName: h.Name, Time: sched.Time})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].HabitName < out[j].HabitName
	})
	return out
}

func scheduleRecursOn(sched models.HabitSchedule, date time.Time) bool {
	switch sched.Recurring {
	case constants.RecurrenceDaily, constants.RecurrenceOnce:
		return true
	case constants.RecurrenceCustom:
		if len(sched.RecurringDays) != 7 {
			return false
		}
		return sched.RecurringDays[timeutil.WeekdayIndex(date)]
	default:
		return false
	}
}
