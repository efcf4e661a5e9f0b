package models

import "github.com/sgreene/habitat/internal/constants"

// HabitSchedule places a habit on the day-plan timeline.
// RecurringDays is a 7-element weekday mask (index 0 = Sunday) and is
// only meaningful when Recurring is "custom".
type HabitSchedule struct {
	Time          string                   `json:"time"` // HH:MM format
	DurationMin   int                      `json:"duration_min"`
	Recurring     constants.RecurrenceType `json:"recurring"`
	RecurringDays []bool                   `json:"recurring_days,omitempty"`
}
