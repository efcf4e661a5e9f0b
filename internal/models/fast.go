package models

import "time"

// ActiveFast is an in-progress fasting session tied to a fasting habit.
// TargetTime is always StartTime + DurationHours; the record exists only
// while the session is uncompleted and is removed when the session ends.
type ActiveFast struct {
	StartTime     time.Time `json:"start_time"`
	DurationHours int       `json:"duration_hours"`
	TargetTime    time.Time `json:"target_time"`
}
