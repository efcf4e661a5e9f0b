package models

import "time"

// RoutineStep is a single ordered sub-task of a routine habit
type RoutineStep struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DurationMin int    `json:"duration_min,omitempty"`
	Order       int    `json:"order"`
}

// Habit represents a recurring practice to track.
// Days is a 7-element weekday mask, index 0 = Sunday; a nil mask means
// the habit is active every day. A routine habit carries ordered steps
// and is only complete for a day when every step is complete.
type Habit struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	WeeklyGoal int           `json:"weekly_goal"`
	IdentityID string        `json:"identity_id"`
	CreatedAt  time.Time     `json:"created_at"`
	Days       []bool        `json:"days,omitempty"`
	Order      int           `json:"order"`
	IsRoutine  bool          `json:"is_routine,omitempty"`
	Steps      []RoutineStep `json:"steps,omitempty"`
}

// StepIDs returns the identifiers of all routine steps in declaration order.
func (h Habit) StepIDs() []string {
	if len(h.Steps) == 0 {
		return nil
	}
	ids := make([]string, 0, len(h.Steps))
	for _, step := range h.Steps {
		ids = append(ids, step.ID)
	}
	return ids
}
