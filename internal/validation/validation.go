// Package validation holds construction-time checks run before actions
// are dispatched. The engine is total and does not re-validate per
// transition; rejecting malformed entities here keeps invariant
// violations (e.g. a routine with zero steps) out of the snapshot.
package validation

import (
	"fmt"

	"github.com/sgreene/habitat/internal/constants"
	"github.com/sgreene/habitat/internal/models"
	"github.com/sgreene/habitat/internal/timeutil"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictEmptyName          ConflictType = "empty_name"
	ConflictWeeklyGoalRange    ConflictType = "weekly_goal_out_of_range"
	ConflictRoutineNoSteps     ConflictType = "routine_without_steps"
	ConflictDuplicateStepID    ConflictType = "duplicate_step_id"
	ConflictInvalidDayMask     ConflictType = "invalid_day_mask"
	ConflictInvalidTime        ConflictType = "invalid_time"
	ConflictMissingCustomDays  ConflictType = "missing_custom_days"
	ConflictInvalidFastLength  ConflictType = "invalid_fast_duration"
	ConflictInvalidIdentityRef ConflictType = "invalid_identity_ref"
)

// Conflict is a single validation failure.
type Conflict struct {
	Type    ConflictType
	Message string
}

// Result collects the conflicts found by a validation pass.
type Result struct {
	Conflicts []Conflict
}

// HasConflicts reports whether any conflict was found.
func (r Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

func (r *Result) add(t ConflictType, format string, args ...interface{}) {
	r.Conflicts = append(r.Conflicts, Conflict{
		Type:    t,
		Message: fmt.Sprintf(format, args...),
	})
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateHabit checks a habit before AddHabit/UpdateHabit is dispatched.
func (v *Validator) ValidateHabit(habit models.Habit, identities []models.Identity) Result {
	var result Result

	if habit.Name == "" {
		result.add(ConflictEmptyName, "habit name must not be empty")
	}
	if habit.WeeklyGoal < 1 || habit.WeeklyGoal > 7 {
		result.add(ConflictWeeklyGoalRange, "weekly goal %d is out of range 1-7", habit.WeeklyGoal)
	}
	if habit.Days != nil && len(habit.Days) != 7 {
		result.add(ConflictInvalidDayMask, "day mask must have 7 entries, got %d", len(habit.Days))
	}
	if habit.IsRoutine && len(habit.Steps) == 0 {
		result.add(ConflictRoutineNoSteps, "routine habit %q has no steps", habit.Name)
	}
	if !habit.IsRoutine && len(habit.Steps) > 0 {
		result.add(ConflictRoutineNoSteps, "habit %q carries steps but is not a routine", habit.Name)
	}

	seen := make(map[string]bool, len(habit.Steps))
	for _, step := range habit.Steps {
		if step.ID == "" {
			continue // engine assigns missing step IDs on add
		}
		if seen[step.ID] {
			result.add(ConflictDuplicateStepID, "duplicate step id %q", step.ID)
		}
		seen[step.ID] = true
	}

	if habit.IdentityID != "" && identities != nil {
		found := false
		for _, identity := range identities {
			if identity.ID == habit.IdentityID {
				found = true
				break
			}
		}
		if !found {
			result.add(ConflictInvalidIdentityRef, "unknown identity %q", habit.IdentityID)
		}
	}

	return result
}

// ValidateSchedule checks a day-plan schedule before SetSchedule.
func (v *Validator) ValidateSchedule(sched models.HabitSchedule) Result {
	var result Result

	if !timeutil.ValidTimeOfDay(sched.Time) {
		result.add(ConflictInvalidTime, "invalid time %q (expected HH:MM)", sched.Time)
	}
	switch sched.Recurring {
	case constants.RecurrenceOnce, constants.RecurrenceDaily:
	case constants.RecurrenceCustom:
		if len(sched.RecurringDays) != 7 {
			result.add(ConflictMissingCustomDays, "custom recurrence requires a 7-day mask")
		}
	default:
		result.add(ConflictInvalidTime, "unknown recurrence %q", sched.Recurring)
	}

	return result
}

// ValidateFastDuration checks a fasting duration before StartFast.
func (v *Validator) ValidateFastDuration(hours int) Result {
	var result Result
	if !constants.IsAllowedFastDuration(hours) {
		result.add(ConflictInvalidFastLength, "unsupported fast duration %dh (allowed: %v)", hours, constants.FastDurations)
	}
	return result
}
