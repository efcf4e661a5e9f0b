package validation

import (
	"testing"

	"github.com/sgreene/habitat/internal/constants"
	"github.com/sgreene/habitat/internal/models"
)

func hasConflict(r Result, t ConflictType) bool {
	for _, c := range r.Conflicts {
		if c.Type == t {
			return true
		}
	}
	return false
}

func TestValidateHabit(t *testing.T) {
	identities := []models.Identity{{ID: constants.GeneralIdentityID, Name: "General"}}

	valid := models.Habit{
		Name:       "Read",
		WeeklyGoal: 3,
		IdentityID: constants.GeneralIdentityID,
	}

	tests := []struct {
		name     string
		mutate   func(*models.Habit)
		conflict ConflictType
	}{
		{
			name:     "empty name",
			mutate:   func(h *models.Habit) { h.Name = "" },
			conflict: ConflictEmptyName,
		},
		{
			name:     "weekly goal zero",
			mutate:   func(h *models.Habit) { h.WeeklyGoal = 0 },
			conflict: ConflictWeeklyGoalRange,
		},
		{
			name:     "weekly goal above seven",
			mutate:   func(h *models.Habit) { h.WeeklyGoal = 8 },
			conflict: ConflictWeeklyGoalRange,
		},
		{
			name:     "short day mask",
			mutate:   func(h *models.Habit) { h.Days = []bool{true, false} },
			conflict: ConflictInvalidDayMask,
		},
		{
			name:     "routine without steps",
			mutate:   func(h *models.Habit) { h.IsRoutine = true },
			conflict: ConflictRoutineNoSteps,
		},
		{
			name: "steps without routine flag",
			mutate: func(h *models.Habit) {
				h.Steps = []models.RoutineStep{{ID: "s1", Name: "water"}}
			},
			conflict: ConflictRoutineNoSteps,
		},
		{
			name: "duplicate step IDs",
			mutate: func(h *models.Habit) {
				h.IsRoutine = true
				h.Steps = []models.RoutineStep{
					{ID: "s1", Name: "water"},
					{ID: "s1", Name: "stretch"},
				}
			},
			conflict: ConflictDuplicateStepID,
		},
		{
			name:     "unknown identity",
			mutate:   func(h *models.Habit) { h.IdentityID = "nope" },
			conflict: ConflictInvalidIdentityRef,
		},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := valid
			tt.mutate(&h)
			result := v.ValidateHabit(h, identities)
			if !hasConflict(result, tt.conflict) {
				t.Errorf("expected conflict %q, got %+v", tt.conflict, result.Conflicts)
			}
		})
	}

	t.Run("valid habit passes", func(t *testing.T) {
		if r := v.ValidateHabit(valid, identities); r.HasConflicts() {
			t.Errorf("unexpected conflicts: %+v", r.Conflicts)
		}
	})

	t.Run("unassigned step IDs allowed", func(t *testing.T) {
		h := valid
		h.IsRoutine = true
		h.Steps = []models.RoutineStep{{Name: "water"}, {Name: "stretch"}}
		if r := v.ValidateHabit(h, identities); r.HasConflicts() {
			t.Errorf("unexpected conflicts for unassigned step IDs: %+v", r.Conflicts)
		}
	})

	t.Run("full day mask passes", func(t *testing.T) {
		h := valid
		h.Days = []bool{false, true, true, true, true, true, false}
		if r := v.ValidateHabit(h, identities); r.HasConflicts() {
			t.Errorf("unexpected conflicts: %+v", r.Conflicts)
		}
	})
}

func TestValidateSchedule(t *testing.T) {
	v := New()

	tests := []struct {
		name     string
		sched    models.HabitSchedule
		conflict ConflictType
		ok       bool
	}{
		{
			name:  "valid daily",
			sched: models.HabitSchedule{Time: "07:30", Recurring: constants.RecurrenceDaily},
			ok:    true,
		},
		{
			name:  "valid once",
			sched: models.HabitSchedule{Time: "18:00", Recurring: constants.RecurrenceOnce},
			ok:    true,
		},
		{
			name: "valid custom",
			sched: models.HabitSchedule{
				Time: "07:30", Recurring: constants.RecurrenceCustom,
				RecurringDays: []bool{false, true, true, true, true, true, false},
			},
			ok: true,
		},
		{
			name:     "bad time",
			sched:    models.HabitSchedule{Time: "25:99", Recurring: constants.RecurrenceDaily},
			conflict: ConflictInvalidTime,
		},
		{
			name:     "custom without mask",
			sched:    models.HabitSchedule{Time: "07:30", Recurring: constants.RecurrenceCustom},
			conflict: ConflictMissingCustomDays,
		},
		{
			name:     "unknown recurrence",
			sched:    models.HabitSchedule{Time: "07:30", Recurring: "yearly"},
			conflict: ConflictInvalidTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateSchedule(tt.sched)
			if tt.ok {
				if result.HasConflicts() {
					t.Errorf("unexpected conflicts: %+v", result.Conflicts)
				}
				return
			}
			if !hasConflict(result, tt.conflict) {
				t.Errorf("expected conflict %q, got %+v", tt.conflict, result.Conflicts)
			}
		})
	}
}

func TestValidateFastDuration(t *testing.T) {
	v := New()

	for _, hours := range constants.FastDurations {
		if r := v.ValidateFastDuration(hours); r.HasConflicts() {
			t.Errorf("duration %dh rejected: %+v", hours, r.Conflicts)
		}
	}
	for _, hours := range []int{0, 1, 13, 15, 36, -16} {
		r := v.ValidateFastDuration(hours)
		if !hasConflict(r, ConflictInvalidFastLength) {
			t.Errorf("duration %dh accepted, want conflict", hours)
		}
	}
}
