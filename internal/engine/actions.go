package engine

import (
	"time"

	"github.com/sgreene/habitat/internal/models"
)

// Action is a single state transition request. Every date-dependent
// action carries its own day key; the engine never reads the clock.
//
// The interface is sealed so the Apply switch is exhaustive over the
// actions defined in this package; an action the switch does not know
// is a no-op, never an error.
type Action interface {
	isAction()
}

// AddHabit creates a new habit. The engine assigns the ID (and step IDs
// when absent) and appends the habit at the end of the display order.
type AddHabit struct {
	Habit models.Habit
}

// UpdateHabit replaces an existing habit wholesale by ID. The habit's
// Order is preserved from the existing record; ReorderHabits is the
// only mutation path for order.
type UpdateHabit struct {
	Habit models.Habit
}

// DeleteHabit removes a habit and cascades removal from logs, marks,
// notes, step logs, schedules, and fasts in the same transition.
type DeleteHabit struct {
	HabitID string
}

// ReorderHabits re-assigns every habit's Order to match its position in
// the supplied full ordering. IDs not present keep their relative order
// after the listed ones; unknown IDs are ignored.
type ReorderHabits struct {
	HabitIDs []string
}

// ToggleHabit advances the habit's status for the day by exactly one
// step of the cycle none -> done -> skipped -> failed -> none.
type ToggleHabit struct {
	HabitID string
	Date    string // day key
}

// SkipHabit sets the habit's status for the day directly to skipped.
type SkipHabit struct {
	HabitID string
	Date    string
}

// FailHabit sets the habit's status for the day directly to failed.
type FailHabit struct {
	HabitID string
	Date    string
}

// ToggleRoutineStep flips a single step's completion for the day and
// synchronizes the parent habit's status in the same transition.
type ToggleRoutineStep struct {
	HabitID string
	StepID  string
	Date    string
}

// AddIdentity creates a new identity; the engine assigns the ID when absent.
type AddIdentity struct {
	Identity models.Identity
}

// UpdateIdentity replaces an existing identity by ID.
type UpdateIdentity struct {
	Identity models.Identity
}

// DeleteIdentity removes an identity, reassigning its habits to the
// reserved general identity. Deleting general itself is a no-op.
type DeleteIdentity struct {
	IdentityID string
}

// SetIdentityFilter sets the active identity filter preference.
type SetIdentityFilter struct {
	IdentityID string // identity ID or constants.AllIdentities
}

// SetSchedule assigns a habit's day-plan schedule, replacing any existing one.
type SetSchedule struct {
	HabitID  string
	Schedule models.HabitSchedule
}

// ClearSchedule removes a habit's day-plan schedule.
type ClearSchedule struct {
	HabitID string
}

// SetNote sets the note for a (date, habit) pair. An empty note is
// treated as a delete; empty strings are never persisted.
type SetNote struct {
	HabitID string
	Date    string
	Note    string
}

// DeleteNote removes the note for a (date, habit) pair.
type DeleteNote struct {
	HabitID string
	Date    string
}

// StartFast begins a fasting session for a habit.
type StartFast struct {
	HabitID       string
	StartTime     time.Time
	DurationHours int
}

// UpdateFastStart edits an active fast's start time; the target time is
// recomputed using the existing duration.
type UpdateFastStart struct {
	HabitID   string
	StartTime time.Time
}

// EndFast removes a habit's active fast unconditionally.
type EndFast struct {
	HabitID string
}

// SetTheme sets the display theme preference.
type SetTheme struct {
	Theme string
}

// SetPetCosmetic sets the pet cosmetic preference.
type SetPetCosmetic struct {
	Cosmetic string
}

// CompleteOnboarding marks onboarding as done.
type CompleteOnboarding struct{}

// LoadState replaces the entire snapshot wholesale. Absent fields are
// backfilled with defaults via Normalize.
type LoadState struct {
	Snapshot models.Snapshot
}

func (AddHabit) isAction()           {}
func (UpdateHabit) isAction()        {}
func (DeleteHabit) isAction()        {}
func (ReorderHabits) isAction()      {}
func (ToggleHabit) isAction()        {}
func (SkipHabit) isAction()          {}
func (FailHabit) isAction()          {}
func (ToggleRoutineStep) isAction()  {}
func (AddIdentity) isAction()        {}
func (UpdateIdentity) isAction()     {}
func (DeleteIdentity) isAction()     {}
func (SetIdentityFilter) isAction()  {}
func (SetSchedule) isAction()        {}
func (ClearSchedule) isAction()      {}
func (SetNote) isAction()            {}
func (DeleteNote) isAction()         {}
func (StartFast) isAction()          {}
func (UpdateFastStart) isAction()    {}
func (EndFast) isAction()            {}
func (SetTheme) isAction()           {}
func (SetPetCosmetic) isAction()     {}
func (CompleteOnboarding) isAction() {}
func (LoadState) isAction()          {}
