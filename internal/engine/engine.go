package engine

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/sgreene/habitat/internal/models"
)

// IDGenerator produces identifiers for newly created entities.
// Implemented by UUIDGenerator (production) and SequenceGenerator (tests).
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random UUID identifiers.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// SequenceGenerator generates predictable identifiers for tests.
type SequenceGenerator struct {
	Prefix string
	n      int
}

func (g *SequenceGenerator) NewID() string {
	g.n++
	return g.Prefix + strconv.Itoa(g.n)
}

// Engine is the single state-transition function over snapshots.
//
// Apply is pure: it never reads wall-clock time or external state, and
// it returns a new snapshot, leaving the input untouched. The engine is
// total: unrecognized actions and stale entity IDs are silent no-ops,
// never errors, since the UI may legitimately race a deletion with a
// pending action.
//
// The engine performs no locking; the caller is responsible for
// serializing dispatch (one logical writer) and for persisting the
// resulting snapshot.
type Engine struct {
	ids IDGenerator
}

// New creates an engine with random UUID identifiers.
func New() *Engine {
	return &Engine{ids: UUIDGenerator{}}
}

// NewWithIDs creates an engine with a custom identifier generator.
func NewWithIDs(ids IDGenerator) *Engine {
	return &Engine{ids: ids}
}

// Apply executes a single transition and returns the new snapshot.
func (e *Engine) Apply(s models.Snapshot, action Action) models.Snapshot {
	next := s.Clone()
	next.Normalize()

	switch a := action.(type) {
	case AddHabit:
		e.applyAddHabit(&next, a)
	case UpdateHabit:
		applyUpdateHabit(&next, a)
	case DeleteHabit:
		applyDeleteHabit(&next, a)
	case ReorderHabits:
		applyReorderHabits(&next, a)
	case ToggleHabit:
		applyToggleHabit(&next, a)
	case SkipHabit:
		applySetStatus(&next, a.HabitID, a.Date, statusSkipped)
	case FailHabit:
		applySetStatus(&next, a.HabitID, a.Date, statusFailed)
	case ToggleRoutineStep:
		applyToggleRoutineStep(&next, a)
	case AddIdentity:
		e.applyAddIdentity(&next, a)
	case UpdateIdentity:
		applyUpdateIdentity(&next, a)
	case DeleteIdentity:
		applyDeleteIdentity(&next, a)
	case SetIdentityFilter:
		next.Prefs.IdentityFilter = a.IdentityID
	case SetSchedule:
		applySetSchedule(&next, a)
	case ClearSchedule:
		applyClearSchedule(&next, a)
	case SetNote:
		applySetNote(&next, a)
	case DeleteNote:
		deleteNote(&next, a.Date, a.HabitID)
	case StartFast:
		applyStartFast(&next, a)
	case UpdateFastStart:
		applyUpdateFastStart(&next, a)
	case EndFast:
		delete(next.Fasts, a.HabitID)
	case SetTheme:
		next.Prefs.Theme = a.Theme
	case SetPetCosmetic:
		next.Prefs.PetCosmetic = a.Cosmetic
	case CompleteOnboarding:
		next.Prefs.OnboardingDone = true
	case LoadState:
		next = a.Snapshot.Clone()
		next.Normalize()
	}

	return next
}
