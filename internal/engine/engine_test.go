package engine

import (
	"testing"
	"time"

	"github.com/sgreene/habitat/internal/constants"
	"github.com/sgreene/habitat/internal/models"
)

const day = "2025-03-15"

func newTestEngine() *Engine {
	return NewWithIDs(&SequenceGenerator{Prefix: "id-"})
}

// seed builds a snapshot with one plain habit and returns its ID.
func seed(t *testing.T, e *Engine) (models.Snapshot, string) {
	t.Helper()
	s := e.Apply(models.NewSnapshot(), AddHabit{Habit: models.Habit{
		Name:       "Read",
		WeeklyGoal: 3,
		IdentityID: constants.GeneralIdentityID,
	}})
	if len(s.Habits) != 1 {
		t.Fatalf("expected 1 habit after add, got %d", len(s.Habits))
	}
	return s, s.Habits[0].ID
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	e := newTestEngine()
	s, id := seed(t, e)

	before := s.Clone()
	_ = e.Apply(s, ToggleHabit{HabitID: id, Date: day})

	if len(s.Completed) != len(before.Completed) {
		t.Error("input snapshot was mutated by Apply")
	}
	if len(s.Habits) != 1 || s.Habits[0].Name != "Read" {
		t.Error("input habit list was mutated by Apply")
	}
}

func TestToggle_CycleReturnsToNone(t *testing.T) {
	e := newTestEngine()
	s, id := seed(t, e)

	statuses := []constants.DayStatus{
		constants.StatusDone,
		constants.StatusSkipped,
		constants.StatusFailed,
		constants.StatusNone,
	}
	for i, want := range statuses {
		s = e.Apply(s, ToggleHabit{HabitID: id, Date: day})
		if got := statusFor(&s, day, id); got != want {
			t.Fatalf("toggle %d: status = %q, want %q", i+1, got, want)
		}
	}

	// Four toggles end where we started, with no residue in the day maps.
	if len(s.Completed) != 0 {
		t.Errorf("completed not empty after full cycle: %v", s.Completed)
	}
	if len(s.Marks) != 0 {
		t.Errorf("marks not empty after full cycle: %v", s.Marks)
	}
}

func TestStatusSets_Exclusive(t *testing.T) {
	e := newTestEngine()
	s, id := seed(t, e)

	// Walk through done, skip, fail and a direct skip over done; after
	// every action at most one set may contain the habit.
	actions := []Action{
		ToggleHabit{HabitID: id, Date: day},
		SkipHabit{HabitID: id, Date: day},
		FailHabit{HabitID: id, Date: day},
		ToggleHabit{HabitID: id, Date: day},
		ToggleHabit{HabitID: id, Date: day},
		SkipHabit{HabitID: id, Date: day},
	}
	for i, action := range actions {
		s = e.Apply(s, action)
		count := 0
		if models.HasID(s.Completed[day], id) {
			count++
		}
		if models.HasID(s.Marks[day].Skip, id) {
			count++
		}
		if models.HasID(s.Marks[day].Fail, id) {
			count++
		}
		if count > 1 {
			t.Fatalf("action %d: habit present in %d sets, want at most 1", i, count)
		}
	}

	if got := statusFor(&s, day, id); got != constants.StatusSkipped {
		t.Errorf("final status = %q, want skipped", got)
	}
}

func TestSkipAndFail_Idempotent(t *testing.T) {
	e := newTestEngine()
	s, id := seed(t, e)

	s = e.Apply(s, SkipHabit{HabitID: id, Date: day})
	s = e.Apply(s, SkipHabit{HabitID: id, Date: day})
	if got := statusFor(&s, day, id); got != constants.StatusSkipped {
		t.Errorf("status after double skip = %q, want skipped", got)
	}
	if len(s.Marks[day].Skip) != 1 {
		t.Errorf("skip set has %d entries, want 1", len(s.Marks[day].Skip))
	}

	s = e.Apply(s, FailHabit{HabitID: id, Date: day})
	s = e.Apply(s, FailHabit{HabitID: id, Date: day})
	if got := statusFor(&s, day, id); got != constants.StatusFailed {
		t.Errorf("status after double fail = %q, want failed", got)
	}
	if len(s.Marks[day].Skip) != 0 {
		t.Errorf("skip set not cleared by fail: %v", s.Marks[day].Skip)
	}
}

func TestStaleIDs_NoOp(t *testing.T) {
	e := newTestEngine()
	s, _ := seed(t, e)

	before := s.Clone()
	for _, action := range []Action{
		ToggleHabit{HabitID: "ghost", Date: day},
		SkipHabit{HabitID: "ghost", Date: day},
		FailHabit{HabitID: "ghost", Date: day},
		UpdateHabit{Habit: models.Habit{ID: "ghost", Name: "x"}},
		DeleteHabit{HabitID: "ghost"},
		ToggleRoutineStep{HabitID: "ghost", StepID: "s", Date: day},
		SetSchedule{HabitID: "ghost", Schedule: models.HabitSchedule{Time: "08:00"}},
		SetNote{HabitID: "ghost", Date: day, Note: "hi"},
		StartFast{HabitID: "ghost", StartTime: time.Now(), DurationHours: 16},
		UpdateFastStart{HabitID: "ghost", StartTime: time.Now()},
		EndFast{HabitID: "ghost"},
		UpdateIdentity{Identity: models.Identity{ID: "ghost", Name: "x"}},
		DeleteIdentity{IdentityID: "ghost"},
	} {
		s = e.Apply(s, action)
	}

	if len(s.Habits) != len(before.Habits) ||
		len(s.Identities) != len(before.Identities) ||
		len(s.Completed) != 0 || len(s.Marks) != 0 ||
		len(s.Notes) != 0 || len(s.Schedules) != 0 ||
		len(s.StepLogs) != 0 || len(s.Fasts) != 0 {
		t.Error("stale-ID actions changed the snapshot")
	}
}

func TestAddHabit_AssignsIDsAndOrder(t *testing.T) {
	e := newTestEngine()
	s := models.NewSnapshot()

	s = e.Apply(s, AddHabit{Habit: models.Habit{Name: "First"}})
	s = e.Apply(s, AddHabit{Habit: models.Habit{
		Name:      "Routine",
		IsRoutine: true,
		Steps: []models.RoutineStep{
			{Name: "stretch"},
			{Name: "meditate"},
		},
	}})

	if s.Habits[0].ID == "" || s.Habits[1].ID == "" {
		t.Fatal("habit IDs not assigned")
	}
	if s.Habits[0].Order != 0 || s.Habits[1].Order != 1 {
		t.Errorf("orders = %d, %d; want 0, 1", s.Habits[0].Order, s.Habits[1].Order)
	}
	for i, step := range s.Habits[1].Steps {
		if step.ID == "" {
			t.Errorf("step %d has no ID", i)
		}
		if step.Order != i {
			t.Errorf("step %d order = %d", i, step.Order)
		}
	}
}

func TestUpdateHabit_PreservesOrder(t *testing.T) {
	e := newTestEngine()
	s, id := seed(t, e)
	s = e.Apply(s, AddHabit{Habit: models.Habit{Name: "Second"}})

	s = e.Apply(s, UpdateHabit{Habit: models.Habit{
		ID:         id,
		Name:       "Read more",
		WeeklyGoal: 5,
		Order:      99, // must be ignored
	}})

	h := s.FindHabit(id)
	if h.Name != "Read more" || h.WeeklyGoal != 5 {
		t.Errorf("update not applied: %+v", h)
	}
	if h.Order != 0 {
		t.Errorf("order changed via update: got %d, want 0", h.Order)
	}
}

func TestDeleteHabit_Cascades(t *testing.T) {
	e := newTestEngine()
	s := e.Apply(models.NewSnapshot(), AddHabit{Habit: models.Habit{
		Name:      "Morning",
		IsRoutine: true,
		Steps:     []models.RoutineStep{{Name: "water"}},
	}})
	id := s.Habits[0].ID
	stepID := s.Habits[0].Steps[0].ID

	s = e.Apply(s, ToggleRoutineStep{HabitID: id, StepID: stepID, Date: day})
	s = e.Apply(s, SetNote{HabitID: id, Date: day, Note: "felt great"})
	s = e.Apply(s, SetSchedule{HabitID: id, Schedule: models.HabitSchedule{
		Time: "07:00", DurationMin: 30, Recurring: constants.RecurrenceDaily,
	}})
	s = e.Apply(s, StartFast{HabitID: id, StartTime: time.Now(), DurationHours: 16})
	s = e.Apply(s, SkipHabit{HabitID: id, Date: "2025-03-16"})

	s = e.Apply(s, DeleteHabit{HabitID: id})

	if len(s.Habits) != 0 {
		t.Fatal("habit not removed")
	}
	if len(s.Completed) != 0 {
		t.Errorf("completed retains deleted habit: %v", s.Completed)
	}
	if len(s.Marks) != 0 {
		t.Errorf("marks retain deleted habit: %v", s.Marks)
	}
	if len(s.Notes) != 0 {
		t.Errorf("notes retain deleted habit: %v", s.Notes)
	}
	if len(s.StepLogs) != 0 {
		t.Errorf("step logs retain deleted habit: %v", s.StepLogs)
	}
	if len(s.Schedules) != 0 {
		t.Errorf("schedules retain deleted habit: %v", s.Schedules)
	}
	if len(s.Fasts) != 0 {
		t.Errorf("fasts retain deleted habit: %v", s.Fasts)
	}
}

func TestDeleteHabit_LeavesOthersAlone(t *testing.T) {
	e := newTestEngine()
	s, keepID := seed(t, e)
	s = e.Apply(s, AddHabit{Habit: models.Habit{Name: "Doomed"}})
	doomedID := s.Habits[1].ID

	s = e.Apply(s, ToggleHabit{HabitID: keepID, Date: day})
	s = e.Apply(s, ToggleHabit{HabitID: doomedID, Date: day})

	s = e.Apply(s, DeleteHabit{HabitID: doomedID})

	if !models.HasID(s.Completed[day], keepID) {
		t.Error("surviving habit lost its completion")
	}
	if models.HasID(s.Completed[day], doomedID) {
		t.Error("deleted habit still completed")
	}
}

func TestReorderHabits(t *testing.T) {
	e := newTestEngine()
	s := models.NewSnapshot()
	for _, name := range []string{"a", "b", "c", "d"} {
		s = e.Apply(s, AddHabit{Habit: models.Habit{Name: name}})
	}
	ids := make(map[string]string, 4)
	for _, h := range s.Habits {
		ids[h.Name] = h.ID
	}

	// Partial ordering: unlisted habits keep relative order after it.
	s = e.Apply(s, ReorderHabits{HabitIDs: []string{ids["c"], ids["a"]}})

	want := map[string]int{"c": 0, "a": 1, "b": 2, "d": 3}
	for _, h := range s.Habits {
		if h.Order != want[h.Name] {
			t.Errorf("habit %q order = %d, want %d", h.Name, h.Order, want[h.Name])
		}
	}
}

func TestRoutine_ToggleParentCompletesAllSteps(t *testing.T) {
	e := newTestEngine()
	s := e.Apply(models.NewSnapshot(), AddHabit{Habit: models.Habit{
		Name:      "Morning",
		IsRoutine: true,
		Steps: []models.RoutineStep{
			{Name: "water"},
			{Name: "stretch"},
		},
	}})
	h := s.Habits[0]

	s = e.Apply(s, ToggleHabit{HabitID: h.ID, Date: day})

	done := s.StepLogs[day][h.ID]
	if len(done) != 2 {
		t.Fatalf("expected all 2 steps done, got %v", done)
	}
	for _, step := range h.Steps {
		if !models.HasID(done, step.ID) {
			t.Errorf("step %q not marked done", step.Name)
		}
	}

	// Leaving done clears the step log entirely.
	s = e.Apply(s, ToggleHabit{HabitID: h.ID, Date: day})
	if got := statusFor(&s, day, h.ID); got != constants.StatusSkipped {
		t.Fatalf("status = %q, want skipped", got)
	}
	if len(s.StepLogs) != 0 {
		t.Errorf("step log not cleared on leaving done: %v", s.StepLogs)
	}
}

func TestRoutine_LastStepCompletesParent(t *testing.T) {
	e := newTestEngine()
	s := e.Apply(models.NewSnapshot(), AddHabit{Habit: models.Habit{
		Name:      "Morning",
		IsRoutine: true,
		Steps: []models.RoutineStep{
			{Name: "water"},
			{Name: "stretch"},
		},
	}})
	h := s.Habits[0]

	s = e.Apply(s, ToggleRoutineStep{HabitID: h.ID, StepID: h.Steps[0].ID, Date: day})
	if got := statusFor(&s, day, h.ID); got != constants.StatusNone {
		t.Fatalf("status after 1/2 steps = %q, want none", got)
	}

	s = e.Apply(s, ToggleRoutineStep{HabitID: h.ID, StepID: h.Steps[1].ID, Date: day})
	if got := statusFor(&s, day, h.ID); got != constants.StatusDone {
		t.Fatalf("status after 2/2 steps = %q, want done", got)
	}

	// Unchecking one step regresses the parent to none.
	s = e.Apply(s, ToggleRoutineStep{HabitID: h.ID, StepID: h.Steps[0].ID, Date: day})
	if got := statusFor(&s, day, h.ID); got != constants.StatusNone {
		t.Errorf("status after regress = %q, want none", got)
	}
	if !models.HasID(s.StepLogs[day][h.ID], h.Steps[1].ID) {
		t.Error("remaining step completion lost on regress")
	}
}

func TestRoutine_UnknownStepNoOp(t *testing.T) {
	e := newTestEngine()
	s := e.Apply(models.NewSnapshot(), AddHabit{Habit: models.Habit{
		Name:      "Morning",
		IsRoutine: true,
		Steps:     []models.RoutineStep{{Name: "water"}},
	}})
	h := s.Habits[0]

	s = e.Apply(s, ToggleRoutineStep{HabitID: h.ID, StepID: "nope", Date: day})
	if len(s.StepLogs) != 0 {
		t.Errorf("unknown step changed the log: %v", s.StepLogs)
	}
}

func TestIdentity_DeleteReassignsHabits(t *testing.T) {
	e := newTestEngine()
	s := e.Apply(models.NewSnapshot(), AddIdentity{Identity: models.Identity{Name: "Health", Color: "#00ff00"}})
	identityID := s.Identities[1].ID

	s = e.Apply(s, AddHabit{Habit: models.Habit{Name: "Run", IdentityID: identityID}})
	habitID := s.Habits[0].ID
	s = e.Apply(s, SetIdentityFilter{IdentityID: identityID})

	s = e.Apply(s, DeleteIdentity{IdentityID: identityID})

	if s.FindIdentity(identityID) != nil {
		t.Fatal("identity not deleted")
	}
	if got := s.FindHabit(habitID).IdentityID; got != constants.GeneralIdentityID {
		t.Errorf("habit identity = %q, want general", got)
	}
	if s.Prefs.IdentityFilter != constants.AllIdentities {
		t.Errorf("filter = %q, want all", s.Prefs.IdentityFilter)
	}
}

func TestIdentity_GeneralUndeletable(t *testing.T) {
	e := newTestEngine()
	s := models.NewSnapshot()

	s = e.Apply(s, DeleteIdentity{IdentityID: constants.GeneralIdentityID})

	if s.FindIdentity(constants.GeneralIdentityID) == nil {
		t.Fatal("general identity was deleted")
	}
}

func TestIdentity_AddDuplicateIDIgnored(t *testing.T) {
	e := newTestEngine()
	s := models.NewSnapshot()

	s = e.Apply(s, AddIdentity{Identity: models.Identity{ID: "health", Name: "Health"}})
	s = e.Apply(s, AddIdentity{Identity: models.Identity{ID: "health", Name: "Other"}})

	if len(s.Identities) != 2 { // general + health
		t.Fatalf("expected 2 identities, got %d", len(s.Identities))
	}
	if s.FindIdentity("health").Name != "Health" {
		t.Error("duplicate add overwrote the original identity")
	}
}

func TestNotes_EmptyStringDeletes(t *testing.T) {
	e := newTestEngine()
	s, id := seed(t, e)

	s = e.Apply(s, SetNote{HabitID: id, Date: day, Note: "went well"})
	if s.Notes[day][id] != "went well" {
		t.Fatalf("note not stored: %v", s.Notes)
	}

	s = e.Apply(s, SetNote{HabitID: id, Date: day, Note: ""})
	if len(s.Notes) != 0 {
		t.Errorf("empty note persisted: %v", s.Notes)
	}
}

func TestSchedule_SetAndClear(t *testing.T) {
	e := newTestEngine()
	s, id := seed(t, e)

	sched := models.HabitSchedule{
		Time:        "07:30",
		DurationMin: 45,
		Recurring:   constants.RecurrenceCustom,
		RecurringDays: []bool{false, true, true, true, true, true, false},
	}
	s = e.Apply(s, SetSchedule{HabitID: id, Schedule: sched})
	if got := s.Schedules[id]; got.Time != "07:30" || got.DurationMin != 45 {
		t.Fatalf("schedule not stored: %+v", got)
	}

	s = e.Apply(s, ClearSchedule{HabitID: id})
	if _, ok := s.Schedules[id]; ok {
		t.Error("schedule not cleared")
	}
}

func TestFast_Lifecycle(t *testing.T) {
	e := newTestEngine()
	s := e.Apply(models.NewSnapshot(), AddHabit{Habit: models.Habit{Name: "Intermittent fast"}})
	id := s.Habits[0].ID

	start := time.Date(2025, 3, 15, 20, 0, 0, 0, time.Local)
	s = e.Apply(s, StartFast{HabitID: id, StartTime: start, DurationHours: 16})

	fast := s.Fasts[id]
	if !fast.TargetTime.Equal(start.Add(16 * time.Hour)) {
		t.Errorf("target = %v, want start+16h", fast.TargetTime)
	}

	// Editing the start keeps the duration and moves the target.
	newStart := start.Add(-2 * time.Hour)
	s = e.Apply(s, UpdateFastStart{HabitID: id, StartTime: newStart})
	fast = s.Fasts[id]
	if fast.DurationHours != 16 {
		t.Errorf("duration changed on start edit: %d", fast.DurationHours)
	}
	if !fast.TargetTime.Equal(newStart.Add(16 * time.Hour)) {
		t.Errorf("target not recomputed: %v", fast.TargetTime)
	}

	s = e.Apply(s, EndFast{HabitID: id})
	if _, ok := s.Fasts[id]; ok {
		t.Error("fast record survives EndFast")
	}
}

func TestPreferences(t *testing.T) {
	e := newTestEngine()
	s := models.NewSnapshot()

	s = e.Apply(s, SetTheme{Theme: "forest"})
	s = e.Apply(s, SetPetCosmetic{Cosmetic: "scarf"})
	s = e.Apply(s, CompleteOnboarding{})

	if s.Prefs.Theme != "forest" || s.Prefs.PetCosmetic != "scarf" || !s.Prefs.OnboardingDone {
		t.Errorf("preferences not applied: %+v", s.Prefs)
	}
}

func TestLoadState_BackfillsDefaults(t *testing.T) {
	e := newTestEngine()

	// A sparse snapshot, as an old export would produce.
	sparse := models.Snapshot{
		Habits: []models.Habit{{ID: "h1", Name: "Read"}},
	}

	s := e.Apply(models.NewSnapshot(), LoadState{Snapshot: sparse})

	if s.Completed == nil || s.Marks == nil || s.Notes == nil ||
		s.Schedules == nil || s.StepLogs == nil || s.Fasts == nil {
		t.Fatal("maps not backfilled")
	}
	if s.Prefs.IdentityFilter != constants.AllIdentities {
		t.Errorf("filter = %q, want all", s.Prefs.IdentityFilter)
	}
	if s.FindIdentity(constants.GeneralIdentityID) == nil {
		t.Error("general identity not backfilled")
	}

	// Loading the already-loaded state again changes nothing.
	again := e.Apply(s, LoadState{Snapshot: s})
	if len(again.Identities) != len(s.Identities) || len(again.Habits) != len(s.Habits) {
		t.Error("second LoadState not idempotent")
	}
}

func TestSequenceGenerator(t *testing.T) {
	g := &SequenceGenerator{Prefix: "x"}
	if a, b := g.NewID(), g.NewID(); a != "x1" || b != "x2" {
		t.Errorf("got %q, %q; want x1, x2", a, b)
	}
}
