package models

import (
	"testing"

	"github.com/sgreene/habitat/internal/constants"
)

func TestNewSnapshot_Defaults(t *testing.T) {
	s := NewSnapshot()

	if s.Habits == nil || s.Identities == nil || s.Completed == nil ||
		s.Marks == nil || s.Notes == nil || s.Schedules == nil ||
		s.StepLogs == nil || s.Fasts == nil {
		t.Fatal("new snapshot has nil collections")
	}
	if s.Prefs.IdentityFilter != constants.AllIdentities {
		t.Errorf("identity filter = %q, want all", s.Prefs.IdentityFilter)
	}
	if s.FindIdentity(constants.GeneralIdentityID) == nil {
		t.Error("new snapshot missing general identity")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	s := NewSnapshot()
	s.Identities = append(s.Identities, Identity{ID: "health", Name: "Health"})

	before := len(s.Identities)
	s.Normalize()
	s.Normalize()

	if len(s.Identities) != before {
		t.Errorf("identities grew on repeat normalize: %d -> %d", before, len(s.Identities))
	}
	if s.Identities[0].ID != constants.GeneralIdentityID {
		t.Errorf("general identity not first: %q", s.Identities[0].ID)
	}
}

func TestNormalize_PrependsGeneral(t *testing.T) {
	s := Snapshot{
		Identities: []Identity{{ID: "health", Name: "Health"}},
	}
	s.Normalize()

	if s.Identities[0].ID != constants.GeneralIdentityID {
		t.Errorf("general identity not prepended: %v", s.Identities)
	}
	if len(s.Identities) != 2 {
		t.Errorf("got %d identities, want 2", len(s.Identities))
	}
}

func TestClone_DeepCopy(t *testing.T) {
	s := NewSnapshot()
	s.Habits = []Habit{{
		ID: "h1", Name: "Morning", IsRoutine: true,
		Days:  []bool{true, true, true, true, true, true, true},
		Steps: []RoutineStep{{ID: "s1", Name: "water"}},
	}}
	s.Completed["2025-03-15"] = []string{"h1"}
	s.Marks["2025-03-15"] = DayMarks{Skip: []string{"x"}}
	s.Notes["2025-03-15"] = map[string]string{"h1": "note"}
	s.StepLogs["2025-03-15"] = map[string][]string{"h1": {"s1"}}
	s.Schedules["h1"] = HabitSchedule{Time: "07:00", RecurringDays: []bool{true, false, false, false, false, false, false}}

	c := s.Clone()

	// Mutate every nested structure of the clone.
	c.Habits[0].Name = "changed"
	c.Habits[0].Days[0] = false
	c.Habits[0].Steps[0].Name = "changed"
	c.Completed["2025-03-15"][0] = "other"
	marks := c.Marks["2025-03-15"]
	marks.Skip[0] = "other"
	c.Notes["2025-03-15"]["h1"] = "changed"
	c.StepLogs["2025-03-15"]["h1"][0] = "other"
	sched := c.Schedules["h1"]
	sched.RecurringDays[0] = false

	if s.Habits[0].Name != "Morning" || !s.Habits[0].Days[0] || s.Habits[0].Steps[0].Name != "water" {
		t.Error("habit mutation leaked into original")
	}
	if s.Completed["2025-03-15"][0] != "h1" {
		t.Error("completed mutation leaked into original")
	}
	if s.Marks["2025-03-15"].Skip[0] != "x" {
		t.Error("marks mutation leaked into original")
	}
	if s.Notes["2025-03-15"]["h1"] != "note" {
		t.Error("notes mutation leaked into original")
	}
	if s.StepLogs["2025-03-15"]["h1"][0] != "s1" {
		t.Error("step log mutation leaked into original")
	}
	if !s.Schedules["h1"].RecurringDays[0] {
		t.Error("schedule mutation leaked into original")
	}
}

func TestSetHelpers(t *testing.T) {
	var ids []string

	ids = AddID(ids, "a")
	ids = AddID(ids, "a") // no duplicates
	ids = AddID(ids, "b")

	if len(ids) != 2 {
		t.Fatalf("got %v, want [a b]", ids)
	}
	if !HasID(ids, "a") || !HasID(ids, "b") || HasID(ids, "c") {
		t.Errorf("membership wrong for %v", ids)
	}

	ids = RemoveID(ids, "a")
	if HasID(ids, "a") || len(ids) != 1 {
		t.Errorf("remove failed: %v", ids)
	}
	if got := RemoveID(ids, "missing"); len(got) != 1 {
		t.Errorf("removing absent ID changed the set: %v", got)
	}
}

func TestStepIDs(t *testing.T) {
	h := Habit{Steps: []RoutineStep{{ID: "a"}, {ID: "b"}}}
	ids := h.StepIDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("StepIDs = %v", ids)
	}
	if got := (Habit{}).StepIDs(); got != nil {
		t.Errorf("empty habit StepIDs = %v, want nil", got)
	}
}
