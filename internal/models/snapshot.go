package models

import "github.com/sgreene/habitat/internal/constants"

// DayMarks holds the habit IDs explicitly skipped or failed on a day.
// The two sets are disjoint with each other and with the completed set
// for the same day.
type DayMarks struct {
	Skip []string `json:"skip,omitempty"`
	Fail []string `json:"fail,omitempty"`
}

// Preferences holds display settings carried in the snapshot.
type Preferences struct {
	Theme          string `json:"theme,omitempty"`
	PetCosmetic    string `json:"pet_cosmetic,omitempty"`
	IdentityFilter string `json:"identity_filter"`
	OnboardingDone bool   `json:"onboarding_done"`
}

// Snapshot is the aggregate root holding the complete domain state.
// It is the unit of persistence and the sole argument/return type of
// the engine. Relationships between entities are by string ID only.
type Snapshot struct {
	Habits     []Habit                        `json:"habits"`
	Identities []Identity                     `json:"identities"`
	Completed  map[string][]string            `json:"completed"` // day-key -> completed habit IDs
	Marks      map[string]DayMarks            `json:"marks"`     // day-key -> skip/fail sets
	Notes      map[string]map[string]string   `json:"notes"`     // day-key -> habit ID -> note
	Schedules  map[string]HabitSchedule       `json:"schedules"` // habit ID -> schedule
	StepLogs   map[string]map[string][]string `json:"step_logs"` // day-key -> habit ID -> completed step IDs
	Fasts      map[string]ActiveFast          `json:"active_fasts"`
	Prefs      Preferences                    `json:"preferences"`
}

// NewSnapshot returns an empty snapshot with defaults applied.
func NewSnapshot() Snapshot {
	var s Snapshot
	s.Normalize()
	return s
}

// Normalize backfills any fields absent from older serialized snapshots
// with defined defaults. It is the system's only schema-migration point
// and is idempotent: normalizing a normalized snapshot is a no-op.
func (s *Snapshot) Normalize() {
	if s.Habits == nil {
		s.Habits = []Habit{}
	}
	if s.Identities == nil {
		s.Identities = []Identity{}
	}
	if s.Completed == nil {
		s.Completed = make(map[string][]string)
	}
	if s.Marks == nil {
		s.Marks = make(map[string]DayMarks)
	}
	if s.Notes == nil {
		s.Notes = make(map[string]map[string]string)
	}
	if s.Schedules == nil {
		s.Schedules = make(map[string]HabitSchedule)
	}
	if s.StepLogs == nil {
		s.StepLogs = make(map[string]map[string][]string)
	}
	if s.Fasts == nil {
		s.Fasts = make(map[string]ActiveFast)
	}
	if s.Prefs.IdentityFilter == "" {
		s.Prefs.IdentityFilter = constants.AllIdentities
	}

	// The reserved identity must always exist.
	if s.FindIdentity(constants.GeneralIdentityID) == nil {
		s.Identities = append([]Identity{GeneralIdentity()}, s.Identities...)
	}
}

// Clone returns a deep copy of the snapshot. Transitions mutate the
// clone and never the original, so callers holding the previous
// snapshot always observe it unchanged.
func (s Snapshot) Clone() Snapshot {
	out := s

	out.Habits = make([]Habit, len(s.Habits))
	for i, h := range s.Habits {
		out.Habits[i] = h
		if h.Days != nil {
			out.Habits[i].Days = append([]bool(nil), h.Days...)
		}
		if h.Steps != nil {
			out.Habits[i].Steps = append([]RoutineStep(nil), h.Steps...)
		}
	}

	out.Identities = append([]Identity(nil), s.Identities...)

	out.Completed = make(map[string][]string, len(s.Completed))
	for day, ids := range s.Completed {
		out.Completed[day] = append([]string(nil), ids...)
	}

	out.Marks = make(map[string]DayMarks, len(s.Marks))
	for day, marks := range s.Marks {
		out.Marks[day] = DayMarks{
			Skip: append([]string(nil), marks.Skip...),
			Fail: append([]string(nil), marks.Fail...),
		}
	}

	out.Notes = make(map[string]map[string]string, len(s.Notes))
	for day, byHabit := range s.Notes {
		inner := make(map[string]string, len(byHabit))
		for id, note := range byHabit {
			inner[id] = note
		}
		out.Notes[day] = inner
	}

	out.Schedules = make(map[string]HabitSchedule, len(s.Schedules))
	for id, sched := range s.Schedules {
		c := sched
		if sched.RecurringDays != nil {
			c.RecurringDays = append([]bool(nil), sched.RecurringDays...)
		}
		out.Schedules[id] = c
	}

	out.StepLogs = make(map[string]map[string][]string, len(s.StepLogs))
	for day, byHabit := range s.StepLogs {
		inner := make(map[string][]string, len(byHabit))
		for id, steps := range byHabit {
			inner[id] = append([]string(nil), steps...)
		}
		out.StepLogs[day] = inner
	}

	out.Fasts = make(map[string]ActiveFast, len(s.Fasts))
	for id, fast := range s.Fasts {
		out.Fasts[id] = fast
	}

	return out
}

// FindHabit returns the habit with the given ID, or nil if absent.
func (s *Snapshot) FindHabit(id string) *Habit {
	for i := range s.Habits {
		if s.Habits[i].ID == id {
			return &s.Habits[i]
		}
	}
	return nil
}

// FindIdentity returns the identity with the given ID, or nil if absent.
func (s *Snapshot) FindIdentity(id string) *Identity {
	for i := range s.Identities {
		if s.Identities[i].ID == id {
			return &s.Identities[i]
		}
	}
	return nil
}
