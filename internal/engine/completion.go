package engine

import (
	"github.com/sgreene/habitat/internal/constants"
	"github.com/sgreene/habitat/internal/models"
)

const (
	statusNone    = constants.StatusNone
	statusDone    = constants.StatusDone
	statusSkipped = constants.StatusSkipped
	statusFailed  = constants.StatusFailed
)

// statusFor reports the habit's status for a day. A habit ID appears in
// at most one of {completed, skip, fail}; the sets are kept disjoint by
// every transition below.
func statusFor(s *models.Snapshot, day, habitID string) constants.DayStatus {
	if models.HasID(s.Completed[day], habitID) {
		return statusDone
	}
	marks := s.Marks[day]
	if models.HasID(marks.Skip, habitID) {
		return statusSkipped
	}
	if models.HasID(marks.Fail, habitID) {
		return statusFailed
	}
	return statusNone
}

// clearStatus removes the habit from all three per-day sets.
func clearStatus(s *models.Snapshot, day, habitID string) {
	if ids := models.RemoveID(s.Completed[day], habitID); len(ids) > 0 {
		s.Completed[day] = ids
	} else {
		delete(s.Completed, day)
	}
	marks := s.Marks[day]
	marks.Skip = models.RemoveID(marks.Skip, habitID)
	marks.Fail = models.RemoveID(marks.Fail, habitID)
	if len(marks.Skip) == 0 && len(marks.Fail) == 0 {
		delete(s.Marks, day)
	} else {
		s.Marks[day] = marks
	}
}

// writeStatus clears the habit's day state and then records the target
// status, keeping the exclusivity invariant in a single step.
func writeStatus(s *models.Snapshot, day, habitID string, target constants.DayStatus) {
	clearStatus(s, day, habitID)
	switch target {
	case statusDone:
		s.Completed[day] = models.AddID(s.Completed[day], habitID)
	case statusSkipped:
		marks := s.Marks[day]
		marks.Skip = models.AddID(marks.Skip, habitID)
		s.Marks[day] = marks
	case statusFailed:
		marks := s.Marks[day]
		marks.Fail = models.AddID(marks.Fail, habitID)
		s.Marks[day] = marks
	}
}

// nextStatus advances the 4-state cycle by exactly one step.
func nextStatus(cur constants.DayStatus) constants.DayStatus {
	switch cur {
	case statusNone:
		return statusDone
	case statusDone:
		return statusSkipped
	case statusSkipped:
		return statusFailed
	default:
		return statusNone
	}
}

func applyToggleHabit(s *models.Snapshot, a ToggleHabit) {
	habit := s.FindHabit(a.HabitID)
	if habit == nil {
		return
	}
	cur := statusFor(s, a.Date, a.HabitID)
	transition(s, habit, a.Date, cur, nextStatus(cur))
}

func applySetStatus(s *models.Snapshot, habitID, day string, target constants.DayStatus) {
	habit := s.FindHabit(habitID)
	if habit == nil {
		return
	}
	cur := statusFor(s, day, habitID)
	transition(s, habit, day, cur, target)
}

// transition writes the target status and, for routine habits, keeps
// the per-step log consistent in the same transition: entering done
// force-completes every step, leaving done force-clears them. The two
// representations (routine-as-a-whole vs per-step) must never diverge.
func transition(s *models.Snapshot, habit *models.Habit, day string, cur, target constants.DayStatus) {
	writeStatus(s, day, habit.ID, target)
	if !habit.IsRoutine {
		return
	}
	if target == statusDone {
		setStepLog(s, day, habit.ID, habit.StepIDs())
	} else if cur == statusDone {
		setStepLog(s, day, habit.ID, nil)
	}
}

func applyToggleRoutineStep(s *models.Snapshot, a ToggleRoutineStep) {
	habit := s.FindHabit(a.HabitID)
	if habit == nil || !habit.IsRoutine {
		return
	}
	known := false
	for _, step := range habit.Steps {
		if step.ID == a.StepID {
			known = true
			break
		}
	}
	if !known {
		return
	}

	done := s.StepLogs[a.Date][a.HabitID]
	if models.HasID(done, a.StepID) {
		done = models.RemoveID(done, a.StepID)
	} else {
		done = models.AddID(done, a.StepID)
	}
	setStepLog(s, a.Date, a.HabitID, done)

	// Synchronize the parent: auto-complete when the step set reaches
	// the full set, auto-uncomplete when it regresses below full.
	full := allStepsDone(habit, done)
	cur := statusFor(s, a.Date, a.HabitID)
	if full && cur != statusDone {
		writeStatus(s, a.Date, habit.ID, statusDone)
	} else if !full && cur == statusDone {
		writeStatus(s, a.Date, habit.ID, statusNone)
	}
}

func allStepsDone(habit *models.Habit, done []string) bool {
	for _, step := range habit.Steps {
		if !models.HasID(done, step.ID) {
			return false
		}
	}
	return len(habit.Steps) > 0
}

func setStepLog(s *models.Snapshot, day, habitID string, stepIDs []string) {
	if len(stepIDs) == 0 {
		byHabit := s.StepLogs[day]
		delete(byHabit, habitID)
		if len(byHabit) == 0 {
			delete(s.StepLogs, day)
		}
		return
	}
	byHabit := s.StepLogs[day]
	if byHabit == nil {
		byHabit = make(map[string][]string)
		s.StepLogs[day] = byHabit
	}
	byHabit[habitID] = stepIDs
}
