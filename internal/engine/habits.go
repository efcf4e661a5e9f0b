package engine

import (
	"github.com/sgreene/habitat/internal/models"
)

func (e *Engine) applyAddHabit(s *models.Snapshot, a AddHabit) {
	habit := a.Habit
	if habit.ID == "" {
		habit.ID = e.ids.NewID()
	}
	for i := range habit.Steps {
		if habit.Steps[i].ID == "" {
			habit.Steps[i].ID = e.ids.NewID()
		}
		habit.Steps[i].Order = i
	}

	// New habits go to the end of the display order.
	maxOrder := -1
	for _, h := range s.Habits {
		if h.Order > maxOrder {
			maxOrder = h.Order
		}
	}
	habit.Order = maxOrder + 1

	s.Habits = append(s.Habits, habit)
}

func applyUpdateHabit(s *models.Snapshot, a UpdateHabit) {
	existing := s.FindHabit(a.Habit.ID)
	if existing == nil {
		return
	}
	updated := a.Habit
	// Order only changes through ReorderHabits.
	updated.Order = existing.Order
	*existing = updated
}

func applyDeleteHabit(s *models.Snapshot, a DeleteHabit) {
	idx := -1
	for i := range s.Habits {
		if s.Habits[i].ID == a.HabitID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	s.Habits = append(s.Habits[:idx], s.Habits[idx+1:]...)

	// Cascade: no entry anywhere in the snapshot may keep referencing
	// the deleted habit.
	for day, ids := range s.Completed {
		trimmed := models.RemoveID(ids, a.HabitID)
		if len(trimmed) == 0 {
			delete(s.Completed, day)
		} else {
			s.Completed[day] = trimmed
		}
	}
	for day, marks := range s.Marks {
		marks.Skip = models.RemoveID(marks.Skip, a.HabitID)
		marks.Fail = models.RemoveID(marks.Fail, a.HabitID)
		if len(marks.Skip) == 0 && len(marks.Fail) == 0 {
			delete(s.Marks, day)
		} else {
			s.Marks[day] = marks
		}
	}
	for day, byHabit := range s.Notes {
		delete(byHabit, a.HabitID)
		if len(byHabit) == 0 {
			delete(s.Notes, day)
		}
	}
	for day, byHabit := range s.StepLogs {
		delete(byHabit, a.HabitID)
		if len(byHabit) == 0 {
			delete(s.StepLogs, day)
		}
	}
	delete(s.Schedules, a.HabitID)
	delete(s.Fasts, a.HabitID)
}

func applyReorderHabits(s *models.Snapshot, a ReorderHabits) {
	position := make(map[string]int, len(a.HabitIDs))
	for i, id := range a.HabitIDs {
		position[id] = i
	}
	next := len(a.HabitIDs)
	for i := range s.Habits {
		if pos, ok := position[s.Habits[i].ID]; ok {
			s.Habits[i].Order = pos
		} else {
			// Habits missing from the supplied ordering land after it,
			// keeping their relative order.
			s.Habits[i].Order = next
			next++
		}
	}
}
