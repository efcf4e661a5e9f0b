package engine

import (
	"time"

	"github.com/sgreene/habitat/internal/models"
)

func applySetSchedule(s *models.Snapshot, a SetSchedule) {
	if s.FindHabit(a.HabitID) == nil {
		return
	}
	// Overlapping schedules across habits are permitted; collisions are
	// a display concern only.
	s.Schedules[a.HabitID] = a.Schedule
}

func applyClearSchedule(s *models.Snapshot, a ClearSchedule) {
	delete(s.Schedules, a.HabitID)
}

func applySetNote(s *models.Snapshot, a SetNote) {
	// Empty notes are never persisted.
	if a.Note == "" {
		deleteNote(s, a.Date, a.HabitID)
		return
	}
	if s.FindHabit(a.HabitID) == nil {
		return
	}
	byHabit := s.Notes[a.Date]
	if byHabit == nil {
		byHabit = make(map[string]string)
		s.Notes[a.Date] = byHabit
	}
	byHabit[a.HabitID] = a.Note
}

func deleteNote(s *models.Snapshot, day, habitID string) {
	byHabit := s.Notes[day]
	delete(byHabit, habitID)
	if len(byHabit) == 0 {
		delete(s.Notes, day)
	}
}

func applyStartFast(s *models.Snapshot, a StartFast) {
	if s.FindHabit(a.HabitID) == nil {
		return
	}
	s.Fasts[a.HabitID] = models.ActiveFast{
		StartTime:     a.StartTime,
		DurationHours: a.DurationHours,
		TargetTime:    a.StartTime.Add(time.Duration(a.DurationHours) * time.Hour),
	}
}

func applyUpdateFastStart(s *models.Snapshot, a UpdateFastStart) {
	fast, ok := s.Fasts[a.HabitID]
	if !ok {
		return
	}
	// The target moves with the start; the duration is unchanged.
	fast.StartTime = a.StartTime
	fast.TargetTime = a.StartTime.Add(time.Duration(fast.DurationHours) * time.Hour)
	s.Fasts[a.HabitID] = fast
}
