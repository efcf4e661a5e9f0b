package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sgreene/habitat/internal/backup"
	"github.com/sgreene/habitat/internal/engine"
	"github.com/sgreene/habitat/internal/logger"
	"github.com/sgreene/habitat/internal/models"
	"github.com/sgreene/habitat/internal/storage"
	"github.com/sgreene/habitat/internal/timeutil"
	"github.com/sgreene/habitat/internal/validation"
)

type Context struct {
	Store     storage.Provider
	Engine    *engine.Engine
	Validator *validation.Validator
}

// Dispatch applies an action to the snapshot and persists the result.
func (c *Context) Dispatch(snapshot models.Snapshot, action engine.Action) (models.Snapshot, error) {
	next := c.Engine.Apply(snapshot, action)
	if err := c.Store.Save(next); err != nil {
		return snapshot, fmt.Errorf("failed to save state: %w", err)
	}
	return next, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveDate validates a --date flag value, defaulting to today.
func ResolveDate(dateFlag string) (string, error) {
	if dateFlag == "" {
		return timeutil.DayKey(time.Now()), nil
	}
	if !timeutil.ValidDayKey(dateFlag) {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", dateFlag)
	}
	return dateFlag, nil
}

// FindHabitByName returns the habit whose name matches case-insensitively.
func FindHabitByName(s models.Snapshot, name string) (models.Habit, error) {
	for _, h := range s.Habits {
		if strings.EqualFold(h.Name, name) {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q not found", name)
}

// FindIdentityByName returns the identity whose name or ID matches
// case-insensitively.
func FindIdentityByName(s models.Snapshot, name string) (models.Identity, error) {
	for _, identity := range s.Identities {
		if strings.EqualFold(identity.Name, name) || identity.ID == name {
			return identity, nil
		}
	}
	return models.Identity{}, fmt.Errorf("identity %q not found", name)
}

// ParseDaysMask parses a comma-separated weekday list ("mon,wed,fri")
// into the Sunday-first 7-element mask used by habits and schedules.
// An empty string yields a nil mask (active every day).
func ParseDaysMask(s string) ([]bool, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	dayMap := map[string]int{
		"sun": 0, "sunday": 0,
		"mon": 1, "monday": 1,
		"tue": 2, "tuesday": 2,
		"wed": 3, "wednesday": 3,
		"thu": 4, "thursday": 4,
		"fri": 5, "friday": 5,
		"sat": 6, "saturday": 6,
	}

	mask := make([]bool, 7)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if idx, ok := dayMap[part]; ok {
			mask[idx] = true
			continue
		}
		// Numeric form: 0=Sunday .. 6=Saturday
		num, err := strconv.Atoi(part)
		if err == nil && num >= 0 && num <= 6 {
			mask[num] = true
			continue
		}
		return nil, fmt.Errorf("invalid weekday: %s", part)
	}
	return mask, nil
}

// FormatDaysMask renders a weekday mask as a short day list, or "every
// day" for a nil/full mask.
func FormatDaysMask(mask []bool) string {
	if len(mask) != 7 {
		return "every day"
	}
	names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	var days []string
	for i, on := range mask {
		if on {
			days = append(days, names[i])
		}
	}
	if len(days) == 7 {
		return "every day"
	}
	if len(days) == 0 {
		return "never"
	}
	return strings.Join(days, ",")
}

// FormatConflicts flattens validation conflicts into one error message.
func FormatConflicts(result validation.Result) error {
	msgs := make([]string, 0, len(result.Conflicts))
	for _, conflict := range result.Conflicts {
		msgs = append(msgs, conflict.Message)
	}
	return fmt.Errorf("invalid input: %s", strings.Join(msgs, "; "))
}
