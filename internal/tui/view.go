package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/sgreene/habitat/internal/constants"
	"github.com/sgreene/habitat/internal/models"
	"github.com/sgreene/habitat/internal/query"
	"github.com/sgreene/habitat/internal/timeutil"
)

const progressBarWidth = 24

func (m Model) View() string {
	var b strings.Builder

	date, err := timeutil.ParseDayKey(m.day)
	if err != nil {
		return "invalid day"
	}

	filter := m.snapshot.Prefs.IdentityFilter
	habits := m.visibleHabits()
	percent := query.DayCompletionPercent(m.snapshot, date, filter)

	b.WriteString(headerStyle.Render(date.Format("Monday, Jan 2 2006")))
	b.WriteString(filterStyle.Render("identity: " + m.filterName()))
	b.WriteString("\n")
	b.WriteString(renderBar(percent))
	b.WriteString(fmt.Sprintf(" %3.0f%%\n\n", percent*100))

	if len(habits) == 0 {
		b.WriteString(mutedStyle.Render("No active habits for this day.\n"))
	}

	for i, h := range habits {
		b.WriteString(m.renderHabit(i, h, date))
	}

	if fastLine := m.renderFasts(); fastLine != "" {
		b.WriteString("\n" + fastLine + "\n")
	}

	if m.saveErr != nil {
		b.WriteString("\n" + failedStyle.Render("save failed: "+m.saveErr.Error()) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) renderHabit(i int, h models.Habit, date time.Time) string {
	status := query.StatusOn(m.snapshot, h.ID, m.day)
	glyph, style := statusGlyph(status)

	prefix := "  "
	if i == m.cursor {
		prefix = cursorStyle.Render("> ")
	}

	weekly := query.WeeklyProgress(m.snapshot.Completed, h.ID, date)
	streak := query.Streak(m.snapshot.Completed, h.ID, m.day)
	meta := mutedStyle.Render(fmt.Sprintf("  wk %d/%d · streak %d", weekly, h.WeeklyGoal, streak))

	name := h.Name
	if h.IsRoutine {
		done := len(query.StepsDoneOn(m.snapshot, h.ID, m.day))
		name = fmt.Sprintf("%s (%d/%d)", h.Name, done, len(h.Steps))
	}

	line := prefix + style.Render(glyph+" "+name) + meta + "\n"

	if h.IsRoutine && m.expanded[h.ID] {
		doneSteps := query.StepsDoneOn(m.snapshot, h.ID, m.day)
		for _, step := range h.Steps {
			mark := "·"
			if models.HasID(doneSteps, step.ID) {
				mark = "✓"
			}
			line += stepStyle.Render(fmt.Sprintf("%s %s", mark, step.Name)) + "\n"
		}
	}
	return line
}

func (m Model) renderFasts() string {
	now := time.Now()
	var lines []string
	for _, h := range m.snapshot.Habits {
		fast, ok := m.snapshot.Fasts[h.ID]
		if !ok {
			continue
		}
		if query.IsFastComplete(fast, now) {
			lines = append(lines, doneStyle.Render(fmt.Sprintf("⏱ %s: fast complete", h.Name)))
			continue
		}
		remaining := query.RemainingTime(fast, now).Round(time.Minute)
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("⏱ %s: %.0f%% · %s left",
			h.Name, query.FastProgressPercent(fast, now), remaining)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) filterName() string {
	filter := m.snapshot.Prefs.IdentityFilter
	if filter == constants.AllIdentities {
		return "all"
	}
	if identity := m.snapshot.FindIdentity(filter); identity != nil {
		return identity.Name
	}
	return filter
}

func statusGlyph(status constants.DayStatus) (string, interface{ Render(...string) string }) {
	switch status {
	case constants.StatusDone:
		return "✓", doneStyle
	case constants.StatusSkipped:
		return "~", skippedStyle
	case constants.StatusFailed:
		return "✗", failedStyle
	default:
		return "·", mutedStyle
	}
}

func renderBar(percent float64) string {
	filled := int(percent * progressBarWidth)
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	return barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", progressBarWidth-filled))
}
