package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sgreene/habitat/internal/constants"
	"github.com/sgreene/habitat/internal/engine"
	"github.com/sgreene/habitat/internal/models"
	"github.com/sgreene/habitat/internal/query"
	"github.com/sgreene/habitat/internal/timeutil"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	habits := m.visibleHabits()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(habits)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Prev):
		m.day = timeutil.AddDays(m.day, -1)
		m.cursor = 0

	case key.Matches(msg, m.keys.Next):
		m.day = timeutil.AddDays(m.day, 1)
		m.cursor = 0

	case key.Matches(msg, m.keys.Filter):
		m.cycleFilter()
		m.cursor = 0

	case key.Matches(msg, m.keys.Toggle):
		if h, ok := m.habitAtCursor(habits); ok {
			m.dispatch(engine.ToggleHabit{HabitID: h.ID, Date: m.day})
		}

	case key.Matches(msg, m.keys.Skip):
		if h, ok := m.habitAtCursor(habits); ok {
			m.dispatch(engine.SkipHabit{HabitID: h.ID, Date: m.day})
		}

	case key.Matches(msg, m.keys.Fail):
		if h, ok := m.habitAtCursor(habits); ok {
			m.dispatch(engine.FailHabit{HabitID: h.ID, Date: m.day})
		}

	case key.Matches(msg, m.keys.Steps):
		if h, ok := m.habitAtCursor(habits); ok && h.IsRoutine {
			m.expanded[h.ID] = !m.expanded[h.ID]
		}
	}

	return m, nil
}

func (m Model) habitAtCursor(habits []models.Habit) (models.Habit, bool) {
	if m.cursor < 0 || m.cursor >= len(habits) {
		return models.Habit{}, false
	}
	return habits[m.cursor], true
}

func (m Model) visibleHabits() []models.Habit {
	date, err := timeutil.ParseDayKey(m.day)
	if err != nil {
		return nil
	}
	return query.ActiveHabits(m.snapshot.Habits, date, m.snapshot.Prefs.IdentityFilter)
}

// cycleFilter rotates the identity filter through all -> each identity -> all.
func (m *Model) cycleFilter() {
	cur := m.snapshot.Prefs.IdentityFilter
	next := constants.AllIdentities
	if cur == constants.AllIdentities {
		if len(m.snapshot.Identities) > 0 {
			next = m.snapshot.Identities[0].ID
		}
	} else {
		for i, identity := range m.snapshot.Identities {
			if identity.ID == cur && i+1 < len(m.snapshot.Identities) {
				next = m.snapshot.Identities[i+1].ID
				break
			}
		}
	}
	m.dispatch(engine.SetIdentityFilter{IdentityID: next})
}
