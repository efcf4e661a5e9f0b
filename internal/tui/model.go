package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sgreene/habitat/internal/engine"
	"github.com/sgreene/habitat/internal/models"
	"github.com/sgreene/habitat/internal/storage"
	"github.com/sgreene/habitat/internal/timeutil"
)

// tickMsg drives the fasting countdown refresh.
type tickMsg time.Time

// Model is the interactive day view: today's habits with their status,
// routine step expansion, weekly progress, and the fasting countdown.
type Model struct {
	snapshot models.Snapshot
	engine   *engine.Engine
	store    storage.Provider

	day      string // day key being viewed
	cursor   int
	expanded map[string]bool // habit ID -> steps expanded
	keys     KeyMap
	help     help.Model
	width    int
	saveErr  error
}

func New(snapshot models.Snapshot, eng *engine.Engine, store storage.Provider) Model {
	return Model{
		snapshot: snapshot,
		engine:   eng,
		store:    store,
		day:      timeutil.DayKey(time.Now()),
		expanded: make(map[string]bool),
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// dispatch applies an action and persists the new snapshot. A failed
// save keeps the previous snapshot so the view never shows unsaved state.
func (m *Model) dispatch(action engine.Action) {
	next := m.engine.Apply(m.snapshot, action)
	if err := m.store.Save(next); err != nil {
		m.saveErr = err
		return
	}
	m.saveErr = nil
	m.snapshot = next
}
