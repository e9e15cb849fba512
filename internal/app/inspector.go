// Package app implements the keymux inspector: a TUI that feeds every
// key and mouse event through the resolution engine and shows what the
// engine decided and why.
package app

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/keymux/keymux/internal/action"
	"github.com/keymux/keymux/internal/driver"
	"github.com/keymux/keymux/internal/input"
)

const traceCapacity = 256

type traceEntry struct {
	when     time.Time
	event    string
	decision string
	detail   string
}

// ReloadMsg carries a freshly compiled config from the file watcher.
type ReloadMsg struct {
	Config *input.Config
}

type deadlineMsg struct{}

// Inspector is the bubbletea model of the inspector window.
type Inspector struct {
	manager  *input.Manager
	windowID string
	engine   *input.Engine
	registry *action.Registry
	logger   *log.Logger

	status  input.Status
	trace   []traceEntry
	width   int
	height  int
	focused bool
}

// NewInspector builds the inspector around one window of the manager.
func NewInspector(manager *input.Manager, logger *log.Logger) *Inspector {
	m := &Inspector{
		manager: manager,
		logger:  logger,
		focused: true,
	}
	m.windowID, m.engine = manager.NewWindow()
	m.engine.SetStatusFunc(func(s input.Status) { m.status = s })
	m.status = m.engine.Status()

	m.registry = action.NewRegistry()
	for _, entry := range action.Catalog() {
		name := entry.Name
		m.registry.Register(name, func(arg string) error {
			m.logger.Debug("action dispatched", "action", name, "arg", arg)
			return nil
		})
	}
	return m
}

// Init implements tea.Model.
func (m *Inspector) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Inspector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		// The one chord the engine never sees, so the inspector stays
		// quittable under any config.
		if msg.String() == "ctrl+q" {
			return m, tea.Quit
		}
		ev := driver.Key(msg)
		results := m.engine.HandleKey(ev)
		if len(results) == 0 {
			m.record(ev.String(), "composing", m.status.Composing)
		}
		for _, res := range results {
			m.recordResult(res)
		}
		return m, m.scheduleDeadline()

	case tea.MouseClickMsg:
		btn, cell, mods := driver.Mouse(msg.Mouse())
		if btn == input.MouseNone {
			return m, nil
		}
		res := m.engine.MouseDown(btn, cell, mods)
		m.recordResult(res)
		return m, m.scheduleDeadline()

	case tea.MouseReleaseMsg:
		btn, cell, mods := driver.Mouse(msg.Mouse())
		if btn == input.MouseNone {
			return m, nil
		}
		res := m.engine.MouseUp(btn, cell, mods)
		m.recordResult(res)
		return m, nil

	case tea.MouseMotionMsg:
		_, cell, mods := driver.Mouse(msg.Mouse())
		for _, res := range m.engine.MouseMove(cell, mods) {
			m.recordResult(res)
		}
		return m, nil

	case tea.FocusMsg:
		m.focused = true
		return m, nil

	case tea.BlurMsg:
		m.focused = false
		for _, res := range m.engine.FocusLost() {
			m.recordResult(res)
		}
		return m, nil

	case deadlineMsg:
		m.engine.Tick()
		return m, m.scheduleDeadline()

	case ReloadMsg:
		m.manager.Reload(msg.Config)
		m.status = m.engine.Status()
		m.record("config", "reload", "key table stack cleared")
		return m, nil
	}
	return m, nil
}

// scheduleDeadline arms one wakeup for the engine's earliest pending
// deadline. Leader and key table expiry both ride on it.
func (m *Inspector) scheduleDeadline() tea.Cmd {
	next, ok := m.engine.NextDeadline()
	if !ok {
		return nil
	}
	wait := time.Until(next)
	if wait < 0 {
		wait = 0
	}
	return tea.Tick(wait, func(time.Time) tea.Msg { return deadlineMsg{} })
}

func (m *Inspector) recordResult(res input.Result) {
	var event string
	switch {
	case res.Gesture != nil:
		g := res.Gesture
		event = fmt.Sprintf("%s %s x%d @%d,%d", g.Button, g.Kind, g.Streak, g.Cell.X, g.Cell.Y)
		if g.Mods != input.ModNone {
			event = g.Mods.String() + " " + event
		}
	default:
		event = res.Event.String()
	}

	detail := ""
	switch res.Decision {
	case input.DecisionAction:
		detail = res.Assignment.Action
		if res.Assignment.Arg != "" {
			detail += "(" + res.Assignment.Arg + ")"
		}
		if res.Table != "" {
			detail += " [" + res.Table + "]"
		}
		if handled, err := m.registry.Dispatch(res.Assignment.Action, res.Assignment.Arg); err != nil {
			m.logger.Error("action failed", "action", res.Assignment.Action, "err", err)
		} else if !handled && !res.Assignment.Builtin() {
			m.logger.Warn("no handler for action", "action", res.Assignment.Action)
		}
	case input.DecisionForward:
		if res.Event.Text != "" {
			detail = fmt.Sprintf("text %q", res.Event.Text)
		}
	}
	m.record(event, res.Decision.String(), detail)
}

func (m *Inspector) record(event, decision, detail string) {
	m.trace = append(m.trace, traceEntry{
		when:     time.Now(),
		event:    event,
		decision: decision,
		detail:   detail,
	})
	if len(m.trace) > traceCapacity {
		m.trace = m.trace[len(m.trace)-traceCapacity:]
	}
}
