package input

import (
	"sync"

	"github.com/google/uuid"
)

// Manager owns one engine per window. Each engine stays single
// threaded on its window's event loop; the manager's lock only guards
// the window map and config reloads, which cross window boundaries.
type Manager struct {
	mu      sync.Mutex
	cfg     *Config
	engines map[string]*Engine
}

// NewManager builds a manager handing cfg to every new window.
func NewManager(cfg *Config) *Manager {
	return &Manager{
		cfg:     cfg,
		engines: make(map[string]*Engine),
	}
}

// NewWindow registers a window and returns its id and engine.
func (m *Manager) NewWindow() (string, *Engine) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	e := NewEngine(m.cfg)
	m.engines[id] = e
	return id, e
}

// Window returns the engine for id, nil when the window is gone.
func (m *Manager) Window(id string) *Engine {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engines[id]
}

// CloseWindow drops a window's engine.
func (m *Manager) CloseWindow(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.engines, id)
}

// Windows returns the ids of all live windows.
func (m *Manager) Windows() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.engines))
	for id := range m.engines {
		ids = append(ids, id)
	}
	return ids
}

// Reload swaps the configuration for every window at once. Each engine
// clears its key table stack so no window resolves against a mix of
// old and new tables.
func (m *Manager) Reload(cfg *Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
	for _, e := range m.engines {
		e.Reload(cfg)
	}
}

// Config returns the configuration new windows receive.
func (m *Manager) Config() *Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}
