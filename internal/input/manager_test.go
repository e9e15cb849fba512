package input

import "testing"

func TestManagerWindowLifecycle(t *testing.T) {
	m := NewManager(tableConfig())

	id1, e1 := m.NewWindow()
	id2, e2 := m.NewWindow()
	if id1 == id2 {
		t.Fatal("window ids must be unique")
	}
	if m.Window(id1) != e1 || m.Window(id2) != e2 {
		t.Error("Window() returned the wrong engine")
	}

	m.CloseWindow(id1)
	if m.Window(id1) != nil {
		t.Error("closed window still resolvable")
	}
	if got := len(m.Windows()); got != 1 {
		t.Errorf("Windows() = %d entries, want 1", got)
	}
}

func TestManagerWindowsAreIndependent(t *testing.T) {
	m := NewManager(tableConfig())
	_, e1 := m.NewWindow()
	_, e2 := m.NewWindow()

	e1.HandleKey(KeyEvent{Mapped: 't', Mods: ModCtrl})
	if e1.ActiveKeyTable() != "copy_mode" {
		t.Fatal("activation did not apply")
	}
	if e2.ActiveKeyTable() != "" {
		t.Error("activation leaked into another window")
	}
}

func TestManagerReloadClearsEveryWindow(t *testing.T) {
	m := NewManager(tableConfig())
	_, e1 := m.NewWindow()
	_, e2 := m.NewWindow()
	e1.HandleKey(KeyEvent{Mapped: 't', Mods: ModCtrl})
	e2.HandleKey(KeyEvent{Mapped: 't', Mods: ModCtrl})

	m.Reload(leaderConfig())

	if e1.ActiveKeyTable() != "" || e2.ActiveKeyTable() != "" {
		t.Error("reload left stale activations")
	}
	if m.Config().Leader == nil {
		t.Error("new config not stored")
	}
}
