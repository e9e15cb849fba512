package driver

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/keymux/keymux/internal/input"
)

func TestKeyConversion(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyPressMsg
		want input.KeyEvent
	}{
		{
			"plain letter",
			tea.KeyPressMsg{Code: 'k', BaseCode: 'k', Text: "k"},
			input.KeyEvent{Physical: 'k', Mapped: 'k', Text: "k"},
		},
		{
			"remapped layout",
			tea.KeyPressMsg{Code: 'q', BaseCode: 'a', Text: "q"},
			input.KeyEvent{Physical: 'a', Mapped: 'q', Text: "q"},
		},
		{
			"named key",
			tea.KeyPressMsg{Code: tea.KeyEnter},
			input.KeyEvent{Mapped: input.KeyEnter},
		},
		{
			"ctrl chord",
			tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl},
			input.KeyEvent{Mapped: 'c', Mods: input.ModCtrl},
		},
		{
			"meta folds into alt",
			tea.KeyPressMsg{Code: 'x', Mod: tea.ModMeta | tea.ModShift},
			input.KeyEvent{Mapped: 'x', Mods: input.ModAlt | input.ModShift},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Key(tt.msg)
			got.Time = tt.want.Time
			if got != tt.want {
				t.Errorf("Key() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMouseConversion(t *testing.T) {
	btn, cell, mods := Mouse(tea.Mouse{X: 4, Y: 7, Button: tea.MouseRight, Mod: tea.ModCtrl})
	if btn != input.MouseRight {
		t.Errorf("button = %v", btn)
	}
	if cell != (input.Cell{X: 4, Y: 7}) {
		t.Errorf("cell = %+v", cell)
	}
	if mods != input.ModCtrl {
		t.Errorf("mods = %v", mods)
	}

	if got := Button(tea.MouseWheelUp); got != input.MouseNone {
		t.Errorf("wheel button = %v, want none", got)
	}
}
