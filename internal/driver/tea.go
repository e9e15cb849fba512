// Package driver translates Bubble Tea terminal events into the
// engine's event types. Terminal frontends report no hardware key
// codes, so the raw identity stays unset and key specs like "raw:133"
// only match in GUI embeddings that supply them.
package driver

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/keymux/keymux/internal/input"
)

// Key converts a key press message. Code carries the layout-mapped
// rune and BaseCode the key's position on the standard layout; both
// feed the corresponding binding identities.
func Key(msg tea.KeyPressMsg) input.KeyEvent {
	return input.KeyEvent{
		Physical: keyRune(msg.BaseCode),
		Mapped:   keyRune(msg.Code),
		Text:     msg.Text,
		Mods:     Mods(msg.Mod),
		Time:     time.Now(),
	}
}

// Mouse converts the shared mouse fields of click, release and motion
// messages.
func Mouse(m tea.Mouse) (input.MouseButton, input.Cell, input.Mod) {
	return Button(m.Button), input.Cell{X: m.X, Y: m.Y}, Mods(m.Mod)
}

// Mods converts a modifier bitset. Meta is folded into alt, matching
// how terminals report it.
func Mods(m tea.KeyMod) input.Mod {
	var mods input.Mod
	if m&tea.ModCtrl != 0 {
		mods |= input.ModCtrl
	}
	if m&tea.ModShift != 0 {
		mods |= input.ModShift
	}
	if m&(tea.ModAlt|tea.ModMeta) != 0 {
		mods |= input.ModAlt
	}
	if m&tea.ModSuper != 0 {
		mods |= input.ModSuper
	}
	return mods
}

// Button converts a mouse button. Wheel buttons return MouseNone;
// wheel events scroll, they do not click.
func Button(b tea.MouseButton) input.MouseButton {
	switch b {
	case tea.MouseLeft:
		return input.MouseLeft
	case tea.MouseMiddle:
		return input.MouseMiddle
	case tea.MouseRight:
		return input.MouseRight
	}
	return input.MouseNone
}

var teaKeyRunes = map[rune]rune{
	tea.KeyEnter:     input.KeyEnter,
	tea.KeyTab:       input.KeyTab,
	tea.KeyEscape:    input.KeyEscape,
	tea.KeyBackspace: input.KeyBackspace,
	tea.KeyDelete:    input.KeyDelete,
	tea.KeyInsert:    input.KeyInsert,
	tea.KeyHome:      input.KeyHome,
	tea.KeyEnd:       input.KeyEnd,
	tea.KeyPgUp:      input.KeyPageUp,
	tea.KeyPgDown:    input.KeyPageDown,
	tea.KeyUp:        input.KeyUp,
	tea.KeyDown:      input.KeyDown,
	tea.KeyLeft:      input.KeyLeft,
	tea.KeyRight:     input.KeyRight,
	tea.KeyF1:        input.KeyF1,
	tea.KeyF2:        input.KeyF2,
	tea.KeyF3:        input.KeyF3,
	tea.KeyF4:        input.KeyF4,
	tea.KeyF5:        input.KeyF5,
	tea.KeyF6:        input.KeyF6,
	tea.KeyF7:        input.KeyF7,
	tea.KeyF8:        input.KeyF8,
	tea.KeyF9:        input.KeyF9,
	tea.KeyF10:       input.KeyF10,
	tea.KeyF11:       input.KeyF11,
	tea.KeyF12:       input.KeyF12,
}

func keyRune(code rune) rune {
	if r, ok := teaKeyRunes[code]; ok {
		return r
	}
	return code
}
