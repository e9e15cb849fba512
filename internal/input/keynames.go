package input

import (
	"fmt"
	"strings"
)

// Named keys occupy the Unicode private use area so they can share the
// rune space used for character keys without colliding with real text.
const (
	KeyEnter rune = 0xE000 + iota
	KeyTab
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeySpace rune = ' '
)

var keyNames = map[string]rune{
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"tab":       KeyTab,
	"escape":    KeyEscape,
	"esc":       KeyEscape,
	"backspace": KeyBackspace,
	"delete":    KeyDelete,
	"del":       KeyDelete,
	"insert":    KeyInsert,
	"home":      KeyHome,
	"end":       KeyEnd,
	"pageup":    KeyPageUp,
	"pagedown":  KeyPageDown,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"space":     KeySpace,
	"f1":        KeyF1,
	"f2":        KeyF2,
	"f3":        KeyF3,
	"f4":        KeyF4,
	"f5":        KeyF5,
	"f6":        KeyF6,
	"f7":        KeyF7,
	"f8":        KeyF8,
	"f9":        KeyF9,
	"f10":       KeyF10,
	"f11":       KeyF11,
	"f12":       KeyF12,
}

var runeNames = func() map[rune]string {
	canonical := []string{
		"enter", "tab", "escape", "backspace", "delete", "insert",
		"home", "end", "pageup", "pagedown",
		"up", "down", "left", "right", "space",
		"f1", "f2", "f3", "f4", "f5", "f6",
		"f7", "f8", "f9", "f10", "f11", "f12",
	}
	m := make(map[rune]string, len(canonical))
	for _, name := range canonical {
		m[keyNames[name]] = name
	}
	return m
}()

// KeyFromName resolves a key name such as "enter" or "f5" to its rune.
// Single-rune names resolve to the rune itself.
func KeyFromName(name string) (rune, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if r, ok := keyNames[lower]; ok {
		return r, true
	}
	runes := []rune(name)
	if len(runes) == 1 {
		return runes[0], true
	}
	return 0, false
}

// KeyName renders a key rune for display: named keys by name, character
// keys as themselves.
func KeyName(r rune) string {
	if name, ok := runeNames[r]; ok {
		return name
	}
	if r == 0 {
		return ""
	}
	return fmt.Sprintf("%c", r)
}
