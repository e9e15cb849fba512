package input

import (
	"sort"
	"strings"
)

// Mod is a bitset of keyboard modifiers. LEADER is a virtual modifier:
// it is never reported by the platform and is set on an event only while
// a leader activation is pending.
type Mod uint8

const (
	ModCtrl Mod = 1 << iota
	ModShift
	ModAlt
	ModSuper
	ModLeader

	ModNone Mod = 0
)

// Has reports whether all modifiers in m are set.
func (m Mod) Has(mod Mod) bool { return m&mod == mod }

// With returns m with the given modifiers set.
func (m Mod) With(mod Mod) Mod { return m | mod }

// Without returns m with the given modifiers cleared.
func (m Mod) Without(mod Mod) Mod { return m &^ mod }

var modNames = []struct {
	mod  Mod
	name string
}{
	{ModCtrl, "CTRL"},
	{ModShift, "SHIFT"},
	{ModAlt, "ALT"},
	{ModSuper, "SUPER"},
	{ModLeader, "LEADER"},
}

// String renders the set in canonical order, e.g. "CTRL|SHIFT".
// The empty set renders as "NONE".
func (m Mod) String() string {
	if m == ModNone {
		return "NONE"
	}
	var parts []string
	for _, mn := range modNames {
		if m.Has(mn.mod) {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, "|")
}

// builtinAliases covers the platform spellings users reach for. User
// configs can extend this set via modifier_aliases.
var builtinAliases = map[string]Mod{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"shift":   ModShift,
	"alt":     ModAlt,
	"opt":     ModAlt,
	"option":  ModAlt,
	"meta":    ModAlt,
	"super":   ModSuper,
	"cmd":     ModSuper,
	"command": ModSuper,
	"win":     ModSuper,
	"windows": ModSuper,
	"leader":  ModLeader,
	"none":    ModNone,
}

// ParseMod resolves a single modifier name, honoring extra user aliases
// before the builtin table. Names are case-insensitive.
func ParseMod(name string, aliases map[string]Mod) (Mod, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if aliases != nil {
		if m, ok := aliases[key]; ok {
			return m, true
		}
	}
	m, ok := builtinAliases[key]
	return m, ok
}

// ParseMods parses a modifier expression such as "CTRL|SHIFT" or
// "leader+a"-style "LEADER" lists. Both "|" and "+" separate names.
func ParseMods(expr string, aliases map[string]Mod) (Mod, bool) {
	mods := ModNone
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return mods, true
	}
	for _, part := range strings.FieldsFunc(expr, func(r rune) bool {
		return r == '|' || r == '+'
	}) {
		m, ok := ParseMod(part, aliases)
		if !ok {
			return ModNone, false
		}
		mods |= m
	}
	return mods, true
}

// ModAliasNames returns the builtin alias spellings in sorted order.
func ModAliasNames() []string {
	names := make([]string, 0, len(builtinAliases))
	for name := range builtinAliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
