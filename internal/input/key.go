package input

import (
	"fmt"
	"time"
)

// IdentityTag distinguishes the three ways a key press can be named in
// a binding.
type IdentityTag uint8

const (
	// TagPhysical names the key by its position on a standardized
	// ANSI layout, independent of the active keyboard map.
	TagPhysical IdentityTag = iota + 1
	// TagRaw names the key by the platform's opaque hardware code.
	TagRaw
	// TagMapped names the key by the character the active keyboard
	// map produces for it.
	TagMapped
)

func (t IdentityTag) String() string {
	switch t {
	case TagPhysical:
		return "phys"
	case TagRaw:
		return "raw"
	case TagMapped:
		return "mapped"
	}
	return "invalid"
}

// KeyIdentity is a comparable binding key. Code carries the rune for
// physical and mapped identities; Raw carries the hardware code.
type KeyIdentity struct {
	Tag  IdentityTag
	Code rune
	Raw  int64
}

// Physical names a key by layout position.
func Physical(code rune) KeyIdentity { return KeyIdentity{Tag: TagPhysical, Code: code} }

// Mapped names a key by layout-produced character.
func Mapped(code rune) KeyIdentity { return KeyIdentity{Tag: TagMapped, Code: code} }

// Raw names a key by hardware code.
func Raw(code int64) KeyIdentity { return KeyIdentity{Tag: TagRaw, Raw: code} }

// IsZero reports whether the identity is unset.
func (k KeyIdentity) IsZero() bool { return k.Tag == 0 }

func (k KeyIdentity) String() string {
	switch k.Tag {
	case TagPhysical:
		return "phys:" + KeyName(k.Code)
	case TagRaw:
		return fmt.Sprintf("raw:%d", k.Raw)
	case TagMapped:
		return KeyName(k.Code)
	}
	return "invalid"
}

// KeyEvent is one key press as observed by the host window layer.
// Physical, Mapped and Raw are alternative identities for the same
// press; any of them may be absent (zero) when the platform does not
// report that view of the key.
type KeyEvent struct {
	// Physical is the key's position code on the standardized layout.
	Physical rune
	// Mapped is the character the active keyboard map assigned.
	Mapped rune
	// Raw is the platform hardware code, 0 when unknown.
	Raw int64
	// Text is the text this press would insert, empty for non-printing
	// keys and chords that produce no text.
	Text string
	Mods Mod
	Time time.Time

	// DeadKey marks presses the OS layout classifies as dead keys.
	DeadKey bool
	// Composed marks events synthesized by dead key or IME composition.
	Composed bool
	// Uncomposed is the pre-composition form of a composed event. It is
	// probed for bindings after the composed form fails to match.
	Uncomposed *KeyEvent
}

// Identities returns the binding identities of the event in probe
// order: physical first, then raw, then mapped. Absent identities are
// skipped.
func (e *KeyEvent) Identities() []KeyIdentity {
	ids := make([]KeyIdentity, 0, 3)
	if e.Physical != 0 {
		ids = append(ids, Physical(e.Physical))
	}
	if e.Raw != 0 {
		ids = append(ids, Raw(e.Raw))
	}
	if e.Mapped != 0 {
		ids = append(ids, Mapped(e.Mapped))
	}
	return ids
}

// NormalizeShift folds SHIFT into a mapped character for binding
// lookup. Only ASCII letters absorb the modifier: an uppercase letter
// drops SHIFT, a lowercase one is uppercased first. Every other
// character keeps SHIFT, so a phys: or raw: binding on shifted
// punctuation ("SHIFT 1" for '!') stays reachable.
func NormalizeShift(r rune, mods Mod) (rune, Mod) {
	if !mods.Has(ModShift) {
		return r, mods
	}
	switch {
	case r >= 'A' && r <= 'Z':
		return r, mods.Without(ModShift)
	case r >= 'a' && r <= 'z':
		return r - 'a' + 'A', mods.Without(ModShift)
	}
	return r, mods
}

// String renders the event for traces, e.g. "CTRL|SHIFT phys:k".
func (e *KeyEvent) String() string {
	id := ""
	switch {
	case e.Mapped != 0:
		id = KeyName(e.Mapped)
	case e.Physical != 0:
		id = "phys:" + KeyName(e.Physical)
	case e.Raw != 0:
		id = fmt.Sprintf("raw:%d", e.Raw)
	}
	if e.Mods == ModNone {
		return id
	}
	return e.Mods.String() + " " + id
}
