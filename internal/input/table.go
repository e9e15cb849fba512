package input

import "time"

// Builtin action names the engine resolves itself instead of handing
// to the host dispatcher.
const (
	ActionActivateKeyTable   = "ActivateKeyTable"
	ActionPopKeyTable        = "PopKeyTable"
	ActionClearKeyTableStack = "ClearKeyTableStack"
)

// Assignment is the target of a binding: an action name plus an
// optional argument. Activate is set for ActivateKeyTable bindings and
// carries the activation parameters.
type Assignment struct {
	Action   string
	Arg      string
	Activate *TableActivation
}

// Builtin reports whether the engine handles the assignment itself.
func (a Assignment) Builtin() bool {
	switch a.Action {
	case ActionActivateKeyTable, ActionPopKeyTable, ActionClearKeyTableStack:
		return true
	}
	return false
}

// TableActivation describes one entry pushed onto the key table stack.
type TableActivation struct {
	Table string
	// OneShot pops the activation after the next dispatched binding.
	OneShot bool
	// Timeout pops the activation when no key in its table matches
	// within the window. A match resets the deadline. Zero disables it.
	Timeout time.Duration
	// ReplaceCurrent pops the current top before pushing.
	ReplaceCurrent bool
	// UntilUnknown pops the activation when a key misses its table.
	UntilUnknown bool
	// PreventFallback swallows keys its table does not bind instead of
	// letting lower entries or the default table see them.
	PreventFallback bool

	expiry time.Time
}

// Binding associates one key identity and modifier set with an
// assignment.
type Binding struct {
	Key        KeyIdentity
	Mods       Mod
	Assignment Assignment
}

// KeyTable is an ordered set of bindings. Within one identity probe the
// first matching binding wins, so earlier bindings shadow later ones.
type KeyTable struct {
	Name     string
	Bindings []Binding
}

// Lookup probes the table for the event. Identity probes run in order
// physical, raw, mapped; the composed form of the event is exhausted
// before its uncomposed form is probed.
func (t *KeyTable) Lookup(ev *KeyEvent, mods Mod) (Assignment, bool) {
	if t == nil || ev == nil {
		return Assignment{}, false
	}
	if asg, ok := t.lookupOne(ev, mods); ok {
		return asg, true
	}
	if ev.Uncomposed != nil {
		return t.lookupOne(ev.Uncomposed, ev.Uncomposed.Mods|mods&ModLeader)
	}
	return Assignment{}, false
}

// lookupOne probes the three identities. SHIFT folding applies only to
// the mapped probe; physical and raw probes see the modifiers as held.
func (t *KeyTable) lookupOne(ev *KeyEvent, mods Mod) (Assignment, bool) {
	if ev.Physical != 0 {
		if asg, ok := t.find(Physical(ev.Physical), mods); ok {
			return asg, true
		}
	}
	if ev.Raw != 0 {
		if asg, ok := t.find(Raw(ev.Raw), mods); ok {
			return asg, true
		}
	}
	if ev.Mapped != 0 {
		code, folded := NormalizeShift(ev.Mapped, mods)
		if asg, ok := t.find(Mapped(code), folded); ok {
			return asg, true
		}
	}
	return Assignment{}, false
}

func (t *KeyTable) find(id KeyIdentity, mods Mod) (Assignment, bool) {
	for _, b := range t.Bindings {
		if b.Key == id && b.Mods == mods {
			return b.Assignment, true
		}
	}
	return Assignment{}, false
}
