package input

import "time"

// MouseButton identifies a physical mouse button.
type MouseButton uint8

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseMiddle:
		return "middle"
	case MouseRight:
		return "right"
	}
	return "none"
}

// Cell is a character cell position in the window grid.
type Cell struct {
	X int
	Y int
}

// GestureKind classifies a recognized mouse gesture.
type GestureKind uint8

const (
	GestureDown GestureKind = iota + 1
	GestureDrag
	GestureUp
)

func (k GestureKind) String() string {
	switch k {
	case GestureDown:
		return "down"
	case GestureDrag:
		return "drag"
	case GestureUp:
		return "up"
	}
	return "invalid"
}

// Gesture is a recognized mouse event carrying its click streak. The
// streak counts rapid successive presses of the same button on the same
// cell: 1 for a single click, 2 for a double, and so on unbounded.
// Drag and Up inherit the streak of the Down that began them.
type Gesture struct {
	Kind   GestureKind
	Button MouseButton
	Streak int
	Cell   Cell
	Mods   Mod
	Time   time.Time
}

// MouseTrigger is the binding side of a gesture: kind, exact streak,
// button and modifiers all must match.
type MouseTrigger struct {
	Kind   GestureKind
	Streak int
	Button MouseButton
	Mods   Mod
}

// MouseBinding associates a trigger with an assignment.
type MouseBinding struct {
	Trigger    MouseTrigger
	Assignment Assignment
}

// Matches reports whether the trigger fires for the gesture. Streak
// matching is exact: a triple click does not fire double click
// bindings.
func (t MouseTrigger) Matches(g Gesture) bool {
	return t.Kind == g.Kind && t.Streak == g.Streak &&
		t.Button == g.Button && t.Mods == g.Mods
}

type clickState struct {
	lastDown time.Time
	lastCell Cell
	streak   int
	held     bool
}

// MouseRecognizer turns raw button transitions and motion into
// gestures. State is tracked per button so interleaved clicks of
// different buttons keep independent streaks.
type MouseRecognizer struct {
	threshold time.Duration
	buttons   map[MouseButton]*clickState
	now       func() time.Time
}

// DefaultClickThreshold is the longest gap between presses that still
// extends a click streak.
const DefaultClickThreshold = 500 * time.Millisecond

// NewMouseRecognizer builds a recognizer. threshold <= 0 selects the
// default.
func NewMouseRecognizer(threshold time.Duration) *MouseRecognizer {
	if threshold <= 0 {
		threshold = DefaultClickThreshold
	}
	return &MouseRecognizer{
		threshold: threshold,
		buttons:   make(map[MouseButton]*clickState),
		now:       time.Now,
	}
}

func (r *MouseRecognizer) state(btn MouseButton) *clickState {
	cs := r.buttons[btn]
	if cs == nil {
		cs = &clickState{}
		r.buttons[btn] = cs
	}
	return cs
}

// Down records a button press and returns its gesture. The streak
// extends when this press lands on the same cell as the previous one
// within the threshold, and resets to 1 otherwise.
func (r *MouseRecognizer) Down(btn MouseButton, cell Cell, mods Mod) Gesture {
	now := r.now()
	cs := r.state(btn)
	if !cs.lastDown.IsZero() && now.Sub(cs.lastDown) <= r.threshold && cell == cs.lastCell {
		cs.streak++
	} else {
		cs.streak = 1
	}
	cs.lastDown = now
	cs.lastCell = cell
	cs.held = true
	return Gesture{Kind: GestureDown, Button: btn, Streak: cs.streak, Cell: cell, Mods: mods, Time: now}
}

// Up records a button release. The streak carries over from the press.
func (r *MouseRecognizer) Up(btn MouseButton, cell Cell, mods Mod) Gesture {
	now := r.now()
	cs := r.state(btn)
	cs.held = false
	streak := cs.streak
	if streak == 0 {
		streak = 1
	}
	return Gesture{Kind: GestureUp, Button: btn, Streak: streak, Cell: cell, Mods: mods, Time: now}
}

// Move reports pointer motion and returns a drag gesture per held
// button, preserving each button's streak.
func (r *MouseRecognizer) Move(cell Cell, mods Mod) []Gesture {
	now := r.now()
	var out []Gesture
	for _, btn := range []MouseButton{MouseLeft, MouseMiddle, MouseRight} {
		cs := r.buttons[btn]
		if cs == nil || !cs.held {
			continue
		}
		out = append(out, Gesture{
			Kind: GestureDrag, Button: btn, Streak: cs.streak,
			Cell: cell, Mods: mods, Time: now,
		})
	}
	return out
}

// Reset drops all click state. Focus loss uses it so a streak never
// spans a focus change.
func (r *MouseRecognizer) Reset() {
	r.buttons = make(map[MouseButton]*clickState)
}
