package input

import "unicode/utf8"

// ComposeState tracks multi-key composition.
type ComposeState uint8

const (
	ComposeIdle ComposeState = iota
	// ComposeDeadKey means a dead key is held pending its combining
	// character.
	ComposeDeadKey
	// ComposeIME means the platform input method owns the key stream.
	ComposeIME
)

func (s ComposeState) String() string {
	switch s {
	case ComposeIdle:
		return "idle"
	case ComposeDeadKey:
		return "dead-key"
	case ComposeIME:
		return "ime"
	}
	return "invalid"
}

// DefaultCompositions maps dead key diacritics to the characters they
// combine with. User configs extend or override entries.
func DefaultCompositions() map[rune]map[rune]rune {
	return map[rune]map[rune]rune{
		'^': {'a': 'â', 'e': 'ê', 'i': 'î', 'o': 'ô', 'u': 'û'},
		'`': {'a': 'à', 'e': 'è', 'i': 'ì', 'o': 'ò', 'u': 'ù'},
		'\'': {
			'a': 'á', 'e': 'é', 'i': 'í', 'o': 'ó', 'u': 'ú', 'y': 'ý',
			'c': 'ć', 'n': 'ń', 's': 'ś', 'z': 'ź',
		},
		'"': {'a': 'ä', 'e': 'ë', 'i': 'ï', 'o': 'ö', 'u': 'ü', 'y': 'ÿ'},
		'~': {'a': 'ã', 'n': 'ñ', 'o': 'õ'},
	}
}

// Composer is the per-window composition state machine. It sits in
// front of binding resolution: every key press flows through ProcessKey
// and only the events it emits reach the tables.
type Composer struct {
	state        ComposeState
	pending      rune
	pendingEvent KeyEvent
	candidate    string
	compositions map[rune]map[rune]rune
	deadKeys     bool
	onStatus     func(string)
}

// NewComposer builds a composer. compositions may be nil to use the
// defaults; onStatus, when non-nil, receives the candidate text to
// display ("" when composition ends).
func NewComposer(compositions map[rune]map[rune]rune, useDeadKeys bool, onStatus func(string)) *Composer {
	if compositions == nil {
		compositions = DefaultCompositions()
	}
	return &Composer{
		compositions: compositions,
		deadKeys:     useDeadKeys,
		onStatus:     onStatus,
	}
}

// State returns the current composition state.
func (c *Composer) State() ComposeState { return c.state }

// Candidate returns the text to display while composing, "" when idle.
func (c *Composer) Candidate() string { return c.candidate }

// ProcessKey feeds one ordinary key press through the machine and
// returns the events to resolve. A press swallowed into a pending
// composition yields nothing; a completed composition yields the
// composed event; an aborted one yields the bare diacritic followed by
// whatever the aborting press produces.
func (c *Composer) ProcessKey(ev KeyEvent) []KeyEvent {
	switch c.state {
	case ComposeIME:
		// The input method owns the stream; hosts do not normally
		// deliver raw presses here, but pass through any that arrive.
		return []KeyEvent{ev}
	case ComposeDeadKey:
		return c.processDeadKeyFollowup(ev)
	}
	if c.deadKeys && ev.DeadKey && ev.Mapped != 0 {
		c.state = ComposeDeadKey
		c.pending = ev.Mapped
		c.pendingEvent = ev
		c.setCandidate(string(ev.Mapped))
		return nil
	}
	return []KeyEvent{ev}
}

func (c *Composer) processDeadKeyFollowup(ev KeyEvent) []KeyEvent {
	// A second press of the same dead key, or space, commits the bare
	// diacritic character.
	if ev.Mapped == KeySpace || (ev.DeadKey && ev.Mapped == c.pending) {
		out := c.bareDiacritic(ev)
		c.reset()
		return []KeyEvent{out}
	}
	if combined, ok := c.compositions[c.pending][ev.Mapped]; ok {
		composed := KeyEvent{
			Mapped:     combined,
			Text:       string(combined),
			Mods:       ev.Mods,
			Time:       ev.Time,
			Composed:   true,
			Uncomposed: cloneEvent(ev),
		}
		c.reset()
		return []KeyEvent{composed}
	}
	// Non-combining key: flush the bare diacritic, then process the
	// press as if composition had never started. It may itself open a
	// new composition.
	bare := c.bareDiacritic(ev)
	c.reset()
	return append([]KeyEvent{bare}, c.ProcessKey(ev)...)
}

func (c *Composer) bareDiacritic(cause KeyEvent) KeyEvent {
	pending := c.pendingEvent
	return KeyEvent{
		Mapped:     c.pending,
		Text:       string(c.pending),
		Time:       cause.Time,
		Composed:   true,
		Uncomposed: cloneEvent(pending),
	}
}

// StartIME enters IME composition. Keys are owned by the input method
// until CommitIME or CancelIME.
func (c *Composer) StartIME() {
	c.flushPendingDeadKey()
	c.state = ComposeIME
	c.setCandidate("")
}

// UpdateIME replaces the candidate text shown while the input method
// composes.
func (c *Composer) UpdateIME(partial string) {
	if c.state != ComposeIME {
		c.StartIME()
	}
	c.setCandidate(partial)
}

// CommitIME ends IME composition with final text and returns the single
// event carrying it. Text composed to one rune is indistinguishable
// from directly typing that character.
func (c *Composer) CommitIME(text string) []KeyEvent {
	c.reset()
	if text == "" {
		return nil
	}
	ev := KeyEvent{Text: text, Composed: true}
	if r, size := utf8.DecodeRuneInString(text); size == len(text) {
		ev.Mapped = r
	}
	return []KeyEvent{ev}
}

// CancelIME ends IME composition discarding the candidate.
func (c *Composer) CancelIME() {
	c.reset()
}

// Flush aborts any pending dead key, returning its bare character, and
// discards IME state. Hosts call it on focus loss.
func (c *Composer) Flush() []KeyEvent {
	out := c.flushPendingDeadKey()
	c.reset()
	return out
}

func (c *Composer) flushPendingDeadKey() []KeyEvent {
	if c.state != ComposeDeadKey {
		return nil
	}
	bare := c.bareDiacritic(c.pendingEvent)
	c.reset()
	return []KeyEvent{bare}
}

// Reset drops all composition state without emitting anything. Config
// reloads use it so stale candidates never survive a new config.
func (c *Composer) Reset() {
	c.reset()
}

func (c *Composer) reset() {
	c.state = ComposeIdle
	c.pending = 0
	c.pendingEvent = KeyEvent{}
	c.setCandidate("")
}

func (c *Composer) setCandidate(text string) {
	if c.candidate == text {
		return
	}
	c.candidate = text
	if c.onStatus != nil {
		c.onStatus(text)
	}
}

func cloneEvent(ev KeyEvent) *KeyEvent {
	ev.Uncomposed = nil
	return &ev
}
