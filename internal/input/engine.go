// Package input implements the keymux input resolution engine: it
// turns raw keyboard and mouse events into the action to run, the text
// to forward, or nothing. Resolution is deterministic and single
// threaded per window; time-dependent behavior (leader timeouts, key
// table expiry, click streaks) uses deadlines checked against an
// injected clock rather than background timers.
package input

import "time"

// DefaultLeaderTimeout bounds how long a leader activation stays
// pending when the config does not say otherwise.
const DefaultLeaderTimeout = 1000 * time.Millisecond

// Leader configures the leader key: pressing it arms a virtual LEADER
// modifier on subsequent keys until one is dispatched or the timeout
// passes.
type Leader struct {
	Key     KeyIdentity
	Mods    Mod
	Timeout time.Duration
}

// Config is the compiled, immutable input configuration an engine
// resolves against. Reload swaps the whole value.
type Config struct {
	// DefaultTable is consulted when the key table stack is empty or
	// exhausted without a match.
	DefaultTable *KeyTable
	// Tables holds the named tables ActivateKeyTable can push.
	Tables map[string]*KeyTable
	// Leader is nil when no leader key is configured.
	Leader *Leader
	// MouseBindings are probed in order; first match wins.
	MouseBindings []MouseBinding

	// Compositions is the dead key table, nil for the defaults.
	Compositions map[rune]map[rune]rune
	// UseDeadKeys enables dead key composition.
	UseDeadKeys bool
	// UseIME hands composition to the platform input method.
	UseIME bool

	// ClickThreshold caps the gap between presses of a click streak.
	ClickThreshold time.Duration
}

// Table resolves a table by name, treating "" as the default table.
func (c *Config) Table(name string) *KeyTable {
	if name == "" {
		return c.DefaultTable
	}
	return c.Tables[name]
}

// Decision says what the host should do with a resolved event.
type Decision uint8

const (
	// DecisionAction runs the result's assignment.
	DecisionAction Decision = iota + 1
	// DecisionForward delivers the event to the focused program.
	DecisionForward
	// DecisionSwallow consumes the event silently.
	DecisionSwallow
)

func (d Decision) String() string {
	switch d {
	case DecisionAction:
		return "action"
	case DecisionForward:
		return "forward"
	case DecisionSwallow:
		return "swallow"
	}
	return "invalid"
}

// Result is one resolved event.
type Result struct {
	Decision   Decision
	Assignment Assignment
	// Table names the table that matched, "" for the default table.
	Table string
	// Event is set for key results.
	Event KeyEvent
	// Gesture is set for mouse results.
	Gesture *Gesture
}

// Status is the engine state a host surfaces to the user.
type Status struct {
	// ActiveTable is the top of the key table stack, "" when empty.
	ActiveTable string
	// Composing is the candidate text of an in-progress composition.
	Composing string
	// LeaderActive reports a pending leader activation.
	LeaderActive bool
	// StackDepth is the key table stack depth.
	StackDepth int
}

// Engine resolves input for one window. It is not safe for concurrent
// use; each window's event loop owns its engine.
type Engine struct {
	cfg      *Config
	stack    *KeyTableStack
	composer *Composer
	mouse    *MouseRecognizer

	leaderUntil time.Time
	now         func() time.Time
	onStatus    func(Status)
}

// NewEngine builds an engine for one window.
func NewEngine(cfg *Config) *Engine {
	e := &Engine{now: time.Now}
	e.stack = NewKeyTableStack()
	e.applyConfig(cfg)
	return e
}

// SetClock injects a clock. Tests use it to script deadlines; the
// recognizer and stack share it.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
	e.stack.now = now
	e.mouse.now = now
}

// SetStatusFunc registers the status callback. It fires after any
// event or tick that changes the visible state.
func (e *Engine) SetStatusFunc(fn func(Status)) {
	e.onStatus = fn
}

// Status snapshots the engine state.
func (e *Engine) Status() Status {
	return Status{
		ActiveTable:  e.stack.ActiveName(),
		Composing:    e.composer.Candidate(),
		LeaderActive: e.leaderActive(),
		StackDepth:   e.stack.Depth(),
	}
}

// ActiveKeyTable returns the name of the table at the top of the
// stack, "" when resolution starts at the default table.
func (e *Engine) ActiveKeyTable() string { return e.stack.ActiveName() }

// Composing returns the candidate text of an in-progress composition.
func (e *Engine) Composing() string { return e.composer.Candidate() }

// LeaderActive reports whether a leader activation is pending.
func (e *Engine) LeaderActive() bool { return e.leaderActive() }

// StackEntries returns copies of the current activations bottom to
// top, for display surfaces.
func (e *Engine) StackEntries() []TableActivation {
	entries := e.stack.Entries()
	out := make([]TableActivation, len(entries))
	for i, a := range entries {
		out[i] = *a
	}
	return out
}

func (e *Engine) applyConfig(cfg *Config) {
	if cfg == nil {
		cfg = &Config{}
	}
	e.cfg = cfg
	e.composer = NewComposer(cfg.Compositions, cfg.UseDeadKeys, nil)
	e.mouse = NewMouseRecognizer(cfg.ClickThreshold)
	if e.now != nil {
		e.stack.now = e.now
		e.mouse.now = e.now
	}
}

// Reload atomically replaces the configuration. The key table stack is
// cleared so no activation can reference a table the new config no
// longer defines; pending leader and composition state are dropped for
// the same reason.
func (e *Engine) Reload(cfg *Config) {
	e.applyConfig(cfg)
	e.stack.Clear()
	e.leaderUntil = time.Time{}
	e.notifyStatus()
}

// HandleKey resolves one key press. A single press can produce several
// results when composition flushes buffered events.
func (e *Engine) HandleKey(ev KeyEvent) []Result {
	e.expire()
	if ev.Time.IsZero() {
		ev.Time = e.now()
	}

	events := e.composer.ProcessKey(ev)
	var results []Result
	for i := range events {
		results = append(results, e.resolveKey(&events[i]))
	}
	e.notifyStatus()
	return results
}

// HandleIMEStart begins platform IME composition.
func (e *Engine) HandleIMEStart() {
	if !e.cfg.UseIME {
		return
	}
	e.composer.StartIME()
	e.notifyStatus()
}

// HandleIMEUpdate replaces the IME candidate text.
func (e *Engine) HandleIMEUpdate(partial string) {
	if !e.cfg.UseIME {
		return
	}
	e.composer.UpdateIME(partial)
	e.notifyStatus()
}

// HandleIMECommit resolves the committed text as one event.
func (e *Engine) HandleIMECommit(text string) []Result {
	e.expire()
	var results []Result
	for _, ev := range e.composer.CommitIME(text) {
		ev := ev
		ev.Time = e.now()
		results = append(results, e.resolveKey(&ev))
	}
	e.notifyStatus()
	return results
}

// HandleIMECancel abandons IME composition.
func (e *Engine) HandleIMECancel() {
	e.composer.CancelIME()
	e.notifyStatus()
}

// resolveKey runs the resolution pipeline for one post-composition
// event: leader arming, stack walk, default table, fallthrough.
func (e *Engine) resolveKey(ev *KeyEvent) Result {
	mods := ev.Mods

	leaderWasActive := e.leaderActive()
	if !leaderWasActive && e.leaderMatches(ev, mods) {
		timeout := e.cfg.Leader.Timeout
		if timeout <= 0 {
			timeout = DefaultLeaderTimeout
		}
		e.leaderUntil = e.now().Add(timeout)
		return Result{Decision: DecisionSwallow, Event: *ev}
	}
	if leaderWasActive {
		// Modifier-only presses neither consume nor cancel a pending
		// leader.
		if isModifierOnly(ev) {
			return Result{Decision: DecisionSwallow, Event: *ev}
		}
		mods |= ModLeader
		// One shot: the press after the leader ends the activation
		// whether or not it matches anything.
		e.leaderUntil = time.Time{}
	}

	asg, table, verdict := e.resolveStack(ev, mods)
	if verdict == stackMatched {
		if asg.Builtin() {
			e.applyBuiltin(asg)
		}
		return Result{Decision: DecisionAction, Assignment: asg, Table: table, Event: *ev}
	}
	if leaderWasActive || verdict == stackSwallowed {
		// Unmatched keys during a pending leader, and keys stopped by
		// a prevent_fallback table, are swallowed rather than
		// forwarded.
		return Result{Decision: DecisionSwallow, Event: *ev}
	}
	if ev.Physical == 0 && ev.Mapped == 0 && ev.Text == "" {
		// A raw-only press with no printable form has nothing to
		// forward.
		return Result{Decision: DecisionSwallow, Event: *ev}
	}
	return Result{Decision: DecisionForward, Event: *ev}
}

type stackVerdict uint8

const (
	stackMissed stackVerdict = iota
	stackMatched
	stackSwallowed
)

// resolveStack walks activations top to bottom, then the default
// table. until_unknown entries are popped as the walk passes their
// misses; a one_shot top is popped after any dispatch; a miss in a
// prevent_fallback table stops the walk and swallows the key.
func (e *Engine) resolveStack(ev *KeyEvent, mods Mod) (Assignment, string, stackVerdict) {
	entries := e.stack.Entries()
	for i := len(entries) - 1; i >= 0; i-- {
		act := entries[i]
		table := e.cfg.Tables[act.Table]
		if table != nil {
			if asg, ok := table.Lookup(ev, mods); ok {
				e.stack.resetTimeout(act)
				e.popOneShot()
				return asg, act.Table, stackMatched
			}
		}
		if act.PreventFallback {
			if act.UntilUnknown {
				e.stack.remove(act)
			}
			return Assignment{}, "", stackSwallowed
		}
		if act.UntilUnknown {
			e.stack.remove(act)
		}
	}
	if e.cfg.DefaultTable != nil {
		if asg, ok := e.cfg.DefaultTable.Lookup(ev, mods); ok {
			e.popOneShot()
			return asg, "", stackMatched
		}
	}
	return Assignment{}, "", stackMissed
}

// popOneShot pops the top activation when it is one shot. Exactly one
// entry comes off per dispatch no matter how deep the match landed.
func (e *Engine) popOneShot() {
	if top := e.stack.Top(); top != nil && top.OneShot {
		e.stack.Pop()
	}
}

func (e *Engine) applyBuiltin(asg Assignment) {
	switch asg.Action {
	case ActionActivateKeyTable:
		if asg.Activate != nil {
			e.stack.Push(*asg.Activate)
		}
	case ActionPopKeyTable:
		e.stack.Pop()
	case ActionClearKeyTableStack:
		e.stack.Clear()
	}
}

func (e *Engine) leaderActive() bool {
	return !e.leaderUntil.IsZero() && e.leaderUntil.After(e.now())
}

func (e *Engine) leaderMatches(ev *KeyEvent, mods Mod) bool {
	l := e.cfg.Leader
	if l == nil {
		return false
	}
	for _, id := range ev.Identities() {
		m := mods
		if id.Tag == TagMapped {
			id.Code, m = NormalizeShift(id.Code, m)
		}
		if id == l.Key && m == l.Mods {
			return true
		}
	}
	return false
}

// MouseDown resolves a button press.
func (e *Engine) MouseDown(btn MouseButton, cell Cell, mods Mod) Result {
	e.expire()
	return e.resolveGesture(e.mouse.Down(btn, cell, mods))
}

// MouseUp resolves a button release.
func (e *Engine) MouseUp(btn MouseButton, cell Cell, mods Mod) Result {
	e.expire()
	return e.resolveGesture(e.mouse.Up(btn, cell, mods))
}

// MouseMove resolves pointer motion, one result per held button.
func (e *Engine) MouseMove(cell Cell, mods Mod) []Result {
	e.expire()
	var results []Result
	for _, g := range e.mouse.Move(cell, mods) {
		results = append(results, e.resolveGesture(g))
	}
	return results
}

// resolveGesture matches a recognized gesture against the mouse
// bindings. Status listeners hear about every mouse event: the expire
// call preceding gesture recognition can pop tables even when no
// binding fires.
func (e *Engine) resolveGesture(g Gesture) Result {
	defer e.notifyStatus()
	for _, b := range e.cfg.MouseBindings {
		if b.Trigger.Matches(g) {
			g := g
			if b.Assignment.Builtin() {
				e.applyBuiltin(b.Assignment)
			}
			return Result{Decision: DecisionAction, Assignment: b.Assignment, Gesture: &g}
		}
	}
	g2 := g
	return Result{Decision: DecisionForward, Gesture: &g2}
}

// FocusLost flushes pending composition, forwards the flushed
// characters, cancels a pending leader and resets click streaks.
func (e *Engine) FocusLost() []Result {
	var results []Result
	for _, ev := range e.composer.Flush() {
		ev := ev
		results = append(results, Result{Decision: DecisionForward, Event: ev})
	}
	e.leaderUntil = time.Time{}
	e.mouse.Reset()
	e.notifyStatus()
	return results
}

// Tick advances deadline-driven state: expired key tables pop and an
// expired leader deactivates. Hosts call it when the deadline returned
// by NextDeadline fires.
func (e *Engine) Tick() {
	e.expire()
	e.notifyStatus()
}

func (e *Engine) expire() {
	e.stack.PruneExpired()
	if !e.leaderUntil.IsZero() && !e.leaderUntil.After(e.now()) {
		e.leaderUntil = time.Time{}
	}
}

// NextDeadline returns the earliest time at which deadline-driven state
// changes, so the host loop can schedule a wakeup. ok is false when
// nothing is pending.
func (e *Engine) NextDeadline() (time.Time, bool) {
	next, ok := e.stack.NextDeadline()
	if e.leaderActive() {
		if !ok || e.leaderUntil.Before(next) {
			next, ok = e.leaderUntil, true
		}
	}
	return next, ok
}

func (e *Engine) notifyStatus() {
	if e.onStatus != nil {
		e.onStatus(e.Status())
	}
}

func isModifierOnly(ev *KeyEvent) bool {
	return ev.Mapped == 0 && ev.Physical == 0 && ev.Raw == 0 && ev.Text == ""
}
