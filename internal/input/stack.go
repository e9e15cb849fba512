package input

import "time"

// KeyTableStack tracks active key table activations. The top of the
// stack is consulted first during resolution. Timeouts are deadlines
// checked against the injected clock; nothing here spawns timers.
type KeyTableStack struct {
	entries []*TableActivation
	now     func() time.Time
}

// NewKeyTableStack returns an empty stack using the wall clock.
func NewKeyTableStack() *KeyTableStack {
	return &KeyTableStack{now: time.Now}
}

// Push activates a table. ReplaceCurrent pops the current top first.
// A timeout activation gets its deadline armed from the current clock.
func (s *KeyTableStack) Push(a TableActivation) {
	if a.ReplaceCurrent && len(s.entries) > 0 {
		s.entries = s.entries[:len(s.entries)-1]
	}
	if a.Timeout > 0 {
		a.expiry = s.now().Add(a.Timeout)
	}
	s.entries = append(s.entries, &a)
}

// Pop removes the top activation. Popping an empty stack is a no-op.
func (s *KeyTableStack) Pop() {
	if len(s.entries) > 0 {
		s.entries = s.entries[:len(s.entries)-1]
	}
}

// Clear removes every activation.
func (s *KeyTableStack) Clear() {
	s.entries = nil
}

// Depth returns the number of active activations.
func (s *KeyTableStack) Depth() int { return len(s.entries) }

// Top returns the top activation, or nil when the stack is empty.
func (s *KeyTableStack) Top() *TableActivation {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1]
}

// ActiveName returns the top activation's table name, or "" when the
// stack is empty and resolution starts at the default table.
func (s *KeyTableStack) ActiveName() string {
	if top := s.Top(); top != nil {
		return top.Table
	}
	return ""
}

// Entries returns the activations bottom to top. The slice aliases the
// stack; callers iterate it but mutate through Push/Pop/remove.
func (s *KeyTableStack) Entries() []*TableActivation {
	return s.entries
}

// remove drops one activation by identity, wherever it sits.
func (s *KeyTableStack) remove(a *TableActivation) {
	for i, e := range s.entries {
		if e == a {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// PruneExpired drops every activation whose deadline has passed and
// returns the names of the dropped tables.
func (s *KeyTableStack) PruneExpired() []string {
	var popped []string
	now := s.now()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if !e.expiry.IsZero() && !e.expiry.After(now) {
			popped = append(popped, e.Table)
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return popped
}

// resetTimeout re-arms an activation's deadline after a key in its
// table matched.
func (s *KeyTableStack) resetTimeout(a *TableActivation) {
	if a.Timeout > 0 {
		a.expiry = s.now().Add(a.Timeout)
	}
}

// NextDeadline returns the earliest pending deadline, if any.
func (s *KeyTableStack) NextDeadline() (time.Time, bool) {
	var next time.Time
	for _, e := range s.entries {
		if e.expiry.IsZero() {
			continue
		}
		if next.IsZero() || e.expiry.Before(next) {
			next = e.expiry
		}
	}
	return next, !next.IsZero()
}
