package input

import "testing"

func deadKeyPress(r rune) KeyEvent {
	return KeyEvent{Mapped: r, DeadKey: true}
}

func charPress(r rune) KeyEvent {
	return KeyEvent{Mapped: r, Text: string(r)}
}

func TestComposerDeadKeyCombines(t *testing.T) {
	c := NewComposer(nil, true, nil)

	out := c.ProcessKey(deadKeyPress('^'))
	if len(out) != 0 {
		t.Fatalf("dead key press emitted %v, want nothing", out)
	}
	if c.State() != ComposeDeadKey || c.Candidate() != "^" {
		t.Fatalf("state=%v candidate=%q, want dead-key/^", c.State(), c.Candidate())
	}

	out = c.ProcessKey(charPress('e'))
	if len(out) != 1 {
		t.Fatalf("got %d events, want 1", len(out))
	}
	ev := out[0]
	if ev.Mapped != 'ê' || ev.Text != "ê" || !ev.Composed {
		t.Errorf("composed event = %+v, want ê", ev)
	}
	if ev.Uncomposed == nil || ev.Uncomposed.Mapped != 'e' {
		t.Errorf("uncomposed form = %+v, want the e press", ev.Uncomposed)
	}
	if c.State() != ComposeIdle || c.Candidate() != "" {
		t.Errorf("composer did not return to idle: %v %q", c.State(), c.Candidate())
	}
}

func TestComposerDeadKeyBareCommit(t *testing.T) {
	tests := []struct {
		name   string
		second KeyEvent
	}{
		{"space commits bare", charPress(' ')},
		{"same dead key twice", deadKeyPress('^')},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComposer(nil, true, nil)
			c.ProcessKey(deadKeyPress('^'))
			out := c.ProcessKey(tt.second)
			if len(out) != 1 {
				t.Fatalf("got %d events, want 1", len(out))
			}
			if out[0].Mapped != '^' || out[0].Text != "^" || !out[0].Composed {
				t.Errorf("bare commit = %+v, want ^", out[0])
			}
			if c.State() != ComposeIdle {
				t.Errorf("state = %v, want idle", c.State())
			}
		})
	}
}

func TestComposerDeadKeyAbort(t *testing.T) {
	c := NewComposer(nil, true, nil)
	c.ProcessKey(deadKeyPress('^'))

	out := c.ProcessKey(charPress('q'))
	if len(out) != 2 {
		t.Fatalf("got %d events, want bare ^ then q", len(out))
	}
	if out[0].Mapped != '^' || !out[0].Composed {
		t.Errorf("first event = %+v, want bare ^", out[0])
	}
	if out[1].Mapped != 'q' || out[1].Composed {
		t.Errorf("second event = %+v, want plain q", out[1])
	}
}

func TestComposerDeadKeyAbortIntoNewDeadKey(t *testing.T) {
	c := NewComposer(nil, true, nil)
	c.ProcessKey(deadKeyPress('^'))

	out := c.ProcessKey(deadKeyPress('~'))
	if len(out) != 1 || out[0].Mapped != '^' {
		t.Fatalf("got %v, want only the bare ^", out)
	}
	if c.State() != ComposeDeadKey || c.Candidate() != "~" {
		t.Errorf("second dead key not pending: %v %q", c.State(), c.Candidate())
	}
}

func TestComposerDisabled(t *testing.T) {
	c := NewComposer(nil, false, nil)
	out := c.ProcessKey(deadKeyPress('^'))
	if len(out) != 1 || out[0].Mapped != '^' {
		t.Errorf("with dead keys disabled got %v, want passthrough", out)
	}
	if c.State() != ComposeIdle {
		t.Errorf("state = %v, want idle", c.State())
	}
}

func TestComposerFlushOnFocusLoss(t *testing.T) {
	c := NewComposer(nil, true, nil)
	c.ProcessKey(deadKeyPress('^'))

	out := c.Flush()
	if len(out) != 1 || out[0].Mapped != '^' {
		t.Fatalf("Flush() = %v, want bare ^", out)
	}
	if c.State() != ComposeIdle || c.Candidate() != "" {
		t.Errorf("composer not reset after flush")
	}
	if extra := c.Flush(); len(extra) != 0 {
		t.Errorf("second flush emitted %v", extra)
	}
}

func TestComposerIME(t *testing.T) {
	var candidates []string
	c := NewComposer(nil, true, func(s string) { candidates = append(candidates, s) })

	c.StartIME()
	c.UpdateIME("に")
	c.UpdateIME("にほ")
	out := c.CommitIME("日本")
	if len(out) != 1 {
		t.Fatalf("got %d events, want 1", len(out))
	}
	if out[0].Text != "日本" || out[0].Mapped != 0 || !out[0].Composed {
		t.Errorf("commit event = %+v, want text-only 日本", out[0])
	}

	want := []string{"に", "にほ", ""}
	if len(candidates) != len(want) {
		t.Fatalf("candidate updates = %v, want %v", candidates, want)
	}
	for i := range want {
		if candidates[i] != want[i] {
			t.Errorf("candidate[%d] = %q, want %q", i, candidates[i], want[i])
		}
	}
}

func TestComposerIMESingleRuneCommit(t *testing.T) {
	c := NewComposer(nil, true, nil)
	c.StartIME()
	out := c.CommitIME("é")
	if len(out) != 1 || out[0].Mapped != 'é' || out[0].Text != "é" {
		t.Errorf("got %v, want single é event with mapped identity", out)
	}
}

func TestComposerIMECancel(t *testing.T) {
	c := NewComposer(nil, true, nil)
	c.StartIME()
	c.UpdateIME("か")
	c.CancelIME()
	if c.State() != ComposeIdle || c.Candidate() != "" {
		t.Errorf("cancel left state %v candidate %q", c.State(), c.Candidate())
	}
	if out := c.CommitIME(""); len(out) != 0 {
		t.Errorf("empty commit emitted %v", out)
	}
}

func TestComposerCustomTable(t *testing.T) {
	table := map[rune]map[rune]rune{'-': {'o': 'ō'}}
	c := NewComposer(table, true, nil)
	c.ProcessKey(deadKeyPress('-'))
	out := c.ProcessKey(charPress('o'))
	if len(out) != 1 || out[0].Mapped != 'ō' {
		t.Errorf("got %v, want ō", out)
	}
}
