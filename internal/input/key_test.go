package input

import "testing"

func TestIdentitiesProbeOrder(t *testing.T) {
	tests := []struct {
		name string
		ev   KeyEvent
		want []KeyIdentity
	}{
		{
			"all present",
			KeyEvent{Physical: 'a', Raw: 38, Mapped: 'q'},
			[]KeyIdentity{Physical('a'), Raw(38), Mapped('q')},
		},
		{
			"no raw code",
			KeyEvent{Physical: 'a', Mapped: 'q'},
			[]KeyIdentity{Physical('a'), Mapped('q')},
		},
		{
			"mapped only",
			KeyEvent{Mapped: 'é'},
			[]KeyIdentity{Mapped('é')},
		},
		{
			"raw only",
			KeyEvent{Raw: 133},
			[]KeyIdentity{Raw(133)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ev.Identities()
			if len(got) != len(tt.want) {
				t.Fatalf("Identities() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Identities()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTableLookupPrefersPhysical(t *testing.T) {
	// One table binds the same press under all three identities; the
	// physical binding must win even when listed last.
	table := &KeyTable{Name: "t", Bindings: []Binding{
		{Key: Mapped('q'), Mods: ModNone, Assignment: Assignment{Action: "ByMapped"}},
		{Key: Raw(38), Mods: ModNone, Assignment: Assignment{Action: "ByRaw"}},
		{Key: Physical('a'), Mods: ModNone, Assignment: Assignment{Action: "ByPhysical"}},
	}}
	ev := KeyEvent{Physical: 'a', Raw: 38, Mapped: 'q'}

	asg, ok := table.Lookup(&ev, ModNone)
	if !ok {
		t.Fatal("expected a match")
	}
	if asg.Action != "ByPhysical" {
		t.Errorf("matched %q, want ByPhysical", asg.Action)
	}
}

func TestTableLookupFirstBindingWins(t *testing.T) {
	table := &KeyTable{Name: "t", Bindings: []Binding{
		{Key: Mapped('x'), Mods: ModNone, Assignment: Assignment{Action: "First"}},
		{Key: Mapped('x'), Mods: ModNone, Assignment: Assignment{Action: "Second"}},
	}}
	ev := KeyEvent{Mapped: 'x'}

	asg, ok := table.Lookup(&ev, ModNone)
	if !ok || asg.Action != "First" {
		t.Errorf("got %q ok=%v, want First", asg.Action, ok)
	}
}

func TestTableLookupUncomposedFallback(t *testing.T) {
	table := &KeyTable{Name: "t", Bindings: []Binding{
		{Key: Mapped('e'), Mods: ModCtrl, Assignment: Assignment{Action: "OnE"}},
	}}
	ev := KeyEvent{
		Mapped:     'ê',
		Text:       "ê",
		Mods:       ModCtrl,
		Composed:   true,
		Uncomposed: &KeyEvent{Mapped: 'e', Mods: ModCtrl},
	}

	asg, ok := table.Lookup(&ev, ev.Mods)
	if !ok || asg.Action != "OnE" {
		t.Errorf("got %q ok=%v, want OnE via uncomposed form", asg.Action, ok)
	}
}

func TestTableLookupShiftFoldOnlyOnMappedProbe(t *testing.T) {
	// shift+1 produces '!' on a US layout. The physical probe must see
	// SHIFT as held; only mapped ASCII letters absorb it.
	table := &KeyTable{Name: "t", Bindings: []Binding{
		{Key: Physical('1'), Mods: ModShift, Assignment: Assignment{Action: "PhysBang"}},
		{Key: Raw(2), Mods: ModShift, Assignment: Assignment{Action: "RawBang"}},
		{Key: Mapped('K'), Mods: ModNone, Assignment: Assignment{Action: "BigK"}},
	}}

	tests := []struct {
		name string
		ev   KeyEvent
		want string
	}{
		{
			"physical binding with shift fires for shifted punctuation",
			KeyEvent{Physical: '1', Mapped: '!', Text: "!", Mods: ModShift},
			"PhysBang",
		},
		{
			"raw binding with shift fires for shifted punctuation",
			KeyEvent{Raw: 2, Mapped: '!', Text: "!", Mods: ModShift},
			"RawBang",
		},
		{
			"mapped uppercase absorbs shift",
			KeyEvent{Mapped: 'K', Text: "K", Mods: ModShift},
			"BigK",
		},
		{
			"mapped lowercase folds to uppercase",
			KeyEvent{Mapped: 'k', Mods: ModShift},
			"BigK",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asg, ok := table.Lookup(&tt.ev, tt.ev.Mods)
			if !ok || asg.Action != tt.want {
				t.Errorf("got %q ok=%v, want %q", asg.Action, ok, tt.want)
			}
		})
	}
}

func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want rune
		ok   bool
	}{
		{"named", "enter", KeyEnter, true},
		{"alias", "esc", KeyEscape, true},
		{"case insensitive", "PageUp", KeyPageUp, true},
		{"single rune", "ß", 'ß', true},
		{"function key", "f11", KeyF11, true},
		{"unknown", "hyperkey", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeyFromName(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("KeyFromName(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
