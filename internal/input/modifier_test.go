package input

import "testing"

func TestParseMods(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want Mod
		ok   bool
	}{
		{"empty", "", ModNone, true},
		{"single", "CTRL", ModCtrl, true},
		{"lowercase", "shift", ModShift, true},
		{"pipe separated", "CTRL|SHIFT", ModCtrl | ModShift, true},
		{"plus separated", "ctrl+alt", ModCtrl | ModAlt, true},
		{"leader", "LEADER|CTRL", ModLeader | ModCtrl, true},
		{"mac spelling", "CMD|OPT", ModSuper | ModAlt, true},
		{"windows spelling", "WIN", ModSuper, true},
		{"meta is alt", "META", ModAlt, true},
		{"none keyword", "NONE", ModNone, true},
		{"unknown name", "HYPER", ModNone, false},
		{"whitespace", " ctrl | shift ", ModCtrl | ModShift, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMods(tt.expr, nil)
			if ok != tt.ok {
				t.Fatalf("ParseMods(%q) ok = %v, want %v", tt.expr, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseMods(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParseModsUserAliases(t *testing.T) {
	aliases := map[string]Mod{"mod4": ModSuper}
	got, ok := ParseMods("MOD4|shift", aliases)
	if !ok {
		t.Fatal("expected alias to resolve")
	}
	if want := ModSuper | ModShift; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestModString(t *testing.T) {
	tests := []struct {
		name string
		mod  Mod
		want string
	}{
		{"none", ModNone, "NONE"},
		{"single", ModAlt, "ALT"},
		{"canonical order", ModShift | ModCtrl, "CTRL|SHIFT"},
		{"with leader", ModLeader | ModCtrl, "CTRL|LEADER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mod.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeShift(t *testing.T) {
	tests := []struct {
		name     string
		r        rune
		mods     Mod
		wantR    rune
		wantMods Mod
	}{
		{"uppercase letter absorbs shift", 'K', ModShift, 'K', ModNone},
		{"lowercase folds to uppercase", 'k', ModShift, 'K', ModNone},
		{"ctrl survives normalization", 'K', ModCtrl | ModShift, 'K', ModCtrl},
		{"shifted punctuation keeps shift", '!', ModShift, '!', ModShift},
		{"symbol keeps shift", '+', ModShift, '+', ModShift},
		{"non-ascii letter keeps shift", 'É', ModShift, 'É', ModShift},
		{"named key keeps shift", KeyUp, ModShift, KeyUp, ModShift},
		{"no shift is a no-op", 'k', ModCtrl, 'k', ModCtrl},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotR, gotMods := NormalizeShift(tt.r, tt.mods)
			if gotR != tt.wantR || gotMods != tt.wantMods {
				t.Errorf("NormalizeShift(%q, %v) = %q, %v; want %q, %v",
					tt.r, tt.mods, gotR, gotMods, tt.wantR, tt.wantMods)
			}
		})
	}
}
