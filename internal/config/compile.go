package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/keymux/keymux/internal/input"
)

// Compile turns a validated UserConfig into the engine's immutable
// form. Callers validate first; Compile reports errors anyway so a
// hand-built UserConfig cannot smuggle bad entries past it.
func Compile(cfg *UserConfig) (*input.Config, error) {
	aliases, aliasErrs := compileAliases(cfg.Input.ModifierAliases)
	if len(aliasErrs) > 0 {
		return nil, fmt.Errorf("modifier alias %s: %s", aliasErrs[0].Key, aliasErrs[0].Message)
	}

	out := &input.Config{
		Tables:         make(map[string]*input.KeyTable, len(cfg.KeyTables)),
		UseDeadKeys:    boolOr(cfg.Input.UseDeadKeys, true),
		UseIME:         boolOr(cfg.Input.UseIME, false),
		ClickThreshold: time.Duration(cfg.Input.ClickThresholdMS) * time.Millisecond,
	}

	var err error
	out.DefaultTable, err = compileTable("", cfg.Keys, cfg, aliases)
	if err != nil {
		return nil, err
	}
	for name, bindings := range cfg.KeyTables {
		out.Tables[name], err = compileTable(name, bindings, cfg, aliases)
		if err != nil {
			return nil, err
		}
	}

	if cfg.Leader != nil {
		key, err := parseKeySpec(cfg.Leader.Key, cfg.Input.KeyMapPreference)
		if err != nil {
			return nil, fmt.Errorf("leader: %w", err)
		}
		mods, ok := input.ParseMods(cfg.Leader.Mods, aliases)
		if !ok {
			return nil, fmt.Errorf("leader: unrecognized modifier %q", cfg.Leader.Mods)
		}
		key, mods = normalizeBinding(key, mods)
		out.Leader = &input.Leader{
			Key:     key,
			Mods:    mods,
			Timeout: time.Duration(cfg.Leader.TimeoutMS) * time.Millisecond,
		}
	}

	for i, mb := range cfg.Mouse {
		binding, err := compileMouseBinding(mb, aliases)
		if err != nil {
			return nil, fmt.Errorf("mouse[%d]: %w", i, err)
		}
		out.MouseBindings = append(out.MouseBindings, binding)
	}

	if len(cfg.Input.Compositions) > 0 {
		out.Compositions = input.DefaultCompositions()
		for diacritic, combos := range cfg.Input.Compositions {
			d := []rune(diacritic)
			if len(d) != 1 {
				return nil, fmt.Errorf("compositions: dead key %q must be a single character", diacritic)
			}
			row := out.Compositions[d[0]]
			if row == nil {
				row = make(map[rune]rune)
				out.Compositions[d[0]] = row
			}
			for from, to := range combos {
				f, t := []rune(from), []rune(to)
				if len(f) != 1 || len(t) != 1 {
					return nil, fmt.Errorf("compositions: %s.%s must map one character to one character", diacritic, from)
				}
				row[f[0]] = t[0]
			}
		}
	}

	return out, nil
}

func compileTable(name string, bindings []KeyBindingConfig, cfg *UserConfig, aliases map[string]input.Mod) (*input.KeyTable, error) {
	table := &input.KeyTable{Name: name}
	section := "keys"
	if name != "" {
		section = "key_tables." + name
	}
	for _, kb := range bindings {
		key, err := parseKeySpec(kb.Key, cfg.Input.KeyMapPreference)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", section, err)
		}
		mods, ok := input.ParseMods(kb.Mods, aliases)
		if !ok {
			return nil, fmt.Errorf("%s: unrecognized modifier %q", section, kb.Mods)
		}
		key, mods = normalizeBinding(key, mods)

		asg := input.Assignment{Action: kb.Action, Arg: kb.Arg}
		if kb.Action == input.ActionActivateKeyTable {
			asg.Activate = &input.TableActivation{
				Table:           kb.Table,
				OneShot:         boolOr(kb.OneShot, true),
				Timeout:         time.Duration(kb.TimeoutMS) * time.Millisecond,
				ReplaceCurrent:  kb.ReplaceCurrent,
				UntilUnknown:    kb.UntilUnknown,
				PreventFallback: kb.PreventFallback,
			}
		}
		table.Bindings = append(table.Bindings, input.Binding{Key: key, Mods: mods, Assignment: asg})
	}
	return table, nil
}

// normalizeBinding applies the same SHIFT folding to mapped bindings
// that events get at lookup time, so {key = "K", mods = "SHIFT"},
// {key = "k", mods = "SHIFT"} and {key = "K"} all bind the same chord.
// phys: and raw: bindings keep SHIFT as written.
func normalizeBinding(key input.KeyIdentity, mods input.Mod) (input.KeyIdentity, input.Mod) {
	if key.Tag == input.TagMapped {
		key.Code, mods = input.NormalizeShift(key.Code, mods)
	}
	return key, mods
}

func compileMouseBinding(mb MouseBindingConfig, aliases map[string]input.Mod) (input.MouseBinding, error) {
	kind, ok := parseGestureKind(mb.Event)
	if !ok {
		return input.MouseBinding{}, fmt.Errorf("event must be down, drag or up, got %q", mb.Event)
	}
	button, ok := parseMouseButton(mb.Button)
	if !ok {
		return input.MouseBinding{}, fmt.Errorf("button must be left, middle or right, got %q", mb.Button)
	}
	mods, ok := input.ParseMods(mb.Mods, aliases)
	if !ok {
		return input.MouseBinding{}, fmt.Errorf("unrecognized modifier %q", mb.Mods)
	}
	if mb.Streak < 1 {
		return input.MouseBinding{}, fmt.Errorf("streak must be at least 1, got %d", mb.Streak)
	}
	return input.MouseBinding{
		Trigger: input.MouseTrigger{
			Kind:   kind,
			Streak: mb.Streak,
			Button: button,
			Mods:   mods,
		},
		Assignment: input.Assignment{Action: mb.Action, Arg: mb.Arg},
	}, nil
}

// parseKeySpec resolves a key spec. "phys:", "raw:" and "mapped:"
// prefixes force an identity; bare specs follow the configured
// preference.
func parseKeySpec(spec, preference string) (input.KeyIdentity, error) {
	switch {
	case strings.HasPrefix(spec, "phys:"):
		r, ok := input.KeyFromName(strings.TrimPrefix(spec, "phys:"))
		if !ok {
			return input.KeyIdentity{}, fmt.Errorf("unrecognized key %q", spec)
		}
		return input.Physical(r), nil
	case strings.HasPrefix(spec, "raw:"):
		code, err := strconv.ParseInt(strings.TrimPrefix(spec, "raw:"), 10, 64)
		if err != nil || code == 0 {
			return input.KeyIdentity{}, fmt.Errorf("invalid raw key code %q", spec)
		}
		return input.Raw(code), nil
	case strings.HasPrefix(spec, "mapped:"):
		r, ok := input.KeyFromName(strings.TrimPrefix(spec, "mapped:"))
		if !ok {
			return input.KeyIdentity{}, fmt.Errorf("unrecognized key %q", spec)
		}
		return input.Mapped(r), nil
	}
	r, ok := input.KeyFromName(spec)
	if !ok {
		return input.KeyIdentity{}, fmt.Errorf("unrecognized key %q", spec)
	}
	if preference == "physical" {
		return input.Physical(r), nil
	}
	return input.Mapped(r), nil
}

func parseGestureKind(s string) (input.GestureKind, bool) {
	switch strings.ToLower(s) {
	case "down":
		return input.GestureDown, true
	case "drag":
		return input.GestureDrag, true
	case "up":
		return input.GestureUp, true
	}
	return 0, false
}

func parseMouseButton(s string) (input.MouseButton, bool) {
	switch strings.ToLower(s) {
	case "left":
		return input.MouseLeft, true
	case "middle":
		return input.MouseMiddle, true
	case "right":
		return input.MouseRight, true
	}
	return input.MouseNone, false
}

func normalizeAlias(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
