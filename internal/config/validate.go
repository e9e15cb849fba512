package config

import (
	"fmt"

	"github.com/keymux/keymux/internal/action"
	"github.com/keymux/keymux/internal/input"
)

// ValidationError describes one problem found in a config.
type ValidationError struct {
	Field   string // config section, e.g. "keys" or "key_tables.copy_mode"
	Key     string // offending entry
	Message string
}

// ValidationResult collects errors and warnings from a validation
// pass.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors reports whether validation failed.
func (r *ValidationResult) HasErrors() bool { return len(r.Errors) > 0 }

// HasWarnings reports whether validation produced warnings.
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

func (r *ValidationResult) addError(field, key, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Key: key, Message: message})
}

func (r *ValidationResult) addWarning(field, key, message string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Key: key, Message: message})
}

// ValidateConfig checks every binding, alias and reference in cfg.
// Unknown actions, unparseable keys or modifiers, and activations of
// undefined tables are errors; suspicious but workable entries are
// warnings.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	result := &ValidationResult{}

	aliases, aliasErrs := compileAliases(cfg.Input.ModifierAliases)
	for _, e := range aliasErrs {
		result.addError("input.modifier_aliases", e.Key, e.Message)
	}

	switch cfg.Input.KeyMapPreference {
	case "mapped", "physical":
	default:
		result.addError("input", "key_map_preference",
			fmt.Sprintf("invalid value %q (use mapped or physical)", cfg.Input.KeyMapPreference))
	}

	for diacritic, combos := range cfg.Input.Compositions {
		if len([]rune(diacritic)) != 1 {
			result.addError("input.compositions", diacritic, "dead key must be a single character")
		}
		for from, to := range combos {
			if len([]rune(from)) != 1 || len([]rune(to)) != 1 {
				result.addError("input.compositions", diacritic+"."+from,
					"composition entries map one character to one character")
			}
		}
	}

	validateBindings(result, "keys", cfg.Keys, cfg, aliases)
	for name, bindings := range cfg.KeyTables {
		if name == "" {
			result.addError("key_tables", name, "table name cannot be empty")
			continue
		}
		validateBindings(result, "key_tables."+name, bindings, cfg, aliases)
	}

	if cfg.Leader != nil {
		if _, err := parseKeySpec(cfg.Leader.Key, cfg.Input.KeyMapPreference); err != nil {
			result.addError("leader", cfg.Leader.Key, err.Error())
		}
		if _, ok := input.ParseMods(cfg.Leader.Mods, aliases); !ok {
			result.addError("leader", cfg.Leader.Mods, "unrecognized modifier")
		}
		if cfg.Leader.TimeoutMS < 0 {
			result.addError("leader", "timeout_milliseconds", "timeout cannot be negative")
		}
	}

	for i, mb := range cfg.Mouse {
		field := fmt.Sprintf("mouse[%d]", i)
		if _, ok := parseGestureKind(mb.Event); !ok {
			result.addError(field, mb.Event, "event must be down, drag or up")
		}
		if _, ok := parseMouseButton(mb.Button); !ok {
			result.addError(field, mb.Button, "button must be left, middle or right")
		}
		if mb.Streak < 1 {
			result.addError(field, fmt.Sprintf("streak=%d", mb.Streak), "streak must be at least 1")
		}
		if _, ok := input.ParseMods(mb.Mods, aliases); !ok {
			result.addError(field, mb.Mods, "unrecognized modifier")
		}
		if !action.Known(mb.Action) {
			result.addError(field, mb.Action, "unknown action")
		}
	}

	return result
}

func validateBindings(result *ValidationResult, field string, bindings []KeyBindingConfig, cfg *UserConfig, aliases map[string]input.Mod) {
	for _, kb := range bindings {
		if _, err := parseKeySpec(kb.Key, cfg.Input.KeyMapPreference); err != nil {
			result.addError(field, kb.Key, err.Error())
		}
		mods, ok := input.ParseMods(kb.Mods, aliases)
		if !ok {
			result.addError(field, kb.Mods, "unrecognized modifier")
		}
		if !action.Known(kb.Action) {
			result.addError(field, kb.Key, fmt.Sprintf("unknown action %q", kb.Action))
		}
		if kb.Action == input.ActionActivateKeyTable {
			if kb.Table == "" {
				result.addError(field, kb.Key, "ActivateKeyTable needs a table")
			} else if _, defined := cfg.KeyTables[kb.Table]; !defined {
				result.addError(field, kb.Key, fmt.Sprintf("table %q is not defined", kb.Table))
			}
			if kb.TimeoutMS < 0 {
				result.addError(field, kb.Key, "timeout_milliseconds cannot be negative")
			}
		} else if kb.Table != "" {
			result.addWarning(field, kb.Key, "table is ignored unless action is ActivateKeyTable")
		}
		if ok && mods.Has(input.ModLeader) && cfg.Leader == nil {
			result.addWarning(field, kb.Key, "LEADER binding without a [leader] section never fires")
		}
	}
}

type aliasError struct {
	Key     string
	Message string
}

// compileAliases resolves the user alias table to modifier bits.
// Canonical targets must themselves be builtin modifier names.
func compileAliases(raw map[string]string) (map[string]input.Mod, []aliasError) {
	if len(raw) == 0 {
		return nil, nil
	}
	aliases := make(map[string]input.Mod, len(raw))
	var errs []aliasError
	for alias, canonical := range raw {
		m, ok := input.ParseMod(canonical, nil)
		if !ok {
			errs = append(errs, aliasError{Key: alias, Message: fmt.Sprintf("unknown modifier %q", canonical)})
			continue
		}
		aliases[normalizeAlias(alias)] = m
	}
	return aliases, errs
}
