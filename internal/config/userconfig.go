// Package config loads, validates and compiles the keymux TOML
// configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// UserConfig represents the user's configuration file.
type UserConfig struct {
	Input     InputConfig                   `toml:"input"`
	Keys      []KeyBindingConfig            `toml:"keys"`
	Leader    *LeaderConfig                 `toml:"leader"`
	KeyTables map[string][]KeyBindingConfig `toml:"key_tables"`
	Mouse     []MouseBindingConfig          `toml:"mouse"`
}

// InputConfig holds input behavior settings.
type InputConfig struct {
	KeyMapPreference string `toml:"key_map_preference"` // Identity unprefixed key specs compile to: mapped, physical (default: mapped)
	UseDeadKeys      *bool  `toml:"use_dead_keys"`      // Enable dead key composition (default: true)
	UseIME           *bool  `toml:"use_ime"`            // Hand composition to the platform input method (default: false)
	ClickThresholdMS int    `toml:"click_threshold_ms"` // Longest gap in a click streak, milliseconds (default: 500)

	// ModifierAliases maps extra spellings to canonical modifiers,
	// e.g. mod4 = "super".
	ModifierAliases map[string]string `toml:"modifier_aliases"`

	// Compositions extends the dead key table: compositions."^".e = "ê"
	Compositions map[string]map[string]string `toml:"compositions"`
}

// KeyBindingConfig is one key binding entry. Key accepts a character
// ("k"), a key name ("enter"), or a prefixed identity ("phys:a",
// "raw:133", "mapped:q").
type KeyBindingConfig struct {
	Key    string `toml:"key"`
	Mods   string `toml:"mods"`
	Action string `toml:"action"`
	Arg    string `toml:"arg"`

	// The remaining fields apply when action = "ActivateKeyTable".
	Table           string `toml:"table"`
	OneShot         *bool  `toml:"one_shot"`             // default: true
	TimeoutMS       int    `toml:"timeout_milliseconds"` // 0 disables the timeout
	ReplaceCurrent  bool   `toml:"replace_current"`
	UntilUnknown    bool   `toml:"until_unknown"`
	PreventFallback bool   `toml:"prevent_fallback"`
}

// LeaderConfig configures the leader key.
type LeaderConfig struct {
	Key       string `toml:"key"`
	Mods      string `toml:"mods"`
	TimeoutMS int    `toml:"timeout_milliseconds"` // default: 1000
}

// MouseBindingConfig is one mouse binding entry.
type MouseBindingConfig struct {
	Event  string `toml:"event"`  // down, drag, up
	Streak int    `toml:"streak"` // exact click streak, default 1
	Button string `toml:"button"` // left, middle, right
	Mods   string `toml:"mods"`
	Action string `toml:"action"`
	Arg    string `toml:"arg"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Input: InputConfig{
			KeyMapPreference: DefaultKeyMapPreference,
			ClickThresholdMS: DefaultClickThresholdMS,
		},
		Keys: []KeyBindingConfig{
			{Key: "c", Mods: "CTRL|SHIFT", Action: "CopySelection"},
			{Key: "v", Mods: "CTRL|SHIFT", Action: "PasteClipboard"},
			{Key: "x", Mods: "CTRL|SHIFT", Action: "ActivateCopyMode"},
			{Key: "t", Mods: "CTRL|SHIFT", Action: "SpawnTab"},
			{Key: "w", Mods: "CTRL|SHIFT", Action: "CloseCurrentTab"},
			{Key: "tab", Mods: "CTRL", Action: "ActivateTabRelative", Arg: "1"},
			{Key: "tab", Mods: "CTRL|SHIFT", Action: "ActivateTabRelative", Arg: "-1"},
			{Key: "r", Mods: "CTRL|SHIFT", Action: "ReloadConfiguration"},
			{Key: "=", Mods: "CTRL", Action: "IncreaseFontSize"},
			{Key: "-", Mods: "CTRL", Action: "DecreaseFontSize"},
			{Key: "0", Mods: "CTRL", Action: "ResetFontSize"},
			{Key: "pageup", Mods: "SHIFT", Action: "ScrollByPage", Arg: "-1"},
			{Key: "pagedown", Mods: "SHIFT", Action: "ScrollByPage", Arg: "1"},
		},
		Mouse: []MouseBindingConfig{
			{Event: "down", Streak: 1, Button: "left", Action: "SelectTextAtMouseCursor"},
			{Event: "down", Streak: 2, Button: "left", Action: "SelectWord"},
			{Event: "down", Streak: 3, Button: "left", Action: "SelectLine"},
			{Event: "drag", Streak: 1, Button: "left", Action: "ExtendSelectionToMouseCursor"},
			{Event: "up", Streak: 1, Button: "left", Action: "CompleteSelection"},
			{Event: "up", Streak: 1, Button: "left", Mods: "CTRL", Action: "OpenLinkAtMouseCursor"},
		},
	}
}

// LoadUserConfig loads the config file from the XDG config directory,
// creating a default one on first run. Missing settings are filled
// with defaults; a config that fails validation is rejected.
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(ConfigFileName)
	if err != nil {
		// Config doesn't exist, create default
		return createDefaultConfig()
	}
	return LoadFromFile(configPath)
}

// LoadFromFile loads and validates a config file at an explicit path.
func LoadFromFile(path string) (*UserConfig, error) {
	// #nosec G304 - path comes from XDG search or an explicit user flag
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	fillMissing(&cfg, DefaultConfig())

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		for _, verr := range validation.Errors {
			fmt.Fprintf(os.Stderr, "Config error in [%s]: %s - %s\n", verr.Field, verr.Key, verr.Message)
		}
		return nil, fmt.Errorf("configuration has %d error(s)", len(validation.Errors))
	}
	for _, warn := range validation.Warnings {
		fmt.Fprintf(os.Stderr, "Config warning in [%s]: %s - %s\n", warn.Field, warn.Key, warn.Message)
	}

	return &cfg, nil
}

// fillMissing fills unset scalar settings with defaults. Binding lists
// are taken verbatim: an explicit empty [keys] means no bindings, only
// an absent file gets the default set.
func fillMissing(cfg, defaults *UserConfig) {
	if cfg.Input.KeyMapPreference == "" {
		cfg.Input.KeyMapPreference = defaults.Input.KeyMapPreference
	}
	if cfg.Input.ClickThresholdMS == 0 {
		cfg.Input.ClickThresholdMS = defaults.Input.ClickThresholdMS
	}
	if cfg.Leader != nil && cfg.Leader.TimeoutMS == 0 {
		cfg.Leader.TimeoutMS = DefaultLeaderTimeoutMS
	}
	for i := range cfg.Mouse {
		if cfg.Mouse[i].Streak == 0 {
			cfg.Mouse[i].Streak = 1
		}
		if cfg.Mouse[i].Button == "" {
			cfg.Mouse[i].Button = "left"
		}
	}
}

// createDefaultConfig writes the default config file and returns the
// defaults.
func createDefaultConfig() (*UserConfig, error) {
	cfg := DefaultConfig()

	configPath, err := xdg.ConfigFile(ConfigFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# keymux Configuration File\n")
	sb.WriteString("# This file customizes key bindings, key tables and mouse bindings\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n")
	sb.WriteString("# For the list of actions, run: keymux keybinds list\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# INPUT SETTINGS\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# key_map_preference: identity a bare key spec such as \"k\" binds to\n")
	sb.WriteString("#   Options: mapped (the character the layout produces), physical (the\n")
	sb.WriteString("#            position on a standardized layout)\n")
	sb.WriteString("#   Explicit prefixes always work: phys:a, raw:133, mapped:q\n")
	sb.WriteString("#   Default: mapped\n")
	sb.WriteString("#\n")
	sb.WriteString("# use_dead_keys: compose accents from dead keys (^ then e gives ê)\n")
	sb.WriteString("#   Default: true\n")
	sb.WriteString("#\n")
	sb.WriteString("# click_threshold_ms: longest gap between clicks of a double/triple click\n")
	sb.WriteString("#   Default: 500\n")
	sb.WriteString("# ============================================================================\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# LEADER KEY\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# Uncomment to enable a tmux-style leader. While the leader is pending,\n")
	sb.WriteString("# bindings with mods = \"LEADER\" match; unbound keys are swallowed.\n")
	sb.WriteString("#\n")
	sb.WriteString("# [leader]\n")
	sb.WriteString("# key = \"a\"\n")
	sb.WriteString("# mods = \"CTRL\"\n")
	sb.WriteString("# timeout_milliseconds = 1000\n")
	sb.WriteString("# ============================================================================\n\n")

	sb.Write(data)

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfg, nil
}

// GetConfigPath returns the config file path, creating the parent
// directory if needed.
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(ConfigFileName)
	if err != nil {
		return xdg.ConfigFile(ConfigFileName)
	}
	return path, nil
}
