package config

import "time"

// ============================================================================
// CONFIG FILE
// ============================================================================

const (
	// ConfigFileName is the path of the config file under the XDG
	// config directory.
	ConfigFileName = "keymux/config.toml"
)

// ============================================================================
// INPUT DEFAULTS
// ============================================================================

const (
	// DefaultKeyMapPreference selects which identity unprefixed key
	// specs compile to.
	DefaultKeyMapPreference = "mapped"

	// DefaultClickThresholdMS caps the gap between presses of a click
	// streak.
	DefaultClickThresholdMS = 500

	// DefaultLeaderTimeoutMS bounds a pending leader activation.
	DefaultLeaderTimeoutMS = 1000
)

// ============================================================================
// RELOAD
// ============================================================================

const (
	// ReloadDebounce coalesces the burst of filesystem events editors
	// emit while saving.
	ReloadDebounce = 100 * time.Millisecond
)
