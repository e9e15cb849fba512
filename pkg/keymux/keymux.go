// Package keymux provides a reusable input resolution engine that can
// be embedded in Bubble Tea applications or any other terminal
// frontend.
//
// The engine resolves keyboard and mouse events against configurable
// key tables with leader keys, one-shot table activations, dead-key
// composition and multi-click streaks, and tells the caller for every
// event whether to dispatch an action, forward the event to the
// application, or swallow it.
//
// # Basic Usage
//
// Create an engine from the user's config file and feed it events:
//
//	engine, err := keymux.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, res := range engine.HandleKey(keymux.KeyFromTea(msg)) {
//		switch res.Decision {
//		case keymux.DecisionAction:
//			dispatch(res.Assignment)
//		case keymux.DecisionForward:
//			passThrough(res.Event)
//		}
//	}
//
// # Multiple Windows
//
// Applications with several input targets share one Manager so a
// config reload reaches every window:
//
//	manager := keymux.NewManager(cfg)
//	id, engine := manager.NewWindow()
//
// # Timers
//
// Leader keys and key table activations expire on deadlines that the
// engine only checks when asked. Hosts with an event loop should
// schedule a wakeup for NextDeadline and call Tick; see the inspector
// in this repository for a Bubble Tea example.
package keymux

import (
	tea "charm.land/bubbletea/v2"

	"github.com/keymux/keymux/internal/config"
	"github.com/keymux/keymux/internal/driver"
	"github.com/keymux/keymux/internal/input"
)

// Engine resolves input events for a single window.
type Engine = input.Engine

// Manager owns the engines of all windows and fans config reloads out
// to them.
type Manager = input.Manager

// Config is a compiled engine configuration.
type Config = input.Config

// UserConfig is the TOML-level configuration before compilation.
type UserConfig = config.UserConfig

// KeyEvent is a keyboard event carrying all three key identities.
type KeyEvent = input.KeyEvent

// Result is the engine's verdict on one event.
type Result = input.Result

// Assignment names the action a binding dispatches.
type Assignment = input.Assignment

// Gesture is a recognized mouse gesture with its click streak.
type Gesture = input.Gesture

// Cell is a character cell position.
type Cell = input.Cell

// Mod is a set of key modifiers.
type Mod = input.Mod

// Status is a snapshot of engine state for status bars.
type Status = input.Status

// Decision constants.
const (
	// DecisionAction means a binding matched; dispatch res.Assignment.
	DecisionAction = input.DecisionAction
	// DecisionForward means no binding matched; deliver the event to
	// the application.
	DecisionForward = input.DecisionForward
	// DecisionSwallow means the event was consumed, for example by a
	// pending leader.
	DecisionSwallow = input.DecisionSwallow
)

// Modifier constants.
const (
	ModNone   = input.ModNone
	ModCtrl   = input.ModCtrl
	ModShift  = input.ModShift
	ModAlt    = input.ModAlt
	ModSuper  = input.ModSuper
	ModLeader = input.ModLeader
)

// Options configures a keymux engine.
type Options struct {
	// ConfigFile is an explicit config file path. Leave empty to use
	// the XDG config directory.
	ConfigFile string

	// UserConfig is a custom configuration. If set, no file is read.
	UserConfig *config.UserConfig
}

// Option is a functional option for configuring keymux.
type Option func(*Options)

// WithConfigFile loads configuration from an explicit path.
func WithConfigFile(path string) Option {
	return func(o *Options) {
		o.ConfigFile = path
	}
}

// WithUserConfig uses a config built in code instead of a file.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// New creates an engine for a single window, loading and compiling the
// configuration. This is the main entry point for using keymux as a
// library.
func New(opts ...Option) (*Engine, error) {
	cfg, err := compileOptions(opts)
	if err != nil {
		return nil, err
	}
	return input.NewEngine(cfg), nil
}

// NewManager creates a manager from a compiled config. Use Compile to
// turn a UserConfig into one.
func NewManager(cfg *Config) *Manager {
	return input.NewManager(cfg)
}

// Compile turns a TOML-level config into the compiled form engines
// consume.
func Compile(cfg *UserConfig) (*Config, error) {
	return config.Compile(cfg)
}

// DefaultConfig returns the default TOML-level configuration.
func DefaultConfig() *UserConfig {
	return config.DefaultConfig()
}

// LoadUserConfig loads the user's configuration file, creating a
// default one on first run.
func LoadUserConfig() (*UserConfig, error) {
	return config.LoadUserConfig()
}

// GetConfigPath returns the path to the configuration file.
func GetConfigPath() (string, error) {
	return config.GetConfigPath()
}

func compileOptions(opts []Option) (*Config, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	userCfg := options.UserConfig
	if userCfg == nil {
		var err error
		if options.ConfigFile != "" {
			userCfg, err = config.LoadFromFile(options.ConfigFile)
		} else {
			userCfg, err = config.LoadUserConfig()
		}
		if err != nil {
			return nil, err
		}
	}
	return config.Compile(userCfg)
}

// KeyFromTea converts a Bubble Tea key press into a KeyEvent.
func KeyFromTea(msg tea.KeyPressMsg) KeyEvent {
	return driver.Key(msg)
}

// MouseFromTea converts a Bubble Tea mouse event into the engine's
// button, cell and modifier representation.
func MouseFromTea(m tea.Mouse) (input.MouseButton, Cell, Mod) {
	return driver.Mouse(m)
}
