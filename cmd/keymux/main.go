// Package main implements keymux, a configurable input resolution
// engine for terminal applications. It resolves physical, raw and
// mapped key identities against layered key tables, leader chords,
// dead-key composition and multi-click mouse gestures, and ships an
// interactive inspector for trying a configuration live.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode  bool
	configPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "keymux",
		Short: "Input resolution engine and inspector",
		Long: `keymux - input resolution engine

Resolves keyboard and mouse input against configurable key tables,
leader keys, dead-key composition and click streaks, and shows every
decision live in an interactive inspector.`,
		Example: `  # Run the inspector
  keymux

  # Run with debug logging
  keymux --debug

  # Use an explicit config file
  keymux --config ./keymux.toml

  # Run as SSH server
  keymux ssh --port 2222

  # Print the configuration path
  keymux config path

  # List all actions and bindings
  keymux keybinds list`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: XDG config directory)")

	var sshPort, sshHost, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Run the inspector as an SSH server",
		Long: `Run the keymux inspector as an SSH server

Allows remote connections to the inspector via SSH. The server will
generate a host key automatically if not specified. Every connection
gets its own engine window, so clients do not share table stacks or
pending leaders.`,
		Example: `  # Start SSH server on default port
  keymux ssh

  # Start on custom port
  keymux ssh --port 2222

  # Specify custom host key
  keymux ssh --key-path /path/to/host_key`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSSHServer(sshHost, sshPort, sshKeyPath)
		},
	}

	sshCmd.Flags().StringVar(&sshPort, "port", "2222", "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "localhost", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage keymux configuration",
		Long:  `Manage the keymux configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the keymux configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the keymux configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the keymux configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults()
		},
	}

	configValidateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a configuration file",
		Long: `Check a keymux configuration file for errors without running

Validates key specs, modifier expressions, action names, key table
references and mouse events. Defaults to the active config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return validateConfigFile(path)
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd, configValidateCmd)

	var keybindsFilter string
	var keybindsTable string

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
		Long:    `View and inspect the keymux keybinding configuration`,
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long: `Display all configured key bindings, key tables and mouse bindings

Use --filter to fuzzy-match on key, action or table name.`,
		Example: `  # List everything
  keymux keybinds list

  # Fuzzy filter
  keymux keybinds list --filter copy

  # Only one key table
  keymux keybinds list --table resize_pane`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings(keybindsFilter, keybindsTable)
		},
	}
	keybindsListCmd.Flags().StringVarP(&keybindsFilter, "filter", "f", "", "Fuzzy filter bindings by key, action or table")
	keybindsListCmd.Flags().StringVarP(&keybindsTable, "table", "t", "", "Show only bindings of one key table")

	var actionsFilter string
	actionsCmd := &cobra.Command{
		Use:   "actions",
		Short: "List all available actions",
		Long: `Display every action name that can appear in a binding

Use --filter to fuzzy-match on the action name or description.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listActions(actionsFilter)
		},
	}
	actionsCmd.Flags().StringVarP(&actionsFilter, "filter", "f", "", "Fuzzy filter actions by name or description")

	keybindsCmd.AddCommand(keybindsListCmd, actionsCmd)

	rootCmd.AddCommand(sshCmd, configCmd, keybindsCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
