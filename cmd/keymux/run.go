package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/keymux/keymux/internal/app"
	"github.com/keymux/keymux/internal/config"
	"github.com/keymux/keymux/internal/input"
	"github.com/keymux/keymux/internal/server"
)

// loadConfig loads the config file named by --config, or the XDG one.
// A broken config falls back to defaults so the inspector always comes
// up.
func loadConfig(logger *log.Logger) (*config.UserConfig, string) {
	if configPath != "" {
		userCfg, err := config.LoadFromFile(configPath)
		if err != nil {
			logger.Warn("failed to load config, using defaults", "path", configPath, "err", err)
			return config.DefaultConfig(), configPath
		}
		return userCfg, configPath
	}

	userCfg, err := config.LoadUserConfig()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
		userCfg = config.DefaultConfig()
	}
	path, _ := config.GetConfigPath()
	return userCfg, path
}

func runLocal() error {
	logger := log.Default()
	if debugMode {
		logger.SetLevel(log.DebugLevel)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("keymux needs a terminal; use 'keymux ssh' to serve remote sessions")
	}

	userCfg, path := loadConfig(logger)
	inputCfg, err := config.Compile(userCfg)
	if err != nil {
		return fmt.Errorf("compile config: %w", err)
	}

	if debugMode {
		logger.Debug("configuration", "path", path)
	}

	manager := input.NewManager(inputCfg)
	inspector := app.NewInspector(manager, logger)

	p := tea.NewProgram(
		inspector,
		tea.WithoutSignalHandler(),
	)

	if path != "" {
		watcher, err := config.NewWatcher(path, logger, func(cfg *input.Config) {
			p.Send(app.ReloadMsg{Config: cfg})
		})
		if err != nil {
			logger.Warn("config watching disabled", "err", err)
		} else {
			watcher.Start()
			defer watcher.Close() //nolint:errcheck
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func runSSHServer(sshHost, sshPort, sshKeyPath string) error {
	logger := log.Default()
	if debugMode {
		logger.SetLevel(log.DebugLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		logger.Info("shutting down SSH server...")
		cancel()
	}()

	cfg := &server.SSHServerConfig{
		Host:    sshHost,
		Port:    sshPort,
		KeyPath: sshKeyPath,
		Version: version,
	}
	if err := server.StartSSHServer(ctx, cfg); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}
