// Package server hosts the keymux inspector over SSH using wish.
// Each SSH session gets its own engine window, so remote clients can
// poke at a binding setup without sharing state with each other.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	bm "charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"github.com/keymux/keymux/internal/app"
	"github.com/keymux/keymux/internal/config"
	"github.com/keymux/keymux/internal/input"
)

// SSHServerConfig holds the SSH server settings.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string
	Version string
}

// shutdownTimeout bounds how long we wait for sessions to drain.
const shutdownTimeout = 30 * time.Second

// StartSSHServer runs the inspector as an SSH app until ctx is canceled.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	logger := log.Default()

	userCfg, err := config.LoadUserConfig()
	if err != nil {
		logger.Warn("using default configuration", "err", err)
		userCfg = config.DefaultConfig()
	}
	inputCfg, err := config.Compile(userCfg)
	if err != nil {
		return fmt.Errorf("compile config: %w", err)
	}
	manager := input.NewManager(inputCfg)

	keyPath := cfg.KeyPath
	if keyPath == "" {
		keyPath = ".ssh/keymux_ed25519"
	}

	teaHandler := func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		return app.NewInspector(manager, logger), nil
	}

	srv, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bm.Middleware(teaHandler),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("create SSH server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("SSH server listening",
			"host", cfg.Host,
			"port", cfg.Port,
			"version", cfg.Version,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("shutdown SSH server: %w", err)
	}
	return nil
}
