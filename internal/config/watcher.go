package config

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/keymux/keymux/internal/input"
)

// Watcher reloads the config file when it changes on disk. A config
// that fails to load or validate is logged and discarded; the previous
// good config stays in effect.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onReload func(*input.Config)
	logger   *log.Logger
	done     chan struct{}
}

// NewWatcher watches path and calls onReload with each successfully
// compiled config. Watching starts with Start.
func NewWatcher(path string, logger *log.Logger, onReload func(*input.Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors typically write a temp file and
	// rename it over the config, which drops a watch on the file
	// itself.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{
		path:     path,
		watcher:  fw,
		onReload: onReload,
		logger:   logger,
		done:     make(chan struct{}),
	}, nil
}

// Start runs the watch loop until Close.
func (w *Watcher) Start() {
	go w.loop()
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	var debounce *time.Timer
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(ReloadDebounce, w.reload)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watch error", "err", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFromFile(w.path)
	if err != nil {
		w.logger.Error("config reload rejected, keeping previous config", "err", err)
		return
	}
	compiled, err := Compile(cfg)
	if err != nil {
		w.logger.Error("config reload rejected, keeping previous config", "err", err)
		return
	}
	w.logger.Info("config reloaded", "path", w.path)
	w.onReload(compiled)
}
