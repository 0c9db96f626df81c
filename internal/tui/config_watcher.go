package tui

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/hay-kot/a4s/internal/core/config"
)

const configDebounce = 150 * time.Millisecond

// configChangedMsg is sent when the config file changes on disk.
type configChangedMsg struct {
	cfg *config.Config
	err error
}

// ConfigWatcher reloads the config file when it changes. The parent
// directory is watched because editors commonly replace the file by rename.
type ConfigWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	dataDir  string
	debounce time.Duration
}

// NewConfigWatcher starts watching configPath.
func NewConfigWatcher(configPath, dataDir string) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return &ConfigWatcher{
		watcher:  watcher,
		path:     filepath.Clean(configPath),
		dataDir:  dataDir,
		debounce: configDebounce,
	}, nil
}

// Start returns a command that blocks until the config file changes, then
// reloads and validates it. Call Start again after each message.
func (w *ConfigWatcher) Start() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}

				time.Sleep(w.debounce)
				w.drain()

				cfg, err := config.Load(w.path, w.dataDir)
				return configChangedMsg{cfg: cfg, err: err}

			case _, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

// drain discards events that arrived during the debounce window.
func (w *ConfigWatcher) drain() {
	for {
		select {
		case <-w.watcher.Events:
		default:
			return
		}
	}
}

// Close stops the watcher. Pending Start commands return nil.
func (w *ConfigWatcher) Close() error {
	return w.watcher.Close()
}
