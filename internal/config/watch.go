package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/engine"
)

// #region watcher

// Watcher reloads the calibration file when it changes on disk, so a running
// scoring daemon picks up recalibrated thresholds without a restart. A reload
// that fails validation is dropped and reported; the previous calibration
// stays active.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	onReload func(engine.Config)
	onError  func(error)
	debounce time.Duration
	done     chan struct{}
}

// NewWatcher watches the calibration file at path. onReload receives each
// successfully loaded config; onError receives load failures and may be nil.
func NewWatcher(path string, onReload func(engine.Config), onError func(error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory, not the file: editors replace files on save,
	// which drops a direct file watch.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		path:     path,
		fsw:      fsw,
		onReload: onReload,
		onError:  onError,
		debounce: 250 * time.Millisecond,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

// #endregion watcher

// #region loop

func (w *Watcher) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Debounce rapid saves.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			cfg, err := Load(w.path)
			if err != nil {
				if w.onError != nil {
					w.onError(err)
				}
				continue
			}
			w.onReload(cfg)

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// #endregion loop
