package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a run file whenever it changes on disk and delivers each
// valid result on Updates. Invalid files are logged and skipped.
type Watcher struct {
	path    string
	log     *zap.Logger
	watcher *fsnotify.Watcher
	updates chan *Run
	done    chan struct{}
	delay   time.Duration
}

// NewWatcher starts watching path. The containing directory is watched so
// editors that replace the file on save are followed.
func NewWatcher(path string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	w := &Watcher{
		path:    abs,
		log:     log,
		watcher: fsw,
		updates: make(chan *Run, 1),
		done:    make(chan struct{}),
		delay:   250 * time.Millisecond,
	}
	go w.loop()
	log.Info("watching run file", zap.String("path", abs))
	return w, nil
}

// Updates delivers reloaded run files. Only the newest pending update is
// kept. The channel is closed after Close.
func (w *Watcher) Updates() <-chan *Run { return w.updates }

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	defer close(w.updates)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("file watcher error", zap.Error(err))

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) reload() {
	r, err := Load(w.path)
	if err == nil {
		err = r.Validate()
	}
	if err != nil {
		w.log.Error("ignoring invalid run file", zap.String("path", w.path), zap.Error(err))
		return
	}
	select {
	case <-w.updates:
	default:
	}
	w.updates <- r
	w.log.Info("run file reloaded", zap.String("generator", r.Generator))
}
