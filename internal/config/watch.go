package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses the burst of events an editor save produces.
const reloadDebounce = 100 * time.Millisecond

// Live is a HeistConfig that can be swapped while readers use it.
type Live struct {
	cur atomic.Pointer[HeistConfig]
}

// NewLive wraps an initial config.
func NewLive(cfg HeistConfig) *Live {
	l := &Live{}
	l.Set(cfg)
	return l
}

// Get returns the current config.
func (l *Live) Get() HeistConfig {
	return *l.cur.Load()
}

// Set replaces the current config.
func (l *Live) Set(cfg HeistConfig) {
	l.cur.Store(&cfg)
}

// ReloadFunc is told about every reload attempt. On error the previous
// config stays in place and cfg is that previous config.
type ReloadFunc func(cfg HeistConfig, err error)

// Watcher reloads one config file into a Live when it changes.
type Watcher struct {
	path     string
	live     *Live
	fs       *fsnotify.Watcher
	onReload ReloadFunc
}

// WatchFile starts watching path. The directory is watched rather than the
// file so that editors which save by rename are still seen. Call Run to
// process changes.
func (l *Live) WatchFile(path string, onReload ReloadFunc) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config watch: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watch: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("config watch %s: %w", filepath.Dir(abs), err)
	}

	if onReload == nil {
		onReload = func(HeistConfig, error) {}
	}
	return &Watcher{path: abs, live: l, fs: fw, onReload: onReload}, nil
}

// Run processes file events until ctx is done, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.onReload(w.live.Get(), fmt.Errorf("config watch: %w", err))

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFile(w.path)
	if err != nil {
		w.onReload(w.live.Get(), err)
		return
	}
	w.live.Set(cfg)
	w.onReload(cfg, nil)
}
