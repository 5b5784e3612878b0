package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watcher reports changes to the menu files in a directory.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches dir for localisation and skin changes.
func NewWatcher(dir string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isMenuFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isMenuFile(path string) bool {
	switch filepath.Base(path) {
	case LocalisationFile, SkinFile:
		return true
	}
	return false
}

// Reloader keeps the latest menu config and reloads it when the watcher
// reports a change. Poll is meant to be called once per frame.
type Reloader struct {
	loader  *Loader
	watcher *Watcher
	onError func(error)
}

// NewReloader creates a reloader. onError may be nil.
func NewReloader(loader *Loader, watcher *Watcher, onError func(error)) *Reloader {
	if onError == nil {
		onError = func(error) {}
	}
	return &Reloader{loader: loader, watcher: watcher, onError: onError}
}

// Poll drains pending change events without blocking and returns a freshly
// loaded config if anything changed. A failed reload keeps the old config.
func (r *Reloader) Poll() (*MenuConfig, bool) {
	changed := false
	for {
		select {
		case _, ok := <-r.watcher.Events:
			if !ok {
				return r.reload(changed)
			}
			changed = true
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return r.reload(changed)
			}
			r.onError(err)
		default:
			return r.reload(changed)
		}
	}
}

func (r *Reloader) reload(changed bool) (*MenuConfig, bool) {
	if !changed {
		return nil, false
	}
	cfg, err := r.loader.LoadAll()
	if err != nil {
		r.onError(err)
		return nil, false
	}
	return cfg, true
}
