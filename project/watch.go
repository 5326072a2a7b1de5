package project

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a project's configuration when its config file changes on
// disk, bumping the project generation so buffers recompute derived state.
type Watcher struct {
	watcher *fsnotify.Watcher
	store   *Store
	done    chan struct{}

	// OnReload, if set, is called after a config file has been reapplied,
	// with any failures from the reload.
	OnReload func(configPath string, failures []error)
}

// NewWatcher creates a watcher over the given store.
func NewWatcher(store *Store) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{watcher: fw, store: store, done: make(chan struct{})}
	go w.run()
	return w, nil
}

// Watch starts watching a configuration file. The file's directory is
// watched rather than the file itself so editors that replace-on-save keep
// triggering events.
func (w *Watcher) Watch(configPath string) error {
	return w.watcher.Add(filepath.Dir(Key(configPath)))
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload(event.Name)
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) reload(path string) {
	key := Key(path)

	w.store.mu.Lock()
	p, tracked := w.store.projects[key]
	w.store.mu.Unlock()
	if !tracked {
		return
	}

	cfg, failures := LoadConfig(key)
	failures = append(failures, p.Apply(cfg)...)
	p.Refresh()

	if w.OnReload != nil {
		w.OnReload(key, failures)
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
