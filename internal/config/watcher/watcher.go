// Package watcher reloads the toolkit configuration when its override
// file changes and reports what changed.
//
// The directory holding the override is watched rather than the file
// itself, so the override may be created, replaced by an editor's atomic
// save or removed while the watcher runs. Bursts of events are coalesced
// and the configuration is reloaded once the file has been quiet for the
// debounce interval.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tkutils/toolkit/internal/config"
	"github.com/tkutils/toolkit/internal/config/layer"
	"github.com/tkutils/toolkit/internal/logger"
)

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates a new file was created.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed.
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// LoadFunc produces a configuration. It is called once when the watcher
// starts and again after every change to the override file.
type LoadFunc func() (*config.Config, error)

// Watcher reloads a configuration when its override file changes.
type Watcher struct {
	path     string
	load     LoadFunc
	debounce time.Duration
	log      *logger.Logger
	notifier *notifier

	mu      sync.RWMutex
	current *config.Config
	lastErr error
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the file must be quiet before reloading.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// New creates a watcher for the override file at path.
func New(path string, load LoadFunc, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		load:     load,
		debounce: 100 * time.Millisecond,
		log:      logger.Nop(),
		notifier: newNotifier(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the watched override file.
func (w *Watcher) Path() string {
	return w.path
}

// Current returns the last configuration that loaded successfully and the
// error of the most recent load, if it failed.
func (w *Watcher) Current() (*config.Config, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current, w.lastErr
}

// Subscribe registers an observer for all changes.
func (w *Watcher) Subscribe(observer Observer) *Subscription {
	return w.notifier.subscribe("", observer)
}

// SubscribePath registers an observer for changes at path or below it.
// Reload and invalid events are delivered to every observer.
func (w *Watcher) SubscribePath(path string, observer Observer) *Subscription {
	return w.notifier.subscribe(path, observer)
}

// Run loads the configuration and then reloads it on every change until
// ctx is done. A failing load is reported to observers and does not stop
// the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	w.log.Debug().Str("path", w.path).Msg("watching override")

	w.reload(OpCreate)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	var (
		pending Operation
		queued  bool
	)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			op, relevant := operation(ev.Op)
			if !relevant {
				continue
			}
			if queued {
				pending = coalesce(pending, op)
			} else {
				pending, queued = op, true
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			if queued {
				w.reload(pending)
				queued = false
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("watch error")
		}
	}
}

// reload runs the load function and notifies observers of the outcome.
func (w *Watcher) reload(op Operation) {
	cfg, err := w.load()

	w.mu.Lock()
	prev := w.current
	w.lastErr = err
	if err == nil {
		w.current = cfg
	}
	w.mu.Unlock()

	if err != nil {
		w.log.Warn().Err(err).Str("op", op.String()).Msg("reload failed")
		w.notifier.notify(Change{Type: ChangeInvalid, Source: w.path, Err: err})
		return
	}
	w.log.Debug().Str("op", op.String()).Msg("configuration reloaded")

	if prev != nil {
		for _, change := range diff(prev.Mapping(), cfg.Mapping()) {
			change.Source = w.path
			w.notifier.notify(change)
		}
	}
	w.notifier.notify(Change{Type: ChangeReload, Source: w.path})
}

// diff lists the leaf changes between two configurations: adds, then
// modifications, then removals, each sorted by path.
func diff(old, new layer.Mapping) []Change {
	added, modified, removed := layer.Diff(old, new)
	changes := make([]Change, 0, len(added)+len(modified)+len(removed))

	for _, path := range added {
		v, _ := new.Get(path)
		changes = append(changes, Change{Path: path, Type: ChangeAdd, NewValue: layer.Raw(v)})
	}
	for _, path := range modified {
		o, _ := old.Get(path)
		n, _ := new.Get(path)
		changes = append(changes, Change{Path: path, Type: ChangeModify, OldValue: layer.Raw(o), NewValue: layer.Raw(n)})
	}
	for _, path := range removed {
		v, _ := old.Get(path)
		changes = append(changes, Change{Path: path, Type: ChangeRemove, OldValue: layer.Raw(v)})
	}
	return changes
}

func operation(op fsnotify.Op) (Operation, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	default:
		return 0, false
	}
}

// coalesce merges a new operation into a pending one:
// create + write => create, any + remove => remove, otherwise latest wins.
func coalesce(pending, next Operation) Operation {
	switch next {
	case OpRemove:
		return OpRemove
	case OpWrite:
		if pending == OpCreate {
			return OpCreate
		}
		return OpWrite
	default:
		return next
	}
}
