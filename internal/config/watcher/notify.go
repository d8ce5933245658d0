package watcher

import (
	"sort"
	"strings"
	"sync"
)

// ChangeType represents the type of configuration change.
type ChangeType int

const (
	// ChangeAdd indicates a path that did not exist before the reload.
	ChangeAdd ChangeType = iota

	// ChangeModify indicates a value that differs after the reload.
	ChangeModify

	// ChangeRemove indicates a path that no longer exists.
	ChangeRemove

	// ChangeReload is sent once after every successful reload.
	ChangeReload

	// ChangeInvalid is sent when the reloaded configuration fails. The
	// previous configuration stays current.
	ChangeInvalid
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeAdd:
		return "add"
	case ChangeModify:
		return "modify"
	case ChangeRemove:
		return "remove"
	case ChangeReload:
		return "reload"
	case ChangeInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Change represents a configuration change event.
type Change struct {
	// Path is the dot-separated path of the changed value.
	// Empty for reload and invalid events.
	Path string

	// Type is the type of change.
	Type ChangeType

	// OldValue is the previous value (nil for adds).
	OldValue any

	// NewValue is the new value (nil for removes).
	NewValue any

	// Source is the override file that triggered the reload.
	Source string

	// Err is set for ChangeInvalid.
	Err error
}

// Observer is called when configuration changes occur.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// notifier fans changes out to observers synchronously.
type notifier struct {
	mu sync.RWMutex

	// Observers that receive all changes
	global map[uint64]Observer

	// Observers keyed by the path they subscribed to
	byPath map[string]map[uint64]Observer

	nextID uint64
}

func newNotifier() *notifier {
	return &notifier{
		global: make(map[uint64]Observer),
		byPath: make(map[string]map[uint64]Observer),
	}
}

func (n *notifier) subscribe(path string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	if path == "" {
		n.global[id] = observer
	} else {
		if n.byPath[path] == nil {
			n.byPath[path] = make(map[uint64]Observer)
		}
		n.byPath[path][id] = observer
	}
	return &Subscription{id: id, notifier: n}
}

func (n *notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.global, id)
	for path, observers := range n.byPath {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.byPath, path)
		}
	}
}

// notify delivers a change to global observers and to observers of the
// changed path or any of its parents. Path-less changes reach everyone.
// Observers are called in subscription order, outside the lock.
func (n *notifier) notify(change Change) {
	n.mu.RLock()
	matched := make(map[uint64]Observer)
	for id, obs := range n.global {
		matched[id] = obs
	}
	for path, observers := range n.byPath {
		if change.Path != "" && path != change.Path && !isParentPath(path, change.Path) {
			continue
		}
		for id, obs := range observers {
			matched[id] = obs
		}
	}
	n.mu.RUnlock()

	ids := make([]uint64, 0, len(matched))
	for id := range matched {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		safeCall(matched[id], change)
	}
}

// safeCall keeps a panicking observer from stopping the watcher.
func safeCall(obs Observer, change Change) {
	defer func() {
		_ = recover()
	}()
	obs(change)
}

// isParentPath checks if parent is a parent path of child.
// e.g., "pp" is parent of "pp.width".
func isParentPath(parent, child string) bool {
	return len(parent) < len(child) && strings.HasPrefix(child, parent+".")
}
