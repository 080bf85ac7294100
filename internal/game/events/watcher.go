package events

import (
	"sync"

	"github.com/bombbusters/bombbusters-server-go/internal/game/model"
)

// Watcher observes events and tracks a condition across them.
type Watcher interface {
	// Watch is called for every published event.
	Watch(event Event)
	// Reset clears the tracked state.
	Reset()
	// Key identifies the watcher within a registry.
	Key() string
}

// CutsWatcher counts cut blue wires per value for one game. Equipment
// unlock progress is read from it.
type CutsWatcher struct {
	mu     sync.RWMutex
	gameID string
	cuts   map[int]int
}

// NewCutsWatcher creates a watcher for gameID.
func NewCutsWatcher(gameID string) *CutsWatcher {
	return &CutsWatcher{
		gameID: gameID,
		cuts:   make(map[int]int),
	}
}

// Key implements Watcher.
func (w *CutsWatcher) Key() string {
	return w.gameID + ":CutsWatcher"
}

// Watch implements Watcher.
func (w *CutsWatcher) Watch(event Event) {
	if event.Type != EventWireCut || event.GameID != w.gameID {
		return
	}
	if event.Color != "" && event.Color != string(model.WireBlue) {
		return
	}
	w.mu.Lock()
	w.cuts[event.Value]++
	w.mu.Unlock()
}

// Reset implements Watcher.
func (w *CutsWatcher) Reset() {
	w.mu.Lock()
	w.cuts = make(map[int]int)
	w.mu.Unlock()
}

// Cuts returns how many blue wires of value were cut.
func (w *CutsWatcher) Cuts(value int) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cuts[value]
}

// Registry keeps watchers by key and forwards events to them.
type Registry struct {
	mu       sync.RWMutex
	watchers map[string]Watcher
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{watchers: make(map[string]Watcher)}
}

// Add registers w, replacing any watcher with the same key.
func (r *Registry) Add(w Watcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watchers[w.Key()] = w
}

// Remove drops the watcher with key.
func (r *Registry) Remove(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.watchers, key)
}

// Get returns the watcher with key, or nil.
func (r *Registry) Get(key string) Watcher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.watchers[key]
}

// Notify forwards event to every watcher. It has the Listener signature so
// a registry can subscribe to a Bus directly.
func (r *Registry) Notify(event Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.watchers {
		w.Watch(event)
	}
}
