// Package events provides the synchronous game event bus and the watchers
// that track state across events.
package events

import (
	"sync"
	"time"
)

// EventType indicates the category of a game event.
type EventType string

const (
	// EventGameCreated is published once when a session starts a game.
	EventGameCreated EventType = "GAME_CREATED"
	// EventWireCut is published when a wire tile is cut.
	EventWireCut EventType = "WIRE_CUT"
	// EventWireMoved is published when a tile changes hands.
	EventWireMoved EventType = "WIRE_MOVED"
)

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type     EventType
	GameID   string
	PlayerID string // Player the event happened to
	TargetID string // Receiving player for moves
	TileID   string
	Value    int // Wire value involved, if any
	Color    string
	Time     time.Time
}

// NewEvent creates an event stamped with the current time.
func NewEvent(eventType EventType, gameID, playerID string) Event {
	return Event{
		Type:     eventType,
		GameID:   gameID,
		PlayerID: playerID,
		Time:     time.Now(),
	}
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

type typedListener struct {
	handle    int
	eventType EventType
	callback  Listener
}

// Bus provides a synchronous publish/subscribe implementation with type filtering.
type Bus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]typedListener
	nextHandle     int
}

// NewBus constructs a fresh event bus.
func NewBus() *Bus {
	return &Bus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]typedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *Bus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a single event type.
func (bus *Bus) SubscribeTyped(eventType EventType, callback Listener) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], typedListener{
		handle:    handle,
		eventType: eventType,
		callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by handle.
func (bus *Bus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
// Listeners must not subscribe or unsubscribe from inside the callback.
func (bus *Bus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, listener := range bus.listeners {
		listener(event)
	}
	for _, listener := range bus.typedListeners[event.Type] {
		listener.callback(event)
	}
}
