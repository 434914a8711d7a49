package events

import (
	"encoding/json"
	"fmt"
)

// EventFactory creates a new zero-value event of a specific type.
type EventFactory func() Event

// Registry maps event types to their factories for deserialization.
type Registry struct {
	factories map[string]EventFactory
}

// NewRegistry creates a new event registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]EventFactory),
	}
}

// Register adds an event type to the registry.
func (r *Registry) Register(eventType string, factory EventFactory) {
	r.factories[eventType] = factory
}

// Unmarshal deserializes a raw event into its concrete type.
func (r *Registry) Unmarshal(raw RawEvent) (Event, error) {
	factory, ok := r.factories[raw.EventType]
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", raw.EventType)
	}

	event := factory()
	if err := json.Unmarshal([]byte(raw.Payload), event); err != nil {
		return nil, fmt.Errorf("unmarshal event payload: %w", err)
	}

	return event, nil
}

// Summarizer is implemented by events that can describe themselves in one line.
type Summarizer interface {
	Summary() string
}

// Summarize decodes raw and returns its one-line description. Unknown or
// undecodable events fall back to their type name.
func (r *Registry) Summarize(raw RawEvent) string {
	e, err := r.Unmarshal(raw)
	if err != nil {
		return raw.EventType
	}
	if s, ok := e.(Summarizer); ok {
		return s.Summary()
	}
	return raw.EventType
}

// DefaultRegistry returns a registry with all standard event types registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(EventMusicJobStarted, func() Event { return &MusicJobStarted{} })
	r.Register(EventMusicJobCompleted, func() Event { return &MusicJobCompleted{} })
	r.Register(EventMusicJobFailed, func() Event { return &MusicJobFailed{} })

	r.Register(EventJobFileWritten, func() Event { return &JobFileWritten{} })

	r.Register(EventPlaylistSynced, func() Event { return &PlaylistSynced{} })
	r.Register(EventPlaylistSyncFailed, func() Event { return &PlaylistSyncFailed{} })

	r.Register(EventLibraryRefreshed, func() Event { return &LibraryRefreshed{} })

	r.Register(EventLoginSucceeded, func() Event { return &LoginAttempt{} })
	r.Register(EventLoginFailed, func() Event { return &LoginAttempt{} })

	return r
}
