package events

import (
	"context"
	"log/slog"
	"sync"
)

// subscription is one subscriber channel and the events it wants.
type subscription struct {
	ch         chan Event
	eventType  string // empty matches every type
	entityType string // empty matches every entity
	entityID   string
}

func (s *subscription) matches(e Event) bool {
	if s.eventType != "" && s.eventType != e.EventType() {
		return false
	}
	if s.entityType != "" && (s.entityType != e.EntityType() || s.entityID != e.EntityID()) {
		return false
	}
	return true
}

// Bus fans events out to in-process subscribers and records them in the
// event log.
type Bus struct {
	mu     sync.RWMutex
	subs   []*subscription
	log    *EventLog // nil disables persistence
	logger *slog.Logger
	closed bool
}

// NewBus creates a bus. log may be nil.
func NewBus(log *EventLog, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{log: log, logger: logger}
}

// Publish records e and delivers it to every matching subscriber.
// Delivery never blocks: a subscriber whose buffer is full misses the event.
// Persistence failures are logged, not returned.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return nil
	}
	var targets []chan Event
	for _, s := range b.subs {
		if s.matches(e) {
			targets = append(targets, s.ch)
		}
	}
	b.mu.RUnlock()

	if b.log != nil {
		if _, err := b.log.Append(ctx, e); err != nil {
			b.logger.Error("event not persisted", "type", e.EventType(), "error", err)
		}
	}

	for _, ch := range targets {
		select {
		case ch <- e:
		default:
			b.logger.Warn("subscriber full, event dropped",
				"type", e.EventType(),
				"entity_type", e.EntityType(),
				"entity_id", e.EntityID())
		}
	}
	return nil
}

// Subscribe returns a channel receiving events of one type.
func (b *Bus) Subscribe(eventType string, bufferSize int) <-chan Event {
	return b.add(&subscription{eventType: eventType}, bufferSize)
}

// SubscribeAll returns a channel receiving every event.
func (b *Bus) SubscribeAll(bufferSize int) <-chan Event {
	return b.add(&subscription{}, bufferSize)
}

// SubscribeEntity returns a channel receiving events about one entity,
// such as a single music job.
func (b *Bus) SubscribeEntity(entityType, entityID string, bufferSize int) <-chan Event {
	return b.add(&subscription{entityType: entityType, entityID: entityID}, bufferSize)
}

func (b *Bus) add(s *subscription, bufferSize int) <-chan Event {
	s.ch = make(chan Event, bufferSize)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(s.ch)
		return s.ch
	}
	b.subs = append(b.subs, s)
	return s.ch
}

// Unsubscribe removes and closes a subscription channel.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.ch == ch {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(s.ch)
			return
		}
	}
}

// Close closes every subscription. Later publishes are ignored.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, s := range b.subs {
		close(s.ch)
	}
	b.subs = nil
	return nil
}
