package audit

import (
	"context"
	"sync"
	"time"
)

// Sink accepts audit events. Implementations must be safe for concurrent use.
type Sink interface {
	Emit(ctx context.Context, event Event) error
}

// Store is an append-only persistence target for events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, userID string) ([]Event, error)
}

// MemoryStore keeps events in memory for tests and single-node deployments.
type MemoryStore struct {
	mu     sync.RWMutex
	events map[string][]Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: make(map[string][]Event)}
}

func (s *MemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.UserID] = append(s.events[event.UserID], event)
	return nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[userID]...), nil
}

// ChannelSink feeds a Worker. Emit never blocks the request path: when the
// inbox is full the event is dropped, auth must not stall on auditing.
type ChannelSink struct {
	inbox chan Event
}

func NewChannelSink(buffer int) *ChannelSink {
	return &ChannelSink{inbox: make(chan Event, buffer)}
}

func (s *ChannelSink) Emit(_ context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case s.inbox <- event:
	default:
	}
	return nil
}

// Inbox exposes the event channel for the Worker.
func (s *ChannelSink) Inbox() <-chan Event { return s.inbox }
