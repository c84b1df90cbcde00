package mocks

import (
	"sync"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive-api/internal/service"
)

// PublishedEvent records a single event delivered through the mock publisher.
type PublishedEvent struct {
	Event string
	Data  any

	// UserID is set for targeted events and uuid.Nil for broadcasts.
	UserID uuid.UUID
}

// MockEventPublisher implements service.EventPublisher for testing. It
// records every published event in order so tests can assert on event
// sequencing as well as content.
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// Ensure MockEventPublisher implements service.EventPublisher
var _ service.EventPublisher = (*MockEventPublisher)(nil)

// Broadcast implements the service.EventPublisher interface
func (m *MockEventPublisher) Broadcast(event string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{Event: event, Data: data})
}

// SendToUser implements the service.EventPublisher interface
func (m *MockEventPublisher) SendToUser(userID uuid.UUID, event string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{Event: event, Data: data, UserID: userID})
}

// EventNames returns the names of all recorded events in publish order.
func (m *MockEventPublisher) EventNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.Events))
	for i, e := range m.Events {
		names[i] = e.Event
	}
	return names
}

// EventsFor returns the targeted events recorded for userID, in order.
func (m *MockEventPublisher) EventsFor(userID uuid.UUID) []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []PublishedEvent
	for _, e := range m.Events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}
