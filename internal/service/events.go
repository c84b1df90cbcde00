package service

import "github.com/google/uuid"

// EventPublisher is the delivery surface the services push realtime events
// through. The production implementation is *realtime.Hub; tests substitute
// mocks. Delivery is fire-and-forget: publishing never fails and never blocks
// on the network, so services call it only after the store write has been
// acknowledged.
type EventPublisher interface {
	// Broadcast delivers an event to every connected session.
	Broadcast(event string, data any)

	// SendToUser delivers an event only to the sessions joined to userID.
	// When that user has no joined sessions the event is dropped.
	SendToUser(userID uuid.UUID, event string, data any)
}
