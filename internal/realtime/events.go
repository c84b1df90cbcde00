package realtime

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Server→client event names. Global events go to every connected session;
// targeted events go only to the sessions in one user's room.
const (
	EventTaskCreated          = "taskCreated"
	EventTaskUpdated          = "taskUpdated"
	EventTaskDeleted          = "taskDeleted"
	EventTaskAssigned         = "taskAssigned"
	EventNotificationReceived = "notificationReceived"
)

// Client→server event names.
const (
	// EventJoinUserRoom associates the session with a user ID. Sent once by
	// the client right after it connects post-login.
	EventJoinUserRoom = "joinUserRoom"
)

// Envelope is the wire format for every message in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// TaskDeletedPayload carries only the ID of the removed task; by the time
// the event fires there is nothing left to hydrate.
type TaskDeletedPayload struct {
	ID uuid.UUID `json:"id"`
}

// NotificationPayload is the lightweight body of a notificationReceived
// event. The full notification entity is fetched over REST; the push only
// carries the toast text.
type NotificationPayload struct {
	Message string `json:"message"`
}

// marshalEnvelope serializes an event and its payload into the wire format.
func marshalEnvelope(event string, data any) ([]byte, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}
