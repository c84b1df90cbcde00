package realtime

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Session is the transport surface the hub needs from a connected client.
// The production implementation is *Client (a websocket connection); tests
// substitute in-memory fakes.
type Session interface {
	// TrySend enqueues an already-serialized message without blocking.
	// Returns false when the session's send buffer is full.
	TrySend(msg []byte) bool

	// Close tears down the underlying transport. Safe to call more than once.
	Close()
}

// Hub tracks every connected session and the per-user rooms used for
// targeted delivery. A room is not pre-declared: it is exactly the set of
// sessions currently joined to a user ID.
//
// All registry state is guarded by a single mutex, so membership mutation
// and delivery never race. Delivery itself only enqueues onto per-session
// buffers and never blocks on the network.
type Hub struct {
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[Session]uuid.UUID            // all connected; uuid.Nil while unjoined
	rooms    map[uuid.UUID]map[Session]struct{}
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger:   logger.With(slog.String("component", "realtime_hub")),
		sessions: make(map[Session]uuid.UUID),
		rooms:    make(map[uuid.UUID]map[Session]struct{}),
	}
}

// Register adds a newly connected session in the unjoined state.
func (h *Hub) Register(s Session) {
	h.mu.Lock()
	h.sessions[s] = uuid.Nil
	total := len(h.sessions)
	h.mu.Unlock()

	h.logger.Debug("session connected", slog.Int("session_count", total))
}

// Unregister removes a session from the registry and from its room, if any.
// Called by the transport on disconnect; the empty room is deleted so the
// room map never accumulates dead users.
func (h *Hub) Unregister(s Session) {
	h.mu.Lock()
	userID, ok := h.sessions[s]
	if ok {
		delete(h.sessions, s)
		if userID != uuid.Nil {
			if room := h.rooms[userID]; room != nil {
				delete(room, s)
				if len(room) == 0 {
					delete(h.rooms, userID)
				}
			}
		}
	}
	total := len(h.sessions)
	h.mu.Unlock()

	if ok {
		h.logger.Debug("session disconnected",
			slog.String("user_id", userID.String()),
			slog.Int("session_count", total))
	}
}

// Join associates the session with a user ID, inserting it into that user's
// room. A session joins at most once in its lifetime; subsequent joins are
// ignored. Joining an unregistered session is a no-op.
func (h *Hub) Join(s Session, userID uuid.UUID) {
	if userID == uuid.Nil {
		return
	}

	h.mu.Lock()
	current, ok := h.sessions[s]
	if !ok || current != uuid.Nil {
		h.mu.Unlock()
		if ok {
			h.logger.Debug("ignoring repeated join",
				slog.String("joined_user_id", current.String()),
				slog.String("requested_user_id", userID.String()))
		}
		return
	}
	h.sessions[s] = userID
	room := h.rooms[userID]
	if room == nil {
		room = make(map[Session]struct{})
		h.rooms[userID] = room
	}
	room[s] = struct{}{}
	size := len(room)
	h.mu.Unlock()

	h.logger.Debug("session joined user room",
		slog.String("user_id", userID.String()),
		slog.Int("room_size", size))
}

// Broadcast delivers an event to every currently connected session,
// regardless of join state.
func (h *Hub) Broadcast(event string, data any) {
	msg, err := marshalEnvelope(event, data)
	if err != nil {
		h.logger.Error("failed to marshal broadcast event",
			slog.String("event", event),
			slog.String("error", err.Error()))
		return
	}

	h.mu.RLock()
	targets := make([]Session, 0, len(h.sessions))
	for s := range h.sessions {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	h.deliver(targets, event, msg)
}

// SendToUser delivers an event only to the sessions joined to userID.
// When that user has no joined sessions the event is dropped: the client's
// initial fetch and refetch-on-reconnect are the durability backstop, not
// the hub.
func (h *Hub) SendToUser(userID uuid.UUID, event string, data any) {
	msg, err := marshalEnvelope(event, data)
	if err != nil {
		h.logger.Error("failed to marshal targeted event",
			slog.String("event", event),
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return
	}

	h.mu.RLock()
	room := h.rooms[userID]
	targets := make([]Session, 0, len(room))
	for s := range room {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		h.logger.Debug("dropping targeted event, user has no joined sessions",
			slog.String("event", event),
			slog.String("user_id", userID.String()))
		return
	}

	h.deliver(targets, event, msg)
}

// deliver enqueues the serialized message onto each target. A session whose
// buffer is full cannot keep up; it is closed and removed rather than
// allowed to stall delivery to everyone else.
func (h *Hub) deliver(targets []Session, event string, msg []byte) {
	for _, s := range targets {
		if !s.TrySend(msg) {
			h.logger.Warn("dropping slow session",
				slog.String("event", event))
			h.Unregister(s)
			s.Close()
		}
	}
}

// SessionCount returns the number of currently connected sessions.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// RoomSize returns the number of sessions currently joined to userID.
func (h *Hub) RoomSize(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID])
}
