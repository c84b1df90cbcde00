package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// writeWait is the deadline for a single websocket write.
	writeWait = 10 * time.Second

	// pongWait is how long we wait for a pong before declaring the peer dead.
	pongWait = 60 * time.Second

	// pingPeriod must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize bounds inbound messages; clients only ever send the
	// small joinUserRoom envelope.
	maxMessageSize = 1024

	// sendBufferSize is the per-session outbound queue. A session that
	// falls this far behind is dropped.
	sendBufferSize = 64
)

// Client is a single websocket session managed by the hub.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	logger *slog.Logger

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// Ensure Client implements the hub's Session interface
var _ Session = (*Client)(nil)

// NewClient wraps an upgraded websocket connection.
func NewClient(hub *Hub, conn *websocket.Conn, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		hub:    hub,
		conn:   conn,
		logger: logger.With(slog.String("component", "realtime_client")),
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
	}
}

// Start registers the session with the hub and launches the read and write
// pumps. It returns immediately.
func (c *Client) Start() {
	c.hub.Register(c)
	go c.writePump()
	go c.readPump()
}

// TrySend implements Session. It enqueues the message without blocking and
// reports false when the buffer is full. Messages offered to a closing
// session are silently discarded.
func (c *Client) TrySend(msg []byte) bool {
	select {
	case <-c.done:
		return true
	default:
	}

	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// Close implements Session. It tears down the connection; both pumps exit
// on their own once the transport is gone.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if err := c.conn.Close(); err != nil {
			c.logger.Debug("error closing websocket", slog.String("error", err.Error()))
		}
	})
}

// readPump consumes inbound messages until the connection dies, then cleans
// up room membership. It is the only reader of the connection.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket closed unexpectedly",
					slog.String("error", err.Error()))
			}
			return
		}
		c.handleMessage(raw)
	}
}

// writePump drains the send queue onto the wire and keeps the connection
// alive with pings. It is the only writer of the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// handleMessage dispatches a single inbound envelope. Malformed messages
// are logged and ignored; the protocol has no error replies.
func (c *Client) handleMessage(raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Debug("ignoring malformed client message",
			slog.String("error", err.Error()))
		return
	}

	switch env.Event {
	case EventJoinUserRoom:
		var userID string
		if err := json.Unmarshal(env.Data, &userID); err != nil {
			c.logger.Debug("ignoring joinUserRoom with malformed data",
				slog.String("error", err.Error()))
			return
		}
		uid, err := uuid.Parse(userID)
		if err != nil {
			c.logger.Debug("ignoring joinUserRoom with invalid user ID",
				slog.String("user_id", userID))
			return
		}
		c.hub.Join(c, uid)
	default:
		c.logger.Debug("ignoring unknown client event",
			slog.String("event", env.Event))
	}
}
