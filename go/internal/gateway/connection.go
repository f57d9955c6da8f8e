package gateway

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	ID        string
	SessionID uuid.UUID
	Conn      *websocket.Conn
	Send      chan []byte

	registry *Registry
	config   ConnectionConfig

	ConnectedAt time.Time

	mu     sync.Mutex
	closed bool
}

type sendResult int

const (
	sendOK sendResult = iota
	sendClosed
	sendFull
)

func newConnection(conn *websocket.Conn, registry *Registry, config ConnectionConfig) *Connection {
	return &Connection{
		ID:          uuid.New().String(),
		Conn:        conn,
		Send:        make(chan []byte, config.SendBufferSize),
		registry:    registry,
		config:      config,
		ConnectedAt: time.Now(),
	}
}

// enqueue never blocks. Sending to a closed connection is a no-op.
func (c *Connection) enqueue(payload []byte) sendResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return sendClosed
	}
	select {
	case c.Send <- payload:
		return sendOK
	default:
		return sendFull
	}
}

func (c *Connection) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

func (c *Connection) closeTransport() {
	if c.Conn != nil {
		c.Conn.Close()
	}
}

// write sends one frame under the configured write deadline.
func (c *Connection) write(messageType int, payload []byte) error {
	if err := c.Conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout)); err != nil {
		return err
	}
	return c.Conn.WriteMessage(messageType, payload)
}

// writePump drains Send onto the socket and keeps it alive with pings.
// It owns all writes to Conn.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.closeTransport()
		c.registry.Unregister(c)
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			if !ok {
				_ = c.write(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.write(websocket.TextMessage, payload); err != nil {
				log.Error().Err(err).
					Str("connection_id", c.ID).
					Stringer("session_id", c.SessionID).
					Msg("failed to deliver to socket")
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("connection_id", c.ID).Msg("ping failed")
				return
			}
		}
	}
}

func (c *Connection) extendReadDeadline() {
	_ = c.Conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
}

// readPump echoes client frames until the socket errors or closes.
func (c *Connection) readPump(onClose func()) {
	defer func() {
		c.registry.Unregister(c)
		c.closeTransport()
		if onClose != nil {
			onClose()
		}
	}()

	c.Conn.SetReadLimit(c.config.MaxMessageSize)
	c.extendReadDeadline()
	c.Conn.SetPongHandler(func(string) error {
		c.extendReadDeadline()
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("connection_id", c.ID).Msg("socket closed unexpectedly")
			}
			return
		}
		c.handleClientMessage(message)
		c.extendReadDeadline()
	}
}

// handleClientMessage echoes what the client sent
func (c *Connection) handleClientMessage(message []byte) {
	log.Debug().
		Str("connection_id", c.ID).
		Str("message", string(message)).
		Msg("received client message")

	reply := append([]byte("Server received: "), message...)
	if c.enqueue(reply) == sendFull {
		log.Warn().Str("connection_id", c.ID).Msg("send buffer full, dropping echo")
	}
}
