package gateway

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ConnectionConfig holds configuration for WebSocket connections
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	SendBufferSize  int
	CheckOrigin     func(r *http.Request) bool
}

// DefaultConnectionConfig returns default WebSocket configuration
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  4096,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		SendBufferSize:  256,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

// SessionWatcher is told about every registration and unregistration so it
// can follow which sessions have live connections on this instance.
type SessionWatcher interface {
	Watch(sessionID uuid.UUID)
	Unwatch(sessionID uuid.UUID)
}

type delivery struct {
	sessionID uuid.UUID
	payload   []byte
}

// Registry tracks live connections grouped by session and fans payloads out
// to them. A single dispatcher goroutine drains deliveries, so payloads for a
// session reach each connection in the order Deliver was called.
type Registry struct {
	sessions map[uuid.UUID]map[*Connection]bool
	mu       sync.RWMutex

	deliveries chan delivery
	watcher    SessionWatcher
}

// NewRegistry creates a registry whose delivery queue holds bufferSize payloads.
func NewRegistry(bufferSize int) *Registry {
	return &Registry{
		sessions:   make(map[uuid.UUID]map[*Connection]bool),
		deliveries: make(chan delivery, bufferSize),
	}
}

// SetWatcher installs the session watcher. Call before any Register.
func (r *Registry) SetWatcher(w SessionWatcher) {
	r.watcher = w
}

// Start processes deliveries until ctx is done
func (r *Registry) Start(ctx context.Context) {
	log.Info().Msg("connection registry started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("connection registry shutting down")
			return
		case d := <-r.deliveries:
			r.dispatch(d)
		}
	}
}

// Register adds conn under sessionID.
func (r *Registry) Register(sessionID uuid.UUID, conn *Connection) {
	// Watch before the connection becomes visible, so its Unwatch can never
	// run first.
	if r.watcher != nil {
		r.watcher.Watch(sessionID)
	}

	r.mu.Lock()
	conn.SessionID = sessionID
	if r.sessions[sessionID] == nil {
		r.sessions[sessionID] = make(map[*Connection]bool)
	}
	r.sessions[sessionID][conn] = true
	total := len(r.sessions[sessionID])
	r.mu.Unlock()

	log.Debug().
		Str("connection_id", conn.ID).
		Str("session_id", sessionID.String()).
		Int("session_connections", total).
		Msg("connection registered")
}

// Unregister removes conn and closes its send queue. Safe to call repeatedly
// and for connections that were never registered.
func (r *Registry) Unregister(conn *Connection) {
	r.mu.Lock()
	registered := false
	if conns, ok := r.sessions[conn.SessionID]; ok && conns[conn] {
		delete(conns, conn)
		registered = true
		if len(conns) == 0 {
			delete(r.sessions, conn.SessionID)
		}
	}
	r.mu.Unlock()

	conn.closeSend()

	if registered {
		if r.watcher != nil {
			r.watcher.Unwatch(conn.SessionID)
		}
		log.Info().
			Str("connection_id", conn.ID).
			Str("session_id", conn.SessionID.String()).
			Msg("connection unregistered")
	}
}

// Deliver queues payload for every connection registered under sessionID.
// It never blocks; when the queue is full the payload is dropped.
func (r *Registry) Deliver(sessionID uuid.UUID, payload []byte) {
	select {
	case r.deliveries <- delivery{sessionID: sessionID, payload: payload}:
	default:
		log.Warn().Str("session_id", sessionID.String()).Msg("delivery queue full, dropping message")
	}
}

func (r *Registry) dispatch(d delivery) {
	r.mu.RLock()
	conns := r.sessions[d.sessionID]
	targets := make([]*Connection, 0, len(conns))
	for conn := range conns {
		targets = append(targets, conn)
	}
	r.mu.RUnlock()

	for _, conn := range targets {
		if conn.enqueue(d.payload) == sendFull {
			log.Warn().
				Str("connection_id", conn.ID).
				Str("session_id", d.sessionID.String()).
				Msg("connection send buffer full, closing connection")
			r.Unregister(conn)
			conn.closeTransport()
		}
	}

	log.Debug().
		Str("session_id", d.sessionID.String()).
		Int("connections", len(targets)).
		Msg("payload delivered")
}

// Stats summarizes registered connections.
type Stats struct {
	TotalConnections int            `json:"total_connections"`
	ActiveSessions   int            `json:"active_sessions"`
	PerSession       map[string]int `json:"session_connections,omitempty"`
}

// Stats returns statistics about registered connections
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{PerSession: make(map[string]int, len(r.sessions))}
	for sessionID, conns := range r.sessions {
		stats.TotalConnections += len(conns)
		stats.PerSession[sessionID.String()] = len(conns)
	}
	stats.ActiveSessions = len(r.sessions)
	return stats
}
