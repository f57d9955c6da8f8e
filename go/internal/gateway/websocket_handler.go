package gateway

import (
	"net/http"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/apperrors"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/httpx"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ConnectionRecorder tracks the number of open sockets.
type ConnectionRecorder interface {
	ConnectionOpened()
	ConnectionClosed()
}

// WebSocketHandler handles WebSocket upgrade requests
type WebSocketHandler struct {
	registry *Registry
	upgrader websocket.Upgrader
	config   ConnectionConfig
	recorder ConnectionRecorder
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(registry *Registry, config ConnectionConfig, recorder ConnectionRecorder) *WebSocketHandler {
	return &WebSocketHandler{
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:   config,
		recorder: recorder,
	}
}

// HandleConnection upgrades the request. With a session_id query parameter the
// socket also receives that session's change events; without one it only echoes.
func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	var sessionID uuid.UUID
	if raw := r.URL.Query().Get("session_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpx.WriteError(w, r, apperrors.Validation("session_id must be a valid UUID"))
			return
		}
		sessionID = id
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
		return
	}

	c := newConnection(conn, h.registry, h.config)
	if sessionID != uuid.Nil {
		h.registry.Register(sessionID, c)
	}
	if h.recorder != nil {
		h.recorder.ConnectionOpened()
	}

	log.Info().
		Str("connection_id", c.ID).
		Str("remote_addr", r.RemoteAddr).
		Str("session_id", sessionID.String()).
		Msg("WebSocket connection established")

	go c.writePump()
	go c.readPump(func() {
		if h.recorder != nil {
			h.recorder.ConnectionClosed()
		}
		log.Info().Str("connection_id", c.ID).Msg("WebSocket client disconnected")
	})
}

// HandleConnectionStats returns statistics about registered connections
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.registry.Stats())
}
