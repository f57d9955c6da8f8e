package sessions

import (
	"context"
	"net/http"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/auth"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/httpx"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SessionsApp defines what the service layer needs from the sessions application
type SessionsApp interface {
	CreateSession(ctx context.Context, hostID uuid.UUID, req CreateSessionRequest) (*models.Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error)
}

// Service exposes sessions over HTTP
type Service struct {
	app SessionsApp
}

// NewService creates a new sessions service
func NewService(app SessionsApp) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the session routes on a router rooted at /api/session
func (s *Service) RegisterRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.With(requireAuth).Post("/create", s.CreateSession)
	r.Get("/{session_id}", s.GetSession)
}

type createSessionResponse struct {
	Message   string    `json:"message"`
	SessionID uuid.UUID `json:"session_id"`
}

// CreateSession handles POST /create
func (s *Service) CreateSession(w http.ResponseWriter, r *http.Request) {
	host, err := auth.MustPrincipal(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	var req CreateSessionRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	session, err := s.app.CreateSession(r.Context(), host, req)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, createSessionResponse{
		Message:   "Session created successfully",
		SessionID: session.ID,
	})
}

type getSessionResponse struct {
	Data *models.Session `json:"data"`
	OK   bool            `json:"ok"`
}

// GetSession handles GET /{session_id}
func (s *Service) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamUUID(r, "session_id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	session, err := s.app.GetSession(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, getSessionResponse{Data: session, OK: true})
}
