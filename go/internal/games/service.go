package games

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/auth"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/httpx"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// GamesApp defines what the service layer needs from the games application
type GamesApp interface {
	AssignTeamToCourt(ctx context.Context, sessionID uuid.UUID, req AssignTeamRequest) (*models.Game, error)
	FinishGame(ctx context.Context, sessionID, gameID uuid.UUID) (*models.Game, error)
	CurrentGames(ctx context.Context, sessionID uuid.UUID) (json.RawMessage, error)
}

// Service exposes court assignments over HTTP
type Service struct {
	app GamesApp
}

// NewService creates a new games service
func NewService(app GamesApp) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the game routes on a router rooted at /api/session
func (s *Service) RegisterRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/{session_id}/current-games", s.CurrentGames)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Patch("/{session_id}/add_team_to_game", s.AssignTeamToCourt)
		r.Post("/{session_id}/games/{game_id}/finish", s.FinishGame)
	})
}

type currentGamesResponse struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// CurrentGames handles GET /{session_id}/current-games
func (s *Service) CurrentGames(w http.ResponseWriter, r *http.Request) {
	sessionID, err := httpx.URLParamUUID(r, "session_id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	games, err := s.app.CurrentGames(r.Context(), sessionID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, currentGamesResponse{Data: games, Message: "successful"})
}

type assignResponse struct {
	Status *models.Game `json:"status"`
}

// AssignTeamToCourt handles PATCH /{session_id}/add_team_to_game
func (s *Service) AssignTeamToCourt(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.MustPrincipal(r.Context()); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	sessionID, err := httpx.URLParamUUID(r, "session_id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	var req AssignTeamRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	game, err := s.app.AssignTeamToCourt(r.Context(), sessionID, req)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, assignResponse{Status: game})
}

type finishResponse struct {
	Message string       `json:"message"`
	Data    *models.Game `json:"data"`
}

// FinishGame handles POST /{session_id}/games/{game_id}/finish
func (s *Service) FinishGame(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.MustPrincipal(r.Context()); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	sessionID, err := httpx.URLParamUUID(r, "session_id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	gameID, err := httpx.URLParamUUID(r, "game_id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	game, err := s.app.FinishGame(r.Context(), sessionID, gameID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, finishResponse{Message: "game finished", Data: game})
}
