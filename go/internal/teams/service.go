package teams

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/auth"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/httpx"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// TeamsApp defines what the service layer needs from the teams application
type TeamsApp interface {
	CreateTeam(ctx context.Context, sessionID, captainID uuid.UUID, req CreateTeamRequest) (*models.Team, error)
	ListTeams(ctx context.Context, sessionID uuid.UUID) (json.RawMessage, error)
	TeamOf(ctx context.Context, sessionID, playerID uuid.UUID) (*models.TeamMembership, error)
	JoinTeam(ctx context.Context, sessionID, teamID, playerID uuid.UUID) (*models.Player, error)
}

// Service exposes teams over HTTP
type Service struct {
	app TeamsApp
}

// NewService creates a new teams service
func NewService(app TeamsApp) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the team routes on a router rooted at /api/session
func (s *Service) RegisterRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/{session_id}/teams", s.ListTeams)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/{session_id}/create-team", s.CreateTeam)
		r.Get("/{session_id}/team-of", s.TeamOf)
		r.Post("/{session_id}/team/{team_id}/join", s.JoinTeam)
	})
}

type createTeamResponse struct {
	Message string       `json:"message"`
	Data    *models.Team `json:"data"`
}

// CreateTeam handles POST /{session_id}/create-team
func (s *Service) CreateTeam(w http.ResponseWriter, r *http.Request) {
	captain, err := auth.MustPrincipal(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	sessionID, err := httpx.URLParamUUID(r, "session_id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	var req CreateTeamRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	team, err := s.app.CreateTeam(r.Context(), sessionID, captain, req)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, createTeamResponse{
		Message: "new team created successfully",
		Data:    team,
	})
}

// ListTeams handles GET /{session_id}/teams. The body is the bare list.
func (s *Service) ListTeams(w http.ResponseWriter, r *http.Request) {
	sessionID, err := httpx.URLParamUUID(r, "session_id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	teams, err := s.app.ListTeams(r.Context(), sessionID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteRaw(w, http.StatusOK, teams)
}

type teamOfResponse struct {
	Data *models.TeamMembership `json:"data"`
}

// TeamOf handles GET /{session_id}/team-of
func (s *Service) TeamOf(w http.ResponseWriter, r *http.Request) {
	player, err := auth.MustPrincipal(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	sessionID, err := httpx.URLParamUUID(r, "session_id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	membership, err := s.app.TeamOf(r.Context(), sessionID, player)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if membership == nil {
		httpx.WriteJSON(w, http.StatusOK, nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, teamOfResponse{Data: membership})
}

type joinTeamResponse struct {
	Message string `json:"message"`
}

// JoinTeam handles POST /{session_id}/team/{team_id}/join
func (s *Service) JoinTeam(w http.ResponseWriter, r *http.Request) {
	player, err := auth.MustPrincipal(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	sessionID, err := httpx.URLParamUUID(r, "session_id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	teamID, err := httpx.URLParamUUID(r, "team_id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	if _, err := s.app.JoinTeam(r.Context(), sessionID, teamID, player); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, joinTeamResponse{
		Message: fmt.Sprintf("user: %s joined team %s", player, teamID),
	})
}
