package users

import (
	"context"
	"net/http"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/auth"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/httpx"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// UsersApp defines what the service layer needs from the users application
type UsersApp interface {
	SendMagicLink(ctx context.Context, req MagicLinkRequest) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*models.Profile, error)
}

// Service exposes sign-in and profile routes over HTTP
type Service struct {
	app UsersApp
}

// NewService creates a new users service
func NewService(app UsersApp) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts /auth and /profile on a router rooted at /api
func (s *Service) RegisterRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Post("/auth/send-magic-link", s.SendMagicLink)
	r.With(requireAuth).Post("/profile/update", s.UpdateProfile)
}

type messageResponse struct {
	Message string `json:"message"`
}

// SendMagicLink handles POST /auth/send-magic-link
func (s *Service) SendMagicLink(w http.ResponseWriter, r *http.Request) {
	var req MagicLinkRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if err := s.app.SendMagicLink(r.Context(), req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Magic link sent!"})
}

type updateProfileResponse struct {
	Message string          `json:"message"`
	Data    *models.Profile `json:"data"`
}

// UpdateProfile handles POST /profile/update
func (s *Service) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.MustPrincipal(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	var req UpdateProfileRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	profile, err := s.app.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updateProfileResponse{
		Message: "Profile updated successfully",
		Data:    profile,
	})
}
