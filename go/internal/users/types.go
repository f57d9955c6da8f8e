package users

import (
	"net/mail"
	"strings"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/apperrors"
)

const (
	maxUsernameLength = 30
	maxFullNameLength = 100
)

// MagicLinkRequest is the body of POST /api/auth/send-magic-link
type MagicLinkRequest struct {
	Email string `json:"email"`
}

// Validate returns the normalized address.
func (r MagicLinkRequest) Validate() (string, error) {
	email := strings.TrimSpace(r.Email)
	if email == "" || !strings.Contains(email, "@") {
		return "", apperrors.Validation("Invalid email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", apperrors.Validation("Invalid email")
	}
	return strings.ToLower(addr.Address), nil
}

// UpdateProfileRequest is the body of POST /api/profile/update. Omitted
// fields keep their stored value.
type UpdateProfileRequest struct {
	Username  *string `json:"username"`
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
}

// ProfileParams is a validated profile update
type ProfileParams struct {
	Username  *string
	FullName  *string
	AvatarURL *string
}

func (r UpdateProfileRequest) Validate() (ProfileParams, error) {
	var p ProfileParams

	if r.Username != nil {
		u := strings.TrimSpace(*r.Username)
		if u == "" {
			return p, apperrors.Validation("username must not be blank")
		}
		if len(u) > maxUsernameLength {
			return p, apperrors.Validationf("username must be at most %d characters", maxUsernameLength)
		}
		p.Username = &u
	}

	if r.FullName != nil {
		n := strings.TrimSpace(*r.FullName)
		if n == "" {
			return p, apperrors.Validation("full_name must not be blank")
		}
		if len(n) > maxFullNameLength {
			return p, apperrors.Validationf("full_name must be at most %d characters", maxFullNameLength)
		}
		p.FullName = &n
	}

	if r.AvatarURL != nil {
		a := strings.TrimSpace(*r.AvatarURL)
		if a != "" {
			p.AvatarURL = &a
		}
	}

	return p, nil
}
