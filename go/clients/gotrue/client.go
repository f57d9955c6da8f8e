// Package gotrue talks to the hosted identity provider's auth API
// (magic-link sign-in and admin user updates).
package gotrue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/clients"
	"github.com/google/uuid"
)

// Client calls the provider's /auth/v1 endpoints with the service role key.
type Client struct {
	base *clients.BaseClient
}

// NewClient creates a client for projectURL, e.g. https://abc.supabase.co.
func NewClient(projectURL, serviceRoleKey string) *Client {
	base := clients.NewBaseClient(projectURL + "/auth/v1")
	base.SetHeader("apikey", serviceRoleKey)
	base.SetHeader("Authorization", "Bearer "+serviceRoleKey)
	return &Client{base: base}
}

type otpRequest struct {
	Email      string `json:"email"`
	CreateUser bool   `json:"create_user"`
}

// SendMagicLink asks the provider to email a passwordless sign-in link.
func (c *Client) SendMagicLink(ctx context.Context, email string) error {
	if _, err := c.base.Post(ctx, "/otp", otpRequest{Email: email, CreateUser: true}); err != nil {
		return fmt.Errorf("failed to send magic link: %w", err)
	}
	return nil
}

type updateUserRequest struct {
	UserMetadata map[string]any `json:"user_metadata"`
}

// UpdateUserMetadata merges metadata into the user's provider-side record.
func (c *Client) UpdateUserMetadata(ctx context.Context, userID uuid.UUID, metadata map[string]any) error {
	if _, err := c.base.Put(ctx, "/admin/users/"+userID.String(), updateUserRequest{UserMetadata: metadata}); err != nil {
		return fmt.Errorf("failed to update user metadata: %w", err)
	}
	return nil
}

// ErrorMessage extracts the provider's human readable message from an API error, if any.
func ErrorMessage(err error) (status int, message string, ok bool) {
	var apiErr *clients.APIError
	if !errors.As(err, &apiErr) {
		return 0, "", false
	}
	var body struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.Unmarshal([]byte(apiErr.Body), &body)
	switch {
	case body.Msg != "":
		message = body.Msg
	case body.Message != "":
		message = body.Message
	case body.ErrorDescription != "":
		message = body.ErrorDescription
	default:
		message = apiErr.Body
	}
	return apiErr.StatusCode, message, true
}
