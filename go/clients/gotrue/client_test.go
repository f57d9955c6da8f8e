package gotrue

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestSendMagicLink(t *testing.T) {
	var got otpRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/v1/otp" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("apikey") != "service-key" || r.Header.Get("Authorization") != "Bearer service-key" {
			t.Errorf("missing service credentials: %v", r.Header)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Error(err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "service-key")
	if err := c.SendMagicLink(context.Background(), "player@example.com"); err != nil {
		t.Fatalf("SendMagicLink() error = %v", err)
	}
	if got.Email != "player@example.com" || !got.CreateUser {
		t.Fatalf("request body = %+v", got)
	}
}

func TestSendMagicLinkRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"code":429,"msg":"For security purposes, you can only request this once every 60 seconds"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "k").SendMagicLink(context.Background(), "a@b.co")
	status, msg, ok := ErrorMessage(err)
	if !ok || status != http.StatusTooManyRequests {
		t.Fatalf("ErrorMessage() = %d, %q, %v", status, msg, ok)
	}
	if msg != "For security purposes, you can only request this once every 60 seconds" {
		t.Fatalf("message = %q", msg)
	}
}

func TestUpdateUserMetadata(t *testing.T) {
	user := uuid.New()
	var body updateUserRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/auth/v1/admin/users/"+user.String() {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"id":"` + user.String() + `"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "k").UpdateUserMetadata(context.Background(), user, map[string]any{"full_name": "Sam Setter"})
	if err != nil {
		t.Fatalf("UpdateUserMetadata() error = %v", err)
	}
	if body.UserMetadata["full_name"] != "Sam Setter" {
		t.Fatalf("metadata = %v", body.UserMetadata)
	}
}

func TestErrorMessageIgnoresOtherErrors(t *testing.T) {
	if _, _, ok := ErrorMessage(context.DeadlineExceeded); ok {
		t.Fatal("ErrorMessage() matched a non-API error")
	}
}
