package users

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/auth"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/auth/authtest"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

func newTestServer(t *testing.T, repo *fakeRepo, provider *fakeProvider) *httptest.Server {
	t.Helper()
	verifier := auth.NewVerifier(authtest.Secret, authtest.Audience, clockwork.NewRealClock())
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		NewService(NewApp(repo, provider, time.Second)).RegisterRoutes(r, verifier.Require)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, authorization, body string) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestServiceMagicLink(t *testing.T) {
	provider := &fakeProvider{}
	srv := newTestServer(t, newFakeRepo(), provider)

	if got := postJSON(t, srv.URL+"/api/auth/send-magic-link", "", `{"email":"a@example.com"}`); got != http.StatusOK {
		t.Errorf("valid email status = %d, want 200", got)
	}
	if got := postJSON(t, srv.URL+"/api/auth/send-magic-link", "", `{"email":"bad"}`); got != http.StatusBadRequest {
		t.Errorf("invalid email status = %d, want 400", got)
	}
}

func TestServiceProfileUpdateRequiresAuth(t *testing.T) {
	repo := newFakeRepo()
	srv := newTestServer(t, repo, &fakeProvider{})

	if got := postJSON(t, srv.URL+"/api/profile/update", "", `{"full_name":"X"}`); got != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", got)
	}
	if repo.writes != 0 {
		t.Errorf("repository writes = %d, want 0", repo.writes)
	}

	if got := postJSON(t, srv.URL+"/api/profile/update", authtest.Bearer(t, uuid.New()), `{"full_name":"X"}`); got != http.StatusOK {
		t.Errorf("authorized status = %d, want 200", got)
	}
}
