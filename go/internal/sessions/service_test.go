package sessions

import (
	"encoding/json"
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

func newTestServer(t *testing.T, repo *fakeRepo) *httptest.Server {
	t.Helper()
	verifier := auth.NewVerifier(authtest.Secret, authtest.Audience, clockwork.NewRealClock())
	svc := NewService(NewApp(repo, nil, time.Second))

	r := chi.NewRouter()
	r.Route("/api/session", func(r chi.Router) {
		svc.RegisterRoutes(r, verifier.Require)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

const createBody = `{
	"session_name": "Tuesday Run",
	"sport": "basketball",
	"team_size": 5,
	"max_teams": 4,
	"starts_at": "2026-06-01T18:00:00Z",
	"rotation_mode": "winner_stays",
	"number_of_courts": 2
}`

func post(t *testing.T, url, authorization, body string) *http.Response {
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
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServiceCreateThenGet(t *testing.T) {
	repo := newFakeRepo()
	srv := newTestServer(t, repo)
	host := uuid.New()

	resp := post(t, srv.URL+"/api/session/create", authtest.Bearer(t, host), createBody)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create status = %d, want 200", resp.StatusCode)
	}
	var created struct {
		Message   string    `json:"message"`
		SessionID uuid.UUID `json:"session_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	if created.Message != "Session created successfully" {
		t.Errorf("message = %q", created.Message)
	}

	getResp, err := http.Get(srv.URL + "/api/session/" + created.SessionID.String())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", getResp.StatusCode)
	}
	var got struct {
		Data struct {
			SessionName    string    `json:"session_name"`
			HostID         uuid.UUID `json:"host_id"`
			NumberOfCourts int       `json:"number_of_courts"`
			RotationMode   string    `json:"rotation_mode"`
		} `json:"data"`
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(getResp.Body).Decode(&got); err != nil {
		t.Fatalf("decode get: %v", err)
	}
	if !got.OK {
		t.Error("ok = false, want true")
	}
	if got.Data.SessionName != "Tuesday Run" || got.Data.NumberOfCourts != 2 || got.Data.RotationMode != "winner_stays" {
		t.Errorf("data = %+v", got.Data)
	}
	if got.Data.HostID != host {
		t.Errorf("host_id = %s, want %s", got.Data.HostID, host)
	}
}

func TestServiceCreateRequiresAuth(t *testing.T) {
	repo := newFakeRepo()
	srv := newTestServer(t, repo)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing", header: ""},
		{name: "garbage", header: "Bearer not-a-token"},
		{name: "wrong scheme", header: "Basic abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+"/api/session/create", tt.header, createBody)
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
		})
	}
	if repo.creates != 0 {
		t.Errorf("repository called %d times, want 0", repo.creates)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	srv := newTestServer(t, newFakeRepo())
	bearer := authtest.Bearer(t, uuid.New())

	resp := post(t, srv.URL+"/api/session/create", bearer, `{"session_name":"x"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	var body struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Kind != "validation" || body.Error == "" {
		t.Errorf("body = %+v", body)
	}
}

func TestServiceGetBadID(t *testing.T) {
	srv := newTestServer(t, newFakeRepo())

	for _, path := range []string{"/api/session/not-a-uuid", "/api/session/" + uuid.NewString()} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", path, resp.StatusCode)
		}
	}
}
