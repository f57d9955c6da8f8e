package sessions

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/apperrors"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/models"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/sports"
	"github.com/google/uuid"
)

type fakeRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*models.Session
	creates  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: make(map[uuid.UUID]*models.Session)}
}

func (f *fakeRepo) CreateSession(_ context.Context, hostID uuid.UUID, p CreateSessionParams) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	s := &models.Session{
		ID:             uuid.New(),
		SessionName:    p.SessionName,
		Description:    p.Description,
		HostID:         hostID,
		Sport:          p.Sport,
		TeamSize:       p.TeamSize,
		MaxTeams:       p.MaxTeams,
		StartsAt:       p.StartsAt,
		RotationMode:   p.RotationMode,
		WinnerMaxWins:  p.WinnerMaxWins,
		NumberOfCourts: p.NumberOfCourts,
		CreatedAt:      time.Now().UTC(),
	}
	f.sessions[s.ID] = s
	return s, nil
}

func (f *fakeRepo) GetSession(_ context.Context, id uuid.UUID) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, apperrors.NotFound("session not found")
	}
	return s, nil
}

func intPtr(v int) *int { return &v }

func validRequest() CreateSessionRequest {
	return CreateSessionRequest{
		SessionName:    "Tuesday Run",
		Sport:          "basketball",
		TeamSize:       intPtr(5),
		MaxTeams:       intPtr(4),
		StartsAt:       "2026-06-01T18:00:00Z",
		RotationMode:   "winner_stays",
		NumberOfCourts: intPtr(2),
	}
}

func TestCreateRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateSessionRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*CreateSessionRequest) {}},
		{name: "blank name", mutate: func(r *CreateSessionRequest) { r.SessionName = "   " }, wantErr: true},
		{name: "missing sport", mutate: func(r *CreateSessionRequest) { r.Sport = "" }, wantErr: true},
		{name: "missing team size", mutate: func(r *CreateSessionRequest) { r.TeamSize = nil }, wantErr: true},
		{name: "zero team size", mutate: func(r *CreateSessionRequest) { r.TeamSize = intPtr(0) }, wantErr: true},
		{name: "missing max teams", mutate: func(r *CreateSessionRequest) { r.MaxTeams = nil }, wantErr: true},
		{name: "bad starts_at", mutate: func(r *CreateSessionRequest) { r.StartsAt = "next tuesday" }, wantErr: true},
		{name: "unknown rotation", mutate: func(r *CreateSessionRequest) { r.RotationMode = "coin_flip" }, wantErr: true},
		{name: "zero courts", mutate: func(r *CreateSessionRequest) { r.NumberOfCourts = intPtr(0) }, wantErr: true},
		{name: "negative winner max", mutate: func(r *CreateSessionRequest) { r.WinnerMaxWins = intPtr(-1) }, wantErr: true},
		{name: "courts default", mutate: func(r *CreateSessionRequest) { r.NumberOfCourts = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := req.Validate(nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, apperrors.ErrValidation) {
				t.Errorf("Validate() error kind = %s, want validation", apperrors.KindOf(err))
			}
		})
	}
}

func TestCreateRequestDefaultsCourts(t *testing.T) {
	req := validRequest()
	req.NumberOfCourts = nil
	blank := "  "
	req.Description = &blank

	params, err := req.Validate(nil)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if params.NumberOfCourts != 1 {
		t.Errorf("NumberOfCourts = %d, want 1", params.NumberOfCourts)
	}
	if params.Description != nil {
		t.Errorf("Description = %q, want nil", *params.Description)
	}
}

func TestCreateRequestUsesCatalog(t *testing.T) {
	catalog, err := sports.NewCatalog([]sports.Sport{{Tag: "basketball", Name: "Basketball", MaxTeamSize: 5}})
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}

	req := validRequest()
	if _, err := req.Validate(catalog); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	req.TeamSize = intPtr(6)
	if _, err := req.Validate(catalog); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("Validate() oversized team error = %v, want validation", err)
	}

	req = validRequest()
	req.Sport = "curling"
	if _, err := req.Validate(catalog); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("Validate() unknown sport error = %v, want validation", err)
	}
}

func TestAppCreateAndGet(t *testing.T) {
	repo := newFakeRepo()
	app := NewApp(repo, nil, time.Second)
	host := uuid.New()

	created, err := app.CreateSession(context.Background(), host, validRequest())
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if created.HostID != host {
		t.Errorf("HostID = %s, want %s", created.HostID, host)
	}

	got, err := app.GetSession(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got.NumberOfCourts != 2 || got.SessionName != "Tuesday Run" {
		t.Errorf("GetSession() = %+v", got)
	}
}

func TestAppCreateRejectsInvalidBeforeWrite(t *testing.T) {
	repo := newFakeRepo()
	app := NewApp(repo, nil, time.Second)

	req := validRequest()
	req.SessionName = ""
	if _, err := app.CreateSession(context.Background(), uuid.New(), req); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("CreateSession() error = %v, want validation", err)
	}
	if repo.creates != 0 {
		t.Errorf("repository called %d times, want 0", repo.creates)
	}
}

func TestAppGetUnknownSession(t *testing.T) {
	app := NewApp(newFakeRepo(), nil, time.Second)
	_, err := app.GetSession(context.Background(), uuid.New())
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("GetSession() error = %v, want not found", err)
	}
}
