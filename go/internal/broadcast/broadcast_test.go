package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jonboulle/clockwork"
)

var testSession = uuid.MustParse("3b9d5a2c-0f4e-4f7a-8c1d-2e3f4a5b6c7d")

func TestChannel(t *testing.T) {
	got := Channel(testSession)
	if got != "session:3b9d5a2c-0f4e-4f7a-8c1d-2e3f4a5b6c7d:updates" {
		t.Fatalf("Channel() = %q", got)
	}
	if len(got) > 63 {
		t.Fatalf("channel name is %d bytes, longer than a Postgres identifier", len(got))
	}
}

func TestNewEventEncodes(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC))
	payload, err := NewEvent(clock, TeamUpdate, testSession).Encode()
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"type":        "team_update",
		"session_id":  testSession.String(),
		"occurred_at": "2024-01-01T18:00:00Z",
	}
	for k, v := range want {
		if decoded[k] != v {
			t.Errorf("%s = %q, want %q", k, decoded[k], v)
		}
	}
}

type recordingSink struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (s *recordingSink) Deliver(sessionID uuid.UUID, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, payload)
}

func TestLocalPublisherPreservesOrder(t *testing.T) {
	clock := clockwork.NewFakeClock()
	sink := &recordingSink{}
	pub := NewLocalPublisher(sink)

	for _, kind := range []EventKind{TeamUpdate, GameUpdate, TeamUpdate} {
		if err := pub.Publish(context.Background(), NewEvent(clock, kind, testSession)); err != nil {
			t.Fatal(err)
		}
	}

	var kinds []string
	for _, p := range sink.payloads {
		var ev ChangeEvent
		if err := json.Unmarshal(p, &ev); err != nil {
			t.Fatal(err)
		}
		kinds = append(kinds, string(ev.Type))
	}
	if len(kinds) != 3 || kinds[0] != "team_update" || kinds[1] != "game_update" || kinds[2] != "team_update" {
		t.Fatalf("delivered kinds = %v", kinds)
	}
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, ChangeEvent) error {
	return errors.New("nats: connection closed")
}

type publishCounts struct {
	ok, failed int
}

func (c *publishCounts) RecordPublish(kind string, success bool) {
	if success {
		c.ok++
	} else {
		c.failed++
	}
}

func TestAnnounceSwallowsFailure(t *testing.T) {
	counts := &publishCounts{}
	Announce(context.Background(), failingPublisher{}, NewEvent(clockwork.NewFakeClock(), GameUpdate, testSession), counts)
	if counts.failed != 1 || counts.ok != 0 {
		t.Fatalf("counts = %+v", counts)
	}

	Announce(context.Background(), NewLocalPublisher(&recordingSink{}), NewEvent(clockwork.NewFakeClock(), GameUpdate, testSession), counts)
	if counts.ok != 1 {
		t.Fatalf("counts = %+v", counts)
	}
}

type fakeExecer struct {
	sql  string
	args []any
}

func (f *fakeExecer) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql = sql
	f.args = args
	return pgconn.NewCommandTag("SELECT 1"), nil
}

func TestPostgresBrokerPublishUsesPgNotify(t *testing.T) {
	db := &fakeExecer{}
	broker := &PostgresBroker{db: db, handlers: map[string]func([]byte){}}

	if err := broker.Publish(context.Background(), NewEvent(clockwork.NewFakeClock(), TeamUpdate, testSession)); err != nil {
		t.Fatal(err)
	}
	if db.sql != "SELECT pg_notify($1, $2)" {
		t.Fatalf("sql = %q", db.sql)
	}
	if db.args[0] != Channel(testSession) {
		t.Fatalf("channel arg = %v", db.args[0])
	}
	var ev ChangeEvent
	if err := json.Unmarshal([]byte(db.args[1].(string)), &ev); err != nil || ev.Type != TeamUpdate {
		t.Fatalf("payload arg = %v (%v)", db.args[1], err)
	}
}
