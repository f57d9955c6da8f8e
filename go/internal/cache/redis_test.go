package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/apperrors"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisStore(client)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, store := newTestRedis(t)
	session := uuid.New()
	view := NewView(store, ViewTeams, nil)

	if _, ok, err := view.Get(ctx, session); err != nil || ok {
		t.Fatalf("Get() on empty = %v, %v", ok, err)
	}

	view.Populate(ctx, session, []byte(`[{"id":"1"}]`))
	got, err := mr.Get(Key(session, ViewTeams))
	if err != nil || got != `[{"id":"1"}]` {
		t.Fatalf("raw redis value = %q, %v", got, err)
	}
	if ttl := mr.TTL(Key(session, ViewTeams)); ttl != 0 {
		t.Fatalf("TTL = %s, want none", ttl)
	}

	if err := view.Invalidate(ctx, session); err != nil {
		t.Fatal(err)
	}
	if mr.Exists(Key(session, ViewTeams)) {
		t.Fatal("key still present after Invalidate")
	}
}

func TestRedisStoreUnavailable(t *testing.T) {
	mr, store := newTestRedis(t)
	mr.Close()

	view := NewView(store, ViewTeams, nil)
	if _, _, err := view.Get(context.Background(), uuid.New()); !errors.Is(err, apperrors.ErrUpstream) {
		t.Fatalf("Get() error = %v, want upstream", err)
	}
	if err := store.Ping(context.Background()); err == nil {
		t.Fatal("Ping() succeeded against a closed server")
	}
}

func TestDialRedisBadURL(t *testing.T) {
	if _, err := DialRedis(context.Background(), "not a url"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestKVKeyMapping(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	if got := kvKey(Key(id, ViewGames)); got != "session.00000000-0000-0000-0000-000000000001.games" {
		t.Fatalf("kvKey() = %q", got)
	}
}
