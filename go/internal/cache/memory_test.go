package cache

import (
	"context"
	"testing"
)

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	in := []byte("abc")
	if err := s.Set(ctx, "k", in); err != nil {
		t.Fatal(err)
	}
	in[0] = 'z'

	out, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || string(out) != "abc" {
		t.Fatalf("Get() = %q, %v, %v", out, ok, err)
	}
	out[1] = 'z'
	again, _, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("stored value was mutated through Get: %q", again)
	}
}

func TestMemoryStoreDeleteMissingKey(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Delete(context.Background(), "absent"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
}
