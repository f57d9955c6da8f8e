package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCheckerAllHealthy(t *testing.T) {
	c := NewChecker(time.Second)
	c.Add("database", func(context.Context) error { return nil })
	c.Add("cache", func(context.Context) error { return nil })

	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got Status
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Healthy || got.Checks["database"] != "up" || got.Checks["cache"] != "up" {
		t.Errorf("status = %+v", got)
	}
}

func TestCheckerReportsFailure(t *testing.T) {
	c := NewChecker(time.Second)
	c.Add("database", func(context.Context) error { return nil })
	c.Add("broadcast", func(context.Context) error { return errors.New("nats disconnected") })

	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var got Status
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Healthy || got.Checks["broadcast"] != "down" || len(got.Errors) != 1 {
		t.Errorf("status = %+v", got)
	}
}

func TestCheckerTimeout(t *testing.T) {
	c := NewChecker(20 * time.Millisecond)
	c.Add("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	status := c.Check(context.Background())
	if status.Healthy {
		t.Fatal("Check() healthy with a hung dependency")
	}
}
