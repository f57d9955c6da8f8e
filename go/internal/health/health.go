// Package health runs named dependency checks for the /health endpoint.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

type Status struct {
	Healthy bool              `json:"healthy"`
	Checks  map[string]string `json:"checks"`
	Errors  []string          `json:"errors"`
}

// Checker runs every registered check in parallel.
type Checker struct {
	timeout time.Duration

	mu     sync.RWMutex
	checks map[string]Check
}

func NewChecker(timeout time.Duration) *Checker {
	return &Checker{
		timeout: timeout,
		checks:  make(map[string]Check),
	}
}

// Add registers check under name, replacing any earlier one.
func (c *Checker) Add(name string, check Check) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

func (c *Checker) Check(ctx context.Context) Status {
	c.mu.RLock()
	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	checks := make(map[string]Check, len(c.checks))
	for name, check := range c.checks {
		checks[name] = check
	}
	c.mu.RUnlock()
	sort.Strings(names)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	results := make([]error, len(names))
	var g errgroup.Group
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			results[i] = checks[name](ctx)
			return nil
		})
	}
	_ = g.Wait()

	status := Status{
		Healthy: true,
		Checks:  make(map[string]string, len(names)),
		Errors:  []string{},
	}
	for i, name := range names {
		if err := results[i]; err != nil {
			status.Healthy = false
			status.Checks[name] = "down"
			status.Errors = append(status.Errors, name+": "+err.Error())
			continue
		}
		status.Checks[name] = "up"
	}
	return status
}

// ServeHTTP answers 200 when every check passes and 503 otherwise.
func (c *Checker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := c.Check(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if !status.Healthy {
		log.Warn().Strs("errors", status.Errors).Msg("health check failed")
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(status); err != nil {
		log.Debug().Err(err).Msg("failed to write health response")
	}
}
