package db

import (
	"context"
	"time"
)

// Bounded gives a read its upstream deadline.
func Bounded(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// Detached gives a mutation its upstream deadline while ignoring client
// cancellation, so a write that has started also finishes its invalidation
// and publish.
func Detached(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}
