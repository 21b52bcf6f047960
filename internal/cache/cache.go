// Package cache holds short-lived copies of read-mostly data such as the
// article list. A failed cache never fails a request: callers fall back to
// the repository.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

type Cache interface {
	// Get decodes the cached value for key into dst.
	Get(ctx context.Context, key string, dst any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Noop never stores anything. Used when no Redis URL is configured or the
// server could not be reached at startup.
type Noop struct{}

func (Noop) Get(context.Context, string, any) error { return ErrMiss }

func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }

func (Noop) Delete(context.Context, ...string) error { return nil }
