// Package cache is the JSON key-value layer in front of the profile
// store. Misses and backend errors are interchangeable to callers; the
// source of truth is always Postgres.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
