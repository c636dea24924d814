package cache

import (
	"context"
	"time"
)

// Cache is the read-through store for generated evaluation reports. Values
// are stored as JSON; a miss never carries an error when the value is simply
// absent or unreadable.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
