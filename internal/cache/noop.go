package cache

import (
	"context"
	"time"
)

// Noop stands in when Redis is unreachable at startup: every read is a miss
// and writes are discarded, so caching degrades without affecting correctness.
type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) GetJSON(ctx context.Context, key string, dst any) (bool, error) { return false, nil }

func (Noop) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error { return nil }

func (Noop) Del(ctx context.Context, keys ...string) error { return nil }
