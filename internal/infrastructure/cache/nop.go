package cache

import (
	"context"
	"time"
)

// NopCache is used when Redis is unavailable at start-up.
// Every read misses and every write succeeds without storing anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (NopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (NopCache) Delete(context.Context, ...string) error { return nil }

func (NopCache) DeletePattern(context.Context, string) error { return nil }

func (NopCache) Ping(context.Context) error { return nil }

func (NopCache) IncrementWindow(context.Context, string, time.Duration) (int64, error) {
	return 0, nil
}

func (NopCache) TTL(context.Context, string) (time.Duration, error) { return 0, nil }
