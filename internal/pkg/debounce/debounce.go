package debounce

import (
	"context"
	"fmt"
	"time"

	"freight/pkg/token_bucket"
)

const keyPrefix = "freight:debounce:"

// Redis общий для всех реплик дребезг: первый SET NX PX в окне выигрывает.
type Redis struct {
	client setter
	window time.Duration
}

func NewRedis(client setter, window time.Duration) *Redis {
	return &Redis{
		client: client,
		window: window,
	}
}

func (d *Redis) Allow(ctx context.Context, key string) (bool, error) {
	ok, err := d.client.SetNX(ctx, keyPrefix+key, 1, d.window).Result()
	if err != nil {
		return false, fmt.Errorf("debounce set %s: %w", key, err)
	}
	return ok, nil
}

// Memory локальный дребезг одной реплики, когда Redis не настроен.
type Memory struct {
	buckets *token_bucket.Keyed
	window  time.Duration
}

func NewMemory(window time.Duration) *Memory {
	return &Memory{
		buckets: token_bucket.NewKeyed(1, 1/window.Seconds()),
		window:  window,
	}
}

func (d *Memory) Allow(_ context.Context, key string) (bool, error) {
	return d.buckets.Allow(key), nil
}

// Prune чистит ведра неактивных водителей; вызывается фоновой задачей.
func (d *Memory) Prune() {
	d.buckets.Prune(10 * d.window)
}
