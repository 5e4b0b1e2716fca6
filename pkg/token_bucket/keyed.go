package token_bucket

import (
	"sync"
	"time"
)

// Keyed набор независимых ведер по ключу (например, по водителю).
type Keyed struct {
	capacity   int
	refillRate float64

	now        Clock

	mu       sync.Mutex
	buckets  map[string]*TokenBucket
	lastSeen map[string]time.Time
}

func NewKeyed(capacity int, refillRate float64) *Keyed {
	return NewKeyedWithClock(capacity, refillRate, time.Now)
}

func NewKeyedWithClock(capacity int, refillRate float64, now Clock) *Keyed {
	return &Keyed{
		capacity:   capacity,
		refillRate: refillRate,
		now:        now,
		buckets:    make(map[string]*TokenBucket),
		lastSeen:   make(map[string]time.Time),
	}
}

func (k *Keyed) Allow(key string) bool {
	k.mu.Lock()
	bucket, ok := k.buckets[key]
	if !ok {
		bucket = NewTokenBucketWithClock(k.capacity, k.refillRate, k.now)
		k.buckets[key] = bucket
	}
	k.lastSeen[key] = k.now()
	k.mu.Unlock()

	return bucket.Allow()
}

// Prune удаляет ведра, к которым не обращались дольше idle.
func (k *Keyed) Prune(idle time.Duration) {
	k.mu.Lock()
	defer k.mu.Unlock()

	cutoff := k.now().Add(-idle)
	for key, seen := range k.lastSeen {
		if seen.Before(cutoff) {
			delete(k.lastSeen, key)
			delete(k.buckets, key)
		}
	}
}

func (k *Keyed) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}
