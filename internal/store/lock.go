package store

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Mutex a Redis-backed per-key lock. Rollup recomputation is an
// overwrite of a singleton row, so two recomputations of the same
// (agent, area, date|week) key must not interleave; each acquires the
// key's mutex first. The TTL bounds how long a crashed holder can block
// the key.
type Mutex struct {
	client *redis.Client
	ttl    time.Duration
}

// releaseScript deletes the key only if the caller still owns it, so an
// expired-then-reacquired lock is never released by the old holder.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func NewMutex(client *redis.Client, ttl time.Duration) *Mutex {
	return &Mutex{client: client, ttl: ttl}
}

// Lock blocks until the key mutex is acquired or ctx is done. Returns
// the ownership token to pass to Unlock.
func (m *Mutex) Lock(ctx context.Context, key string) (string, error) {
	token := uuid.NewString()
	for {
		ok, err := m.client.SetNX(ctx, key, token, m.ttl).Result()
		if err != nil {
			return "", fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			return token, nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}

// Unlock releases the key if token still owns it.
func (m *Mutex) Unlock(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, m.client, []string{key}, token).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("failed to release lock %s: %w", key, err)
	}
	return nil
}
