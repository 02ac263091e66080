package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// SubmitGuard rejects a second submission of the same form while the first is in flight.
// Acquire hands out a token that Release must present, so a holder whose lock
// expired cannot free a lock taken since by someone else.
type SubmitGuard interface {
	Acquire(ctx context.Context, key string) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string) error
}

// ===============================
// Redis
// ===============================

type RedisSubmitGuard struct {
	client *redis.Client
	ttl    time.Duration
}

var _ SubmitGuard = (*RedisSubmitGuard)(nil)

func NewRedisSubmitGuard(client *redis.Client, ttl time.Duration) *RedisSubmitGuard {
	return &RedisSubmitGuard{client: client, ttl: ttl}
}

// releaseScript deletes the key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (g *RedisSubmitGuard) Acquire(ctx context.Context, key string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, lockKey(key), token, g.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("submit guard: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (g *RedisSubmitGuard) Release(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, g.client, []string{lockKey(key)}, token).Err(); err != nil {
		return fmt.Errorf("submit guard: %w", err)
	}
	return nil
}

func lockKey(key string) string {
	return "submit:" + key
}

// ===============================
// Noop
// ===============================

// NoopSubmitGuard is used when no redis is configured; the equipment row lock still serializes bookings.
type NoopSubmitGuard struct{}

var _ SubmitGuard = NoopSubmitGuard{}

func (NoopSubmitGuard) Acquire(context.Context, string) (string, bool, error) { return "", true, nil }
func (NoopSubmitGuard) Release(context.Context, string, string) error { return nil }
