package inflight

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultRedisPrefix = "stockpro:inflight:"
	DefaultRedisTTL    = 2 * time.Minute
)

// releaseScript deletes the key only if it still carries our token, so an
// expired lock re-acquired by another process is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Guard shared by every process that talks to the same Redis.
//
// Redis failures fail open: the request proceeds and a warning is logged.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis wraps client. ttl bounds how long a crashed holder can block a key.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}
	return &Redis{client: client, prefix: DefaultRedisPrefix, ttl: ttl}
}

// NewRedisFromURL parses a redis:// URL and builds a guard.
func NewRedisFromURL(rawURL string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return NewRedis(redis.NewClient(opts), ttl), nil
}

// Acquire sets the key with NX semantics or fails with *BusyError.
func (r *Redis) Acquire(ctx context.Context, key string) (func(), error) {
	if r == nil || r.client == nil {
		return func() {}, nil
	}

	redisKey := r.prefix + key
	token := uuid.NewString()

	ok, err := r.client.SetNX(ctx, redisKey, token, r.ttl).Result()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		slog.Warn("in-flight guard unavailable, continuing without it", "key", key, "error", err)
		return func() {}, nil
	}
	if !ok {
		return nil, &BusyError{Key: key}
	}

	return func() {
		// Release must run even when the request context was cancelled.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, r.client, []string{redisKey}, token).Err(); err != nil {
			slog.Warn("failed to release in-flight key", "key", key, "error", err)
		}
	}, nil
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}
