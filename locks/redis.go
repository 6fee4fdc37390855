package locks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "campsite:lock:"
	defaultTTL = 30 * time.Second
)

// releaseScript deletes the key only if it still holds our token, so an
// expired lock taken over by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker shares locks across every instance connected to the same Redis.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisLocker{client: client, ttl: ttl}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	k := keyPrefix + key
	token := uuid.NewString()

	_, err := l.client.SetArgs(ctx, k, token, redis.SetArgs{Mode: "NX", TTL: l.ttl}).Result()
	if err == redis.Nil {
		return nil, ErrLocked
	}
	if err != nil {
		return nil, fmt.Errorf("redis lock %s: %w", key, err)
	}

	return func() {
		// the request context may already be cancelled here
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{k}, token).Err(); err != nil {
			log.Printf("⚠️ failed to release lock %s: %v", k, err)
		}
	}, nil
}
