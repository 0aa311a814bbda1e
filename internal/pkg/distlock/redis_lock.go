package distlock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "pagecraft:lock:"

var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	end
	return 0
`)

// RedisLock is a SET NX lock with a TTL and a random ownership token.
type RedisLock struct {
	client redis.UniversalClient
	key    string
	token  string
	ttl    time.Duration
}

// NewRedisLock creates a lock on key. The TTL bounds how long a crashed
// holder can block others.
func NewRedisLock(client redis.UniversalClient, key string, ttl time.Duration) *RedisLock {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return &RedisLock{
		client: client,
		key:    keyPrefix + key,
		token:  hex.EncodeToString(b),
		ttl:    ttl,
	}
}

func (l *RedisLock) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key, l.token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", l.key, err)
	}
	return ok, nil
}

func (l *RedisLock) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.key, err)
	}
	return nil
}
