// Package distlock provides cross-process locks keyed by string. The
// generation guard uses it so that two server replicas never compose
// descriptions for the same subject at the same time.
package distlock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotHeld is returned by Release when the lock was already gone.
var ErrNotHeld = errors.New("distlock: lock not held")

// DistLock is a single named lock. An instance tracks its own ownership
// token, so each holder must create its own instance.
type DistLock interface {
	// Acquire tries to take the lock without blocking.
	Acquire(ctx context.Context) (bool, error)
	// Release gives the lock up if this instance still owns it.
	Release(ctx context.Context) error
}

// Factory builds locks for arbitrary keys.
type Factory func(key string) DistLock

// NewFactory returns a Factory backed by Redis when a client is given and
// by PostgreSQL advisory locks when only a database is given. It returns
// nil when neither backend is configured.
func NewFactory(redisClient redis.UniversalClient, db *sql.DB, ttl time.Duration) Factory {
	switch {
	case redisClient != nil:
		return func(key string) DistLock { return NewRedisLock(redisClient, key, ttl) }
	case db != nil:
		return func(key string) DistLock { return NewPGAdvisoryLock(db, key) }
	default:
		return nil
	}
}

// PGAdvisoryLock implements DistLock with session-scoped advisory locks.
// Acquire pins one pooled connection and Release unlocks on that same
// connection before returning it to the pool.
type PGAdvisoryLock struct {
	db     *sql.DB
	lockID int64
	conn   *sql.Conn
}

// NewPGAdvisoryLock derives a stable advisory lock id from key.
func NewPGAdvisoryLock(db *sql.DB, key string) *PGAdvisoryLock {
	h := fnv.New64a()
	h.Write([]byte(keyPrefix + key))
	return &PGAdvisoryLock{db: db, lockID: int64(h.Sum64())}
}

func (l *PGAdvisoryLock) Acquire(ctx context.Context) (bool, error) {
	if l.conn != nil {
		return false, nil
	}
	conn, err := l.db.Conn(ctx)
	if err != nil {
		return false, fmt.Errorf("advisory lock conn: %w", err)
	}
	var acquired bool
	if err := conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", l.lockID).Scan(&acquired); err != nil {
		conn.Close()
		return false, fmt.Errorf("advisory lock %d: %w", l.lockID, err)
	}
	if !acquired {
		conn.Close()
		return false, nil
	}
	l.conn = conn
	return true, nil
}

// Release returns ErrNotHeld when the session no longer held the lock.
func (l *PGAdvisoryLock) Release(ctx context.Context) error {
	if l.conn == nil {
		return nil
	}
	conn := l.conn
	l.conn = nil
	defer conn.Close()

	var released bool
	if err := conn.QueryRowContext(ctx, "SELECT pg_advisory_unlock($1)", l.lockID).Scan(&released); err != nil {
		return fmt.Errorf("advisory unlock %d: %w", l.lockID, err)
	}
	if !released {
		return ErrNotHeld
	}
	return nil
}
