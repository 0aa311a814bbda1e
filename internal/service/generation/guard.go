package generation

import (
	"context"
	"fmt"
	"sync"

	"github.com/ignite/pagecraft/internal/pkg/distlock"
	"github.com/ignite/pagecraft/internal/pkg/logger"
	"github.com/ignite/pagecraft/internal/pkg/metrics"
)

// Guard tracks the subjects with a generation in flight. With a lock
// factory it also takes a distributed lock per subject so that several
// instances share the rule.
type Guard struct {
	mu     sync.Mutex
	active map[string]context.CancelFunc
	locks  distlock.Factory
}

// NewGuard creates a guard. locks may be nil for a single instance.
func NewGuard(locks distlock.Factory) *Guard {
	return &Guard{active: make(map[string]context.CancelFunc), locks: locks}
}

// Acquire marks key as generating. It returns a context that Cancel(key)
// cancels and a release func that must run on every exit path; release is
// safe to call more than once.
func (g *Guard) Acquire(ctx context.Context, key string) (context.Context, func(), error) {
	g.mu.Lock()
	if _, busy := g.active[key]; busy {
		g.mu.Unlock()
		return nil, nil, ErrConcurrentGeneration
	}
	gctx, cancel := context.WithCancel(ctx)
	g.active[key] = cancel
	g.mu.Unlock()

	var lock distlock.DistLock
	if g.locks != nil {
		lock = g.locks("generation:" + key)
		ok, err := lock.Acquire(ctx)
		if err != nil || !ok {
			g.forget(key)
			cancel()
			if err != nil {
				return nil, nil, fmt.Errorf("subject lock %q: %w", key, err)
			}
			return nil, nil, ErrConcurrentGeneration
		}
	}
	metrics.GenerationsInFlight.Inc()

	var once sync.Once
	release := func() {
		once.Do(func() {
			if lock != nil {
				if err := lock.Release(context.Background()); err != nil {
					logger.Warn("subject lock release failed", "subject", key, "error", err)
				}
			}
			g.forget(key)
			cancel()
			metrics.GenerationsInFlight.Dec()
		})
	}
	return gctx, release, nil
}

func (g *Guard) forget(key string) {
	g.mu.Lock()
	delete(g.active, key)
	g.mu.Unlock()
}

// Active reports whether a generation for key is in flight in this process.
func (g *Guard) Active(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.active[key]
	return ok
}

// Cancel cancels the in-flight generation for key. The generation still
// releases the guard itself.
func (g *Guard) Cancel(key string) bool {
	g.mu.Lock()
	cancel, ok := g.active[key]
	g.mu.Unlock()
	if ok {
		cancel()
	}
	return ok
}
