package copywriter

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the source of phrase and body-template choices.
type Rand interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// lockedRand is a math/rand source that is safe for concurrent use.
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRand returns a concurrency-safe Rand. A zero seed seeds from the clock.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{rnd: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}
