package generation

import (
	"sync"

	"github.com/ignite/pagecraft/internal/domain"
)

// Store is the in-memory generation log. Ids come from a single counter
// under the same mutex as the log, so they are unique and strictly
// increasing across all subjects.
type Store struct {
	mu     sync.Mutex
	lastID int64
	log    []domain.GeneratedVariant
	index  map[int64]int
}

func NewStore() *Store {
	return &Store{index: make(map[int64]int)}
}

// Append assigns ids to variants in order, records them and returns the
// stored copies.
func (s *Store) Append(variants []domain.GeneratedVariant) []domain.GeneratedVariant {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.GeneratedVariant, len(variants))
	for i, v := range variants {
		s.lastID++
		v.ID = s.lastID
		s.index[v.ID] = len(s.log)
		s.log = append(s.log, v)
		out[i] = v
	}
	return out
}

// Get returns the variant with the given id.
func (s *Store) Get(id int64) (domain.GeneratedVariant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return domain.GeneratedVariant{}, false
	}
	return s.log[i], true
}

// Update applies fn to the stored variant and returns the result.
func (s *Store) Update(id int64, fn func(v *domain.GeneratedVariant)) (domain.GeneratedVariant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return domain.GeneratedVariant{}, false
	}
	fn(&s.log[i])
	return s.log[i], true
}

// BySubject returns the variants recorded for key, newest first.
func (s *Store) BySubject(key string) []domain.GeneratedVariant {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.GeneratedVariant{}
	for i := len(s.log) - 1; i >= 0; i-- {
		if s.log[i].SubjectKey == key {
			out = append(out, s.log[i])
		}
	}
	return out
}

// LastID returns the highest id handed out so far.
func (s *Store) LastID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastID
}

// Len returns the number of recorded variants.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.log)
}
