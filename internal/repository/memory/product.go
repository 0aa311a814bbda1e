package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ignite/pagecraft/internal/domain"
	"github.com/ignite/pagecraft/internal/service/catalog"
)

// ProductRepo implements catalog.Repository in memory.
type ProductRepo struct {
	mu       sync.RWMutex
	lastID   int64
	products map[int64]*domain.Product
}

// NewProductRepo creates a repository holding copies of seed.
func NewProductRepo(seed []domain.Product) *ProductRepo {
	r := &ProductRepo{products: make(map[int64]*domain.Product)}
	for _, p := range seed {
		cp := p
		if cp.ID == 0 {
			r.lastID++
			cp.ID = r.lastID
		}
		r.lastID = max(r.lastID, cp.ID)
		r.products[cp.ID] = &cp
	}
	return r
}

func (r *ProductRepo) List(_ context.Context, f catalog.ListFilter) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(f.Query)
	out := []domain.Product{}
	for _, p := range r.products {
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) &&
			!strings.Contains(strings.ToLower(p.SKU), q) {
			continue
		}
		out = append(out, *p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch f.Sort {
		case domain.SortByNameDesc:
			return strings.ToLower(a.Name) > strings.ToLower(b.Name)
		case domain.SortByPrice:
			return a.Price < b.Price || (a.Price == b.Price && a.ID < b.ID)
		case domain.SortByPriceDesc:
			return a.Price > b.Price || (a.Price == b.Price && a.ID < b.ID)
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	})
	return out, nil
}

func (r *ProductRepo) Get(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) UpdateDescription(_ context.Context, id int64, description string, at time.Time) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	p.CurrentDescription = description
	p.LastGenerated = &at
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) Categories(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[string]bool{}
	out := []string{}
	for _, p := range r.products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *ProductRepo) Upsert(_ context.Context, p *domain.Product) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.products {
		if existing.SKU == p.SKU {
			cp := *p
			cp.ID = id
			cp.LastGenerated = existing.LastGenerated
			r.products[id] = &cp
			return id, nil
		}
	}
	r.lastID++
	cp := *p
	cp.ID = r.lastID
	r.products[cp.ID] = &cp
	return cp.ID, nil
}
