package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ignite/pagecraft/internal/domain"
	"github.com/ignite/pagecraft/internal/service/templates"
)

// TemplateRepo implements templates.Repository in memory.
type TemplateRepo struct {
	mu        sync.RWMutex
	lastID    int64
	templates map[int64]*domain.DescriptionTemplate
	now       func() time.Time
}

// NewTemplateRepo creates a repository holding copies of seed.
func NewTemplateRepo(seed []domain.DescriptionTemplate) *TemplateRepo {
	r := &TemplateRepo{templates: make(map[int64]*domain.DescriptionTemplate), now: time.Now}
	for _, t := range seed {
		cp := t
		if cp.ID == 0 {
			r.lastID++
			cp.ID = r.lastID
		}
		r.lastID = max(r.lastID, cp.ID)
		r.templates[cp.ID] = &cp
	}
	return r
}

func (r *TemplateRepo) List(_ context.Context) ([]domain.DescriptionTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.DescriptionTemplate, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TemplateRepo) Get(_ context.Context, id int64) (*domain.DescriptionTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[id]
	if !ok {
		return nil, templates.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *TemplateRepo) Create(_ context.Context, t *domain.DescriptionTemplate) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastID++
	cp := *t
	cp.ID = r.lastID
	cp.CreatedAt = r.now().UTC()
	r.templates[cp.ID] = &cp
	return cp.ID, nil
}

func (r *TemplateRepo) Update(_ context.Context, id int64, u templates.UpdateFields) (*domain.DescriptionTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.templates[id]
	if !ok {
		return nil, templates.ErrNotFound
	}
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Tone != nil {
		t.Tone = *u.Tone
	}
	if u.Category != nil {
		t.Category = *u.Category
	}
	if u.Structure != nil {
		t.Structure = *u.Structure
	}
	if u.Keywords != nil {
		t.Keywords = *u.Keywords
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	now := r.now().UTC()
	t.UpdatedAt = &now
	cp := *t
	return &cp, nil
}

func (r *TemplateRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[id]; !ok {
		return templates.ErrNotFound
	}
	delete(r.templates, id)
	return nil
}
