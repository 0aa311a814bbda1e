package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ignite/pagecraft/internal/domain"
	"github.com/ignite/pagecraft/internal/service/campaign"
)

// CampaignRepo implements campaign.Repository in memory.
type CampaignRepo struct {
	mu        sync.RWMutex
	lastID    int64
	campaigns map[int64]*domain.Campaign
	now       func() time.Time
}

// NewCampaignRepo creates a repository holding copies of seed.
func NewCampaignRepo(seed []domain.Campaign) *CampaignRepo {
	r := &CampaignRepo{campaigns: make(map[int64]*domain.Campaign), now: time.Now}
	for _, c := range seed {
		cp := c
		if cp.ID == 0 {
			r.lastID++
			cp.ID = r.lastID
		}
		r.lastID = max(r.lastID, cp.ID)
		r.campaigns[cp.ID] = &cp
	}
	return r
}

func (r *CampaignRepo) Get(_ context.Context, id int64) (*domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.campaigns[id]
	if !ok {
		return nil, campaign.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *CampaignRepo) List(_ context.Context, f campaign.ListFilter) ([]domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	search := strings.ToLower(f.Search)
	out := []domain.Campaign{}
	for _, c := range r.campaigns {
		if f.Status != "" && !strings.EqualFold(string(c.Status), f.Status) {
			continue
		}
		if f.Type != "" && !strings.EqualFold(string(c.Type), f.Type) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Title), search) &&
			!strings.Contains(strings.ToLower(c.Description), search) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *CampaignRepo) Create(_ context.Context, c *domain.Campaign) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastID++
	cp := *c
	cp.ID = r.lastID
	r.campaigns[cp.ID] = &cp
	return cp.ID, nil
}

func (r *CampaignRepo) Update(_ context.Context, id int64, u campaign.UpdateFields) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok {
		return nil, campaign.ErrNotFound
	}
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.Type != nil {
		c.Type = *u.Type
	}
	if u.DiscountPercentage != nil {
		c.DiscountPercentage = *u.DiscountPercentage
	}
	if u.TargetAudience != nil {
		c.TargetAudience = *u.TargetAudience
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.Status != nil {
		c.Status = *u.Status
	}
	if u.GeneratedContent != nil {
		gc := *u.GeneratedContent
		c.GeneratedContent = &gc
	}
	now := r.now().UTC()
	c.UpdatedAt = &now
	cp := *c
	return &cp, nil
}

func (r *CampaignRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.campaigns[id]; !ok {
		return campaign.ErrNotFound
	}
	delete(r.campaigns, id)
	return nil
}
