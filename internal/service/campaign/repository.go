package campaign

import (
	"context"

	"github.com/ignite/pagecraft/internal/domain"
)

// Repository stores campaigns. The memory and postgres implementations
// both return ErrNotFound for unknown ids and list newest first.
type Repository interface {
	Get(ctx context.Context, id int64) (*domain.Campaign, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Campaign, error)
	Create(ctx context.Context, c *domain.Campaign) (int64, error)
	Update(ctx context.Context, id int64, u UpdateFields) (*domain.Campaign, error)
	Delete(ctx context.Context, id int64) error
}

// ListFilter narrows List. Empty fields match everything; Search is a
// case-insensitive substring of the title or description.
type ListFilter struct {
	Status string
	Type   string
	Search string
}

// UpdateFields is a partial update: nil pointers leave the stored value
// alone.
type UpdateFields struct {
	Title              *string                 `json:"title"`
	Type               *domain.CampaignType    `json:"type"`
	DiscountPercentage *string                 `json:"discount_percentage"`
	TargetAudience     *string                 `json:"target_audience"`
	Description        *string                 `json:"description"`
	Status             *domain.CampaignStatus  `json:"status"`
	GeneratedContent   *domain.CampaignContent `json:"generated_content"`
}

// IsEmpty reports whether u changes nothing.
func (u UpdateFields) IsEmpty() bool {
	return u.Title == nil && u.Type == nil && u.DiscountPercentage == nil &&
		u.TargetAudience == nil && u.Description == nil && u.Status == nil &&
		u.GeneratedContent == nil
}
