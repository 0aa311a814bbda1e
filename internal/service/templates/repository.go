package templates

import (
	"context"

	"github.com/ignite/pagecraft/internal/domain"
)

// Repository defines the data access contract for description templates.
// Implementations must be safe for concurrent use.
type Repository interface {
	// List returns all templates ordered by id.
	List(ctx context.Context) ([]domain.DescriptionTemplate, error)

	// Get returns a single template. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id int64) (*domain.DescriptionTemplate, error)

	// Create inserts a template and returns its id.
	Create(ctx context.Context, t *domain.DescriptionTemplate) (int64, error)

	// Update applies the non-nil fields and stamps updated_at.
	Update(ctx context.Context, id int64, u UpdateFields) (*domain.DescriptionTemplate, error)

	// Delete removes a template. Returns ErrNotFound if it doesn't exist.
	Delete(ctx context.Context, id int64) error
}

// UpdateFields holds the mutable fields for a template update.
// Nil fields are not applied.
type UpdateFields struct {
	Name        *string          `json:"name"`
	Tone        *domain.Tone     `json:"tone"`
	Category    *string          `json:"category"`
	Structure   *string          `json:"structure"`
	Keywords    *domain.Features `json:"keywords"`
	Description *string          `json:"description"`
}
