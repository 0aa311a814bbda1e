package catalog

import (
	"context"
	"time"

	"github.com/ignite/pagecraft/internal/domain"
)

// Repository defines the data access contract for products.
// Implementations must be safe for concurrent use.
type Repository interface {
	// List returns products matching the filter in the requested order.
	List(ctx context.Context, f ListFilter) ([]domain.Product, error)

	// Get returns a single product. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id int64) (*domain.Product, error)

	// UpdateDescription stores the chosen description and its timestamp.
	UpdateDescription(ctx context.Context, id int64, description string, at time.Time) (*domain.Product, error)

	// Categories returns the distinct product categories, sorted.
	Categories(ctx context.Context) ([]string, error)

	// Upsert inserts a product or updates the one with the same SKU and
	// returns its id.
	Upsert(ctx context.Context, p *domain.Product) (int64, error)
}

// ListFilter narrows and orders a product listing. Query matches name,
// category or SKU case-insensitively; an empty or "All" category matches
// everything.
type ListFilter struct {
	Query    string
	Category string
	Sort     domain.ProductSort
}
