package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/ignite/pagecraft/internal/domain"
	"github.com/ignite/pagecraft/internal/pkg/httpretry"
	"github.com/ignite/pagecraft/internal/pkg/logger"
)

const (
	importedCategory = "Imported"
	maxFeedBytes     = 10 << 20
)

// Service implements catalog business logic.
type Service struct {
	repo   Repository
	parser *gofeed.Parser
	client httpretry.Doer
	now    func() time.Time
}

// NewService creates a catalog service backed by the given repository.
// Feeds are fetched through a retrying HTTP client.
func NewService(repo Repository) *Service {
	return &Service{
		repo:   repo,
		parser: gofeed.NewParser(),
		client: httpretry.New(nil, httpretry.Options{}),
		now:    time.Now,
	}
}

// SetHTTPClient replaces the client used by ImportURL.
func (s *Service) SetHTTPClient(c httpretry.Doer) {
	s.client = c
}

// List returns products matching the filter. Unknown sort keys fall back
// to name order.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.Product, error) {
	switch f.Sort {
	case domain.SortByName, domain.SortByNameDesc, domain.SortByPrice, domain.SortByPriceDesc:
	default:
		f.Sort = domain.SortByName
	}
	f.Query = strings.TrimSpace(f.Query)
	if strings.EqualFold(f.Category, domain.AllCategories) {
		f.Category = ""
	}
	return s.repo.List(ctx, f)
}

// Get returns a single product.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.Get(ctx, id)
}

// Categories returns "All" followed by the sorted distinct categories.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	cats, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return append([]string{domain.AllCategories}, cats...), nil
}

// UpdateDescription saves the chosen description on a product and stamps
// it as generated now.
func (s *Service) UpdateDescription(ctx context.Context, id int64, description string) (*domain.Product, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	return s.repo.UpdateDescription(ctx, id, description, s.now().UTC())
}

// ImportResult summarizes a feed import.
type ImportResult struct {
	Feed     string           `json:"feed"`
	Imported []domain.Product `json:"imported"`
	Skipped  int              `json:"skipped"`
}

// ImportURL fetches a product feed and upserts one product per item.
func (s *Service) ImportURL(ctx context.Context, url string) (*ImportResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: feed url: %v", ErrValidation, err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", ErrFeedUnavailable, req.URL.Host, resp.StatusCode)
	}
	return s.Import(ctx, io.LimitReader(resp.Body, maxFeedBytes))
}

// Import parses a product feed document and upserts one product per item.
func (s *Service) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	feed, err := s.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parse feed: %v", ErrValidation, err)
	}
	return s.importFeed(ctx, feed)
}

func (s *Service) importFeed(ctx context.Context, feed *gofeed.Feed) (*ImportResult, error) {
	res := &ImportResult{Feed: feed.Title, Imported: []domain.Product{}}
	for _, item := range feed.Items {
		p, ok := productFromItem(item)
		if !ok {
			res.Skipped++
			continue
		}
		id, err := s.repo.Upsert(ctx, &p)
		if err != nil {
			return res, fmt.Errorf("import %q: %w", p.SKU, err)
		}
		p.ID = id
		res.Imported = append(res.Imported, p)
	}
	logger.Info("product feed imported", "feed", feed.Title, "imported", len(res.Imported), "skipped", res.Skipped)
	return res, nil
}

// productFromItem maps a feed item to a product. Google Merchant
// extensions (g:id, g:price, g:product_type, g:image_link) win over the
// plain RSS fields when present.
func productFromItem(item *gofeed.Item) (domain.Product, bool) {
	p := domain.Product{
		Name:               strings.TrimSpace(item.Title),
		SKU:                merchantField(item, "id"),
		Category:           merchantField(item, "product_type"),
		Image:              merchantField(item, "image_link"),
		CurrentDescription: strings.TrimSpace(item.Description),
		Price:              parsePrice(merchantField(item, "price")),
	}
	if p.Name == "" {
		return p, false
	}
	if p.SKU == "" {
		p.SKU = item.GUID
	}
	if p.SKU == "" {
		p.SKU = item.Link
	}
	if p.SKU == "" {
		return p, false
	}
	if p.Category == "" && len(item.Categories) > 0 {
		p.Category = item.Categories[0]
	}
	if p.Category == "" {
		p.Category = importedCategory
	}
	if p.Image == "" && item.Image != nil {
		p.Image = item.Image.URL
	}
	if p.Image == "" {
		for _, enc := range item.Enclosures {
			if strings.HasPrefix(enc.Type, "image/") {
				p.Image = enc.URL
				break
			}
		}
	}
	return p, true
}

func merchantField(item *gofeed.Item, name string) string {
	ext, ok := item.Extensions["g"]
	if !ok {
		return ""
	}
	if vals := ext[name]; len(vals) > 0 {
		return strings.TrimSpace(vals[0].Value)
	}
	return ""
}

// parsePrice reads "19.99 USD" or "19.99".
func parsePrice(s string) float64 {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return v
}
