package campaign

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ignite/pagecraft/internal/copywriter"
	"github.com/ignite/pagecraft/internal/domain"
	"github.com/ignite/pagecraft/internal/pkg/logger"
)

// Service implements campaign business logic. All public methods are safe
// for concurrent use if the underlying repository is concurrency-safe.
type Service struct {
	repo   Repository
	engine *copywriter.TemplateEngine
	rnd    copywriter.Rand
	now    func() time.Time
}

// NewService creates a campaign service backed by the given repository.
// rnd picks the body template of generated content.
func NewService(repo Repository, engine *copywriter.TemplateEngine, rnd copywriter.Rand) *Service {
	return &Service{repo: repo, engine: engine, rnd: rnd, now: time.Now}
}

// Get returns a single campaign.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Campaign, error) {
	return s.repo.Get(ctx, id)
}

// List returns campaigns matching the filter.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.Campaign, error) {
	return s.repo.List(ctx, f)
}

// CreateInput holds the fields for creating a new campaign.
type CreateInput struct {
	Title              string                  `json:"title"`
	Type               domain.CampaignType     `json:"type"`
	DiscountPercentage string                  `json:"discount_percentage"`
	TargetAudience     string                  `json:"target_audience"`
	Description        string                  `json:"description"`
	Status             domain.CampaignStatus   `json:"status"`
	GeneratedContent   *domain.CampaignContent `json:"generated_content"`
}

// Create validates and persists a new campaign, in draft status unless
// another status is given.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Campaign, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if _, ok := contentBanks[in.Type]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCampaignType, in.Type)
	}
	if err := validStatus(in.Status); err != nil {
		return nil, err
	}

	c := &domain.Campaign{
		Title:              strings.TrimSpace(in.Title),
		Type:               in.Type,
		DiscountPercentage: in.DiscountPercentage,
		TargetAudience:     in.TargetAudience,
		Description:        in.Description,
		Status:             in.Status,
		GeneratedContent:   in.GeneratedContent,
		CreatedAt:          s.now().UTC(),
	}
	if c.Status == "" {
		c.Status = domain.CampaignDraft
	}

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	logger.Info("campaign created", "id", id, "type", string(c.Type))
	return c, nil
}

// Update modifies mutable campaign fields. An empty update returns the
// stored campaign unchanged.
func (s *Service) Update(ctx context.Context, id int64, u UpdateFields) (*domain.Campaign, error) {
	if u.IsEmpty() {
		return s.repo.Get(ctx, id)
	}
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if u.Type != nil {
		if _, ok := contentBanks[*u.Type]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCampaignType, *u.Type)
		}
	}
	if u.Status != nil {
		if err := validStatus(*u.Status); err != nil {
			return nil, err
		}
	}
	return s.repo.Update(ctx, id, u)
}

// Delete removes a campaign.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ContentRequest describes the campaign to write landing-page copy for.
type ContentRequest struct {
	Type               domain.CampaignType `json:"type"`
	DiscountPercentage string              `json:"discount_percentage"`
	TargetAudience     string              `json:"target_audience"`
}

// GenerateContent renders landing-page copy for a campaign type: the first
// three headlines, one randomly chosen body and the first four calls to
// action. A missing discount reads as "Special".
func (s *Service) GenerateContent(ctx context.Context, req ContentRequest) (*domain.CampaignContent, error) {
	bank, ok := contentBanks[req.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCampaignType, req.Type)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	discount := strings.TrimSpace(req.DiscountPercentage)
	discounted := discount != ""
	if !discounted {
		discount = "Special"
	}
	bindings := map[string]interface{}{
		"discount": discount,
		"audience": req.TargetAudience,
	}

	out := &domain.CampaignContent{GeneratedAt: s.now().UTC()}
	for i, src := range bank.headlines[:maxHeadlines] {
		h, err := s.engine.Render(s.templateID(req.Type, "headline", i), src, bindings)
		if err != nil {
			return nil, err
		}
		out.Headlines = append(out.Headlines, swapEmoji(h, discounted))
	}

	bi := s.rnd.Intn(len(bank.bodies))
	body, err := s.engine.Render(s.templateID(req.Type, "body", bi), bank.bodies[bi], bindings)
	if err != nil {
		return nil, err
	}
	out.BodyText = body

	for i, src := range bank.ctas[:maxCTAs] {
		cta, err := s.engine.Render(s.templateID(req.Type, "cta", i), src, bindings)
		if err != nil {
			return nil, err
		}
		out.CTAButtons = append(out.CTAButtons, cta)
	}
	return out, nil
}

func (s *Service) templateID(t domain.CampaignType, part string, i int) string {
	return fmt.Sprintf("campaign/%s/%s/%d", t, part, i)
}

func validStatus(st domain.CampaignStatus) error {
	switch st {
	case "", domain.CampaignDraft, domain.CampaignPublished:
		return nil
	}
	return fmt.Errorf("%w: unknown status %q", ErrValidation, st)
}
