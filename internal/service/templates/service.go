package templates

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ignite/pagecraft/internal/domain"
)

// Service implements the template library.
type Service struct {
	repo Repository
}

// NewService creates a template service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput holds the fields for creating a template.
type CreateInput struct {
	Name        string          `json:"name"`
	Tone        domain.Tone     `json:"tone"`
	Category    string          `json:"category"`
	Structure   string          `json:"structure"`
	Keywords    domain.Features `json:"keywords"`
	Description string          `json:"description"`
}

// List returns the templates for tone. An empty tone or "All" returns
// every template; otherwise tones compare case-insensitively.
func (s *Service) List(ctx context.Context, tone string) ([]domain.DescriptionTemplate, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if tone == "" || strings.EqualFold(tone, domain.AllCategories) {
		return all, nil
	}
	out := []domain.DescriptionTemplate{}
	for _, t := range all {
		if strings.EqualFold(string(t.Tone), tone) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Get returns a single template.
func (s *Service) Get(ctx context.Context, id int64) (*domain.DescriptionTemplate, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and stores a new template.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.DescriptionTemplate, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	t := &domain.DescriptionTemplate{
		Name:        strings.TrimSpace(in.Name),
		Tone:        domain.ToneOr(in.Tone, domain.ToneProfessional),
		Category:    in.Category,
		Structure:   in.Structure,
		Keywords:    domain.NormalizeFeatures(in.Keywords),
		Description: in.Description,
	}
	id, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Update applies the given fields to a template.
func (s *Service) Update(ctx context.Context, id int64, u UpdateFields) (*domain.DescriptionTemplate, error) {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	if u.Keywords != nil {
		kw := domain.NormalizeFeatures(*u.Keywords)
		u.Keywords = &kw
	}
	return s.repo.Update(ctx, id, u)
}

// Delete removes a template.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Facets lists the filter values offered by the library, each starting
// with "All".
type Facets struct {
	Tones      []string `json:"tones"`
	Categories []string `json:"categories"`
}

// Facets returns the distinct tones and categories of the library.
func (s *Service) Facets(ctx context.Context) (*Facets, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	tones := make([]string, 0, len(all))
	cats := make([]string, 0, len(all))
	for _, t := range all {
		tones = append(tones, string(t.Tone))
		cats = append(cats, t.Category)
	}
	return &Facets{Tones: withAll(tones), Categories: withAll(cats)}, nil
}

func withAll(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := []string{}
	for _, v := range values {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return append([]string{domain.AllCategories}, out...)
}
