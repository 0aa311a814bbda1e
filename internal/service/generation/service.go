package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ignite/pagecraft/internal/copywriter"
	"github.com/ignite/pagecraft/internal/domain"
	"github.com/ignite/pagecraft/internal/pkg/logger"
	"github.com/ignite/pagecraft/internal/pkg/metrics"
)

// advisorySuggestions accompany every generation result.
var advisorySuggestions = []string{
	"Consider adding emotional benefits",
	"Include specific use cases",
	"Mention warranty or guarantee",
}

// Options tunes a Service. Zero values take the defaults noted per field.
type Options struct {
	DefaultVariants int           // 3
	MaxVariants     int           // 10
	Latency         time.Duration // simulated model latency; 0 disables
	BulkDelay       time.Duration // pause between bulk items; 0 disables
}

// Service implements description generation. All public methods are safe
// for concurrent use.
type Service struct {
	composer *copywriter.Composer
	store    *Store
	guard    *Guard
	opts     Options
	now      func() time.Time
}

// NewService creates a generation service.
func NewService(composer *copywriter.Composer, store *Store, guard *Guard, opts Options) *Service {
	if opts.DefaultVariants <= 0 {
		opts.DefaultVariants = 3
	}
	if opts.MaxVariants <= 0 {
		opts.MaxVariants = 10
	}
	return &Service{
		composer: composer,
		store:    store,
		guard:    guard,
		opts:     opts,
		now:      time.Now,
	}
}

// Generate composes variants for one subject. Only one generation per
// subject key may run at a time; a second call fails with
// ErrConcurrentGeneration until the first returns.
func (s *Service) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	req, err := s.normalize(req)
	if err != nil {
		return nil, err
	}
	key := req.Key()
	tone := toneLabel(req.Tone)

	gctx, release, err := s.guard.Acquire(ctx, key)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues(tone, "rejected").Inc()
		return nil, err
	}
	defer release()

	start := time.Now()
	if err := sleep(gctx, s.opts.Latency); err != nil {
		metrics.GenerationsTotal.WithLabelValues(tone, "canceled").Inc()
		return nil, fmt.Errorf("generate %q: %w", key, err)
	}

	drafts, err := s.composer.Compose(req.SubjectName, req.Features, req.Tone, req.VariantCount)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues(tone, "error").Inc()
		return nil, fmt.Errorf("compose %q: %w", key, err)
	}

	createdAt := s.now().UTC()
	variants := make([]domain.GeneratedVariant, len(drafts))
	for i, d := range drafts {
		variants[i] = domain.GeneratedVariant{
			SubjectKey:   key,
			SubjectName:  req.SubjectName,
			Content:      d.Content,
			Tone:         d.Tone,
			Features:     d.Features,
			WordCount:    d.WordCount,
			CreatedAt:    createdAt,
			VariantIndex: d.VariantIndex,
			SEO:          copywriter.DeriveSEO(req.SubjectName, d.Features, d.Tone, d.Content),
		}
		metrics.VariantWordCount.Observe(float64(d.WordCount))
	}
	variants = s.store.Append(variants)

	elapsed := time.Since(start)
	metrics.GenerationsTotal.WithLabelValues(tone, "success").Inc()
	metrics.GenerationDuration.WithLabelValues(tone).Observe(elapsed.Seconds())
	logger.Debug("description generated", "subject", key, "tone", string(req.Tone), "variants", len(variants))

	return &domain.GenerationResult{
		SubjectKey:     key,
		Variants:       variants,
		Suggestions:    append([]string(nil), advisorySuggestions...),
		GenerationTime: elapsed,
	}, nil
}

// subjectKey is the key Generate reports for req, whether or not req is
// valid.
func subjectKey(req domain.GenerationRequest) string {
	req.SubjectName = strings.TrimSpace(req.SubjectName)
	req.SubjectKey = strings.TrimSpace(req.SubjectKey)
	return req.Key()
}

func (s *Service) normalize(req domain.GenerationRequest) (domain.GenerationRequest, error) {
	req.SubjectName = strings.TrimSpace(req.SubjectName)
	req.SubjectKey = strings.TrimSpace(req.SubjectKey)
	req.Features = domain.NormalizeFeatures(req.Features)

	switch {
	case req.SubjectName == "":
		return req, fmt.Errorf("%w: subject name is required", ErrValidation)
	case len(req.Features) == 0:
		return req, fmt.Errorf("%w: at least one feature is required", ErrValidation)
	case req.VariantCount < 0:
		return req, fmt.Errorf("%w: variant count must not be negative", ErrValidation)
	case req.VariantCount > s.opts.MaxVariants:
		return req, fmt.Errorf("%w: variant count must be at most %d", ErrValidation, s.opts.MaxVariants)
	}
	if req.VariantCount == 0 {
		req.VariantCount = s.opts.DefaultVariants
	}
	return req, nil
}

// BulkGenerate runs Generate for each request in order, pausing between
// items. Failures are recorded per item and never abort the run. Once ctx
// is done, the remaining items are recorded with the context error.
func (s *Service) BulkGenerate(ctx context.Context, reqs []domain.GenerationRequest) []domain.BulkItemResult {
	results := make([]domain.BulkItemResult, 0, len(reqs))
	failed := 0
	for i, req := range reqs {
		item := domain.BulkItemResult{SubjectKey: subjectKey(req)}

		var err error
		if i > 0 {
			err = sleep(ctx, s.opts.BulkDelay)
		} else {
			err = ctx.Err()
		}
		var res *domain.GenerationResult
		if err == nil {
			res, err = s.Generate(ctx, req)
		}

		if err != nil {
			failed++
			item.Status = domain.BulkError
			item.Error = err.Error()
			metrics.BulkItemsTotal.WithLabelValues(string(domain.BulkError)).Inc()
		} else {
			item.SubjectKey = res.SubjectKey
			item.Status = domain.BulkSuccess
			item.Variants = res.Variants
			metrics.BulkItemsTotal.WithLabelValues(string(domain.BulkSuccess)).Inc()
		}
		results = append(results, item)
	}

	logger.Info("bulk generation finished", "items", len(reqs), "failed", failed)
	return results
}

// RegenerateOptions overrides inputs copied from the prior variant.
type RegenerateOptions struct {
	SubjectName  string      `json:"subject_name,omitempty"`
	Tone         domain.Tone `json:"tone,omitempty"`
	VariantCount int         `json:"variant_count,omitempty"`
}

// Regenerate produces a fresh set of variants from the inputs of a prior
// variant. The prior variant is left untouched.
func (s *Service) Regenerate(ctx context.Context, variantID int64, opts RegenerateOptions) (*domain.GenerationResult, error) {
	prior, ok := s.store.Get(variantID)
	if !ok {
		return nil, fmt.Errorf("regenerate %d: %w", variantID, ErrNotFound)
	}
	name := prior.SubjectName
	if opts.SubjectName != "" {
		name = opts.SubjectName
	}
	return s.Generate(ctx, domain.GenerationRequest{
		SubjectName:  name,
		SubjectKey:   prior.SubjectKey,
		Features:     prior.Features,
		Tone:         domain.ToneOr(opts.Tone, prior.Tone),
		VariantCount: opts.VariantCount,
	})
}

// Variant returns one recorded variant.
func (s *Service) Variant(id int64) (domain.GeneratedVariant, error) {
	v, ok := s.store.Get(id)
	if !ok {
		return v, ErrNotFound
	}
	return v, nil
}

// History returns the variants recorded for a subject, newest first.
func (s *Service) History(subjectKey string) []domain.GeneratedVariant {
	return s.store.BySubject(subjectKey)
}

// EditContent replaces the content of a variant and recounts its words.
// SEO metadata is left as generated.
func (s *Service) EditContent(id int64, content string) (domain.GeneratedVariant, error) {
	if strings.TrimSpace(content) == "" {
		return domain.GeneratedVariant{}, fmt.Errorf("%w: content is required", ErrValidation)
	}
	v, ok := s.store.Update(id, func(v *domain.GeneratedVariant) {
		v.Content = content
		v.WordCount = copywriter.WordCount(content)
	})
	if !ok {
		return v, ErrNotFound
	}
	return v, nil
}

// SEO field names accepted by EditSEO.
const (
	FieldMetaTitle         = "meta_title"
	FieldMetaDescription   = "meta_description"
	FieldSuggestedKeywords = "suggested_keywords"
)

// EditSEO replaces exactly one SEO field of a variant with a user value.
func (s *Service) EditSEO(id int64, field, value string) (domain.GeneratedVariant, error) {
	var set func(m *domain.SEOMetadata)
	switch field {
	case FieldMetaTitle, "metaTitle":
		set = func(m *domain.SEOMetadata) { m.MetaTitle = value }
	case FieldMetaDescription, "metaDescription":
		set = func(m *domain.SEOMetadata) { m.MetaDescription = value }
	case FieldSuggestedKeywords, "suggestedKeywords":
		set = func(m *domain.SEOMetadata) { m.SuggestedKeywords = value }
	default:
		return domain.GeneratedVariant{}, fmt.Errorf("%w: %q", ErrUnknownSEOField, field)
	}

	v, ok := s.store.Update(id, func(v *domain.GeneratedVariant) { set(&v.SEO) })
	if !ok {
		return v, ErrNotFound
	}
	return v, nil
}

// IsGenerating reports whether a generation for subjectKey is in flight.
func (s *Service) IsGenerating(subjectKey string) bool {
	return s.guard.Active(subjectKey)
}

// Cancel aborts the in-flight generation for subjectKey, if any.
func (s *Service) Cancel(subjectKey string) bool {
	return s.guard.Cancel(subjectKey)
}

// IsCanceled reports whether err came from a canceled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// toneLabel bounds the metric label set to the known tones.
func toneLabel(t domain.Tone) string {
	if t.IsKnown() {
		return string(t)
	}
	return "other"
}
