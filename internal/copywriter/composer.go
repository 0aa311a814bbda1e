package copywriter

import (
	"strings"

	"github.com/ignite/pagecraft/internal/domain"
)

// Draft is one composed description before it is assigned an id and
// recorded in the generation log.
type Draft struct {
	Content      string
	Tone         domain.Tone
	Features     domain.Features
	VariantIndex int // 1-based
	WordCount    int
}

// Composer renders description paragraphs from the phrase banks.
type Composer struct {
	engine *TemplateEngine
	rnd    Rand
}

// NewComposer creates a composer. rnd is consulted once per variant for
// known tones and never for unknown ones.
func NewComposer(engine *TemplateEngine, rnd Rand) *Composer {
	return &Composer{engine: engine, rnd: rnd}
}

// Compose renders variantCount descriptions. A single variant always uses
// the tone's first template; variant i of several uses template i mod 3,
// so up to three variants never share a template. Counts below one are
// treated as one.
func (c *Composer) Compose(subjectName string, features domain.Features, tone domain.Tone, variantCount int) ([]Draft, error) {
	if variantCount < 1 {
		variantCount = 1
	}
	features = domain.NormalizeFeatures(features)
	bindings := map[string]interface{}{
		"name":     subjectName,
		"features": []string(features),
	}

	drafts := make([]Draft, 0, variantCount)
	bank, known := Bank(tone)
	for i := 0; i < variantCount; i++ {
		var (
			content string
			err     error
		)
		if known {
			idx := 0
			if variantCount > 1 {
				idx = i % len(bank.Templates)
			}
			bindings["phrase"] = bank.Phrases[c.rnd.Intn(len(bank.Phrases))]
			content, err = c.engine.Render(bank.TemplateID(idx), bank.Templates[idx], bindings)
		} else {
			content, err = c.engine.Render(genericTemplateID, genericTemplate, bindings)
		}
		if err != nil {
			return nil, err
		}

		drafts = append(drafts, Draft{
			Content:      content,
			Tone:         tone,
			Features:     features,
			VariantIndex: i + 1,
			WordCount:    WordCount(content),
		})
	}
	return drafts, nil
}

// WordCount counts whitespace-separated tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
