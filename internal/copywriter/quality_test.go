package copywriter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ignite/pagecraft/internal/domain"
)

func TestAnalyze_ShortPersuasiveCopy(t *testing.T) {
	report := Analyze("Shop now. Customers love it because it is durable.")

	assert.Equal(t, 9, report.WordCount)
	assert.Equal(t, 50, report.CharacterCount)
	assert.Equal(t, 2, report.SentenceCount)
	assert.Equal(t, 4.5, report.AvgWordsPerSentence)
	assert.Equal(t, domain.QualityScores{
		Readability: 70, // short copy penalty
		SEO:         90, // high unique-word ratio
		Conversion:  89, // benefit + urgency + social proof + causal
		Overall:     83,
	}, report.QualityScores)
	assert.Equal(t, []string{
		"Consider adding more detail about features and benefits",
		"Add more sentences for better flow",
	}, report.Suggestions)
}

func TestAnalyze_RunOnSentence(t *testing.T) {
	content := strings.TrimSpace(strings.Repeat("extraordinarily ", 201)) + "."
	report := Analyze(content)

	assert.Equal(t, 201, report.WordCount)
	assert.Equal(t, 1, report.SentenceCount)
	assert.Equal(t, 201.0, report.AvgWordsPerSentence)
	assert.Equal(t, 50, report.QualityScores.Readability)
	assert.Equal(t, 75, report.QualityScores.SEO)
	assert.Equal(t, 70, report.QualityScores.Conversion)
	assert.Equal(t, 65, report.QualityScores.Overall)
	assert.Equal(t, []string{
		"Consider shortening the description for better readability",
		"Shorten sentences to improve readability",
		"Add more sentences for better flow",
		"Include more relevant keywords",
		"Trim the description to 50-150 words",
		"Add more persuasive and benefit-focused language",
		"Explain why customers should choose this product",
		"Add a sense of urgency",
		"Regenerate with focus on readability",
	}, report.Suggestions)
}

func TestAnalyze_Empty(t *testing.T) {
	report := Analyze("")
	assert.Equal(t, 0, report.WordCount)
	assert.Equal(t, 0, report.SentenceCount)
	assert.Equal(t, 0.0, report.AvgWordsPerSentence)
	assert.Equal(t, 70, report.QualityScores.Readability)
	assert.NotEmpty(t, report.Suggestions)
}

func TestAnalyze_Deterministic(t *testing.T) {
	c := NewComposer(NewTemplateEngine(), NewRand(1))
	drafts, err := c.Compose("Wireless Mouse", domain.Features{"ergonomic", "silent click"}, domain.ToneProfessional, 3)
	assert.NoError(t, err)

	for _, d := range drafts {
		assert.Equal(t, Analyze(d.Content), Analyze(d.Content))
		s := Analyze(d.Content).QualityScores
		for _, v := range []int{s.Readability, s.SEO, s.Conversion, s.Overall} {
			assert.True(t, v >= 0 && v <= 100)
		}
	}
}

func TestAnalyze_ScoresClampAt100(t *testing.T) {
	content := "Exclusive premium innovative exceptional superior ultimate perfect amazing revolutionary proven. " +
		"Save, improve, enhance, boost, easier, comfortable, reliable, durable, efficient, convenient. " +
		"Customers love it because it works. Hurry, limited stock, only today, buy now."
	assert.Equal(t, 100, Analyze(content).QualityScores.Conversion)
}

func TestWeakestDimension(t *testing.T) {
	name, score := weakestDimension(domain.QualityScores{Readability: 70, SEO: 55, Conversion: 55})
	assert.Equal(t, "SEO", name)
	assert.Equal(t, 55, score)

	name, _ = weakestDimension(domain.QualityScores{Readability: 90, SEO: 80, Conversion: 40})
	assert.Equal(t, "conversion", name)
}
