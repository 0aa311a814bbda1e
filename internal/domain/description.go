package domain

import (
	"encoding/json"
	"time"
)

// GenerationRequest is the immutable input of one description generation.
type GenerationRequest struct {
	SubjectName string `json:"subject_name"`
	// SubjectKey identifies the subject for the in-progress guard and history.
	// Defaults to SubjectName.
	SubjectKey   string   `json:"subject_key,omitempty"`
	Features     Features `json:"features"`
	Tone         Tone     `json:"tone"`
	VariantCount int      `json:"variant_count,omitempty"`
}

// Key returns the subject key, falling back to the subject name.
func (r GenerationRequest) Key() string {
	if r.SubjectKey != "" {
		return r.SubjectKey
	}
	return r.SubjectName
}

// SEOMetadata is the search metadata derived for one description.
type SEOMetadata struct {
	MetaTitle         string `json:"meta_title"`
	MetaDescription   string `json:"meta_description"`
	SuggestedKeywords string `json:"suggested_keywords"`
}

// GeneratedVariant is one generated description, as recorded in the
// generation log.
type GeneratedVariant struct {
	ID           int64       `json:"id"`
	SubjectKey   string      `json:"subject_key"`
	SubjectName  string      `json:"subject_name"`
	Content      string      `json:"content"`
	Tone         Tone        `json:"tone"`
	Features     Features    `json:"features"`
	WordCount    int         `json:"word_count"`
	CreatedAt    time.Time   `json:"created_at"`
	VariantIndex int         `json:"variant_index"`
	SEO          SEOMetadata `json:"seo"`
}

// GenerationResult is returned by a single generation call. Variants is
// always a slice, even when one variant was requested.
type GenerationResult struct {
	SubjectKey     string             `json:"subject_key"`
	Variants       []GeneratedVariant `json:"variants"`
	Suggestions    []string           `json:"suggestions"`
	GenerationTime time.Duration      `json:"-"`
}

// MarshalJSON reports GenerationTime in milliseconds.
func (r GenerationResult) MarshalJSON() ([]byte, error) {
	type alias GenerationResult
	return json.Marshal(struct {
		alias
		GenerationTimeMS int64 `json:"generation_time_ms"`
	}{alias(r), r.GenerationTime.Milliseconds()})
}

// BulkStatus is the per-item outcome of a bulk generation.
type BulkStatus string

const (
	BulkSuccess BulkStatus = "success"
	BulkError   BulkStatus = "error"
)

// BulkItemResult is the outcome for one subject of a bulk generation.
type BulkItemResult struct {
	SubjectKey string             `json:"subject_key"`
	Status     BulkStatus         `json:"status"`
	Variants   []GeneratedVariant `json:"variants,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// QualityScores holds the heuristic scores of a QualityReport, each in [0,100].
type QualityScores struct {
	Readability int `json:"readability"`
	SEO         int `json:"seo"`
	Conversion  int `json:"conversion"`
	Overall     int `json:"overall"`
}

// QualityReport is the lexical analysis of one description body.
type QualityReport struct {
	WordCount           int           `json:"word_count"`
	CharacterCount      int           `json:"character_count"`
	SentenceCount       int           `json:"sentence_count"`
	AvgWordsPerSentence float64       `json:"avg_words_per_sentence"`
	QualityScores       QualityScores `json:"quality_scores"`
	Suggestions         []string      `json:"suggestions"`
}
