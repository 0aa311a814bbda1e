package copywriter

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ignite/pagecraft/internal/domain"
)

const (
	MaxMetaTitle          = 60
	MaxMetaDescription    = 160
	TargetMetaDescription = 120

	maxKeywordFeatures = 3
	maxToneKeywords    = 2
	fallbackFeature    = "Product"
)

// DeriveSEO builds search metadata for a description. Lengths are counted
// in characters.
func DeriveSEO(subjectName string, features domain.Features, tone domain.Tone, description string) domain.SEOMetadata {
	return domain.SEOMetadata{
		MetaTitle:         metaTitle(subjectName, features, tone),
		MetaDescription:   metaDescription(features, description),
		SuggestedKeywords: suggestedKeywords(subjectName, features, tone),
	}
}

func metaTitle(name string, features domain.Features, tone domain.Tone) string {
	lead := fallbackFeature
	if len(features) > 0 {
		lead = features[0]
	}
	return TruncateRunes(fmt.Sprintf("%s - %s %s", name, ToneWord(tone), lead), MaxMetaTitle)
}

func metaDescription(features domain.Features, description string) string {
	desc := FirstSentence(description)
	n := utf8.RuneCountInString(desc)
	if n > MaxMetaDescription {
		return TruncateRunes(desc, MaxMetaDescription)
	}
	if n < TargetMetaDescription && len(features) > 0 {
		extended := strings.TrimSpace(fmt.Sprintf("%s Features %s.", desc, strings.Join(features[:min(2, len(features))], ", ")))
		if utf8.RuneCountInString(extended) <= MaxMetaDescription {
			return extended
		}
	}
	return desc
}

// FirstSentence returns text up to and including the first '.', '!' or
// '?', or the whole trimmed text when there is none.
func FirstSentence(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexAny(text, ".!?"); i >= 0 {
		return strings.TrimSpace(text[:i+1])
	}
	return text
}

func suggestedKeywords(name string, features domain.Features, tone domain.Tone) string {
	keywords := make([]string, 0, 1+maxKeywordFeatures+maxToneKeywords)
	keywords = append(keywords, strings.ToLower(strings.TrimSpace(name)))
	for _, f := range features[:min(maxKeywordFeatures, len(features))] {
		keywords = append(keywords, keywordize(f))
	}
	toneKeywords := ToneKeywords(tone)
	keywords = append(keywords, toneKeywords[:min(maxToneKeywords, len(toneKeywords))]...)

	out := keywords[:0]
	for _, k := range keywords {
		if k != "" {
			out = append(out, k)
		}
	}
	return strings.Join(out, ", ")
}

// keywordize lowercases s and removes everything but letters, digits and
// spaces.
func keywordize(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
	return strings.TrimSpace(s)
}
