package copywriter

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ignite/pagecraft/internal/domain"
)

var (
	actionWords = []string{
		"discover", "experience", "enjoy", "get", "shop",
		"explore", "transform", "upgrade", "try", "buy",
	}
	persuasiveWords = []string{
		"exclusive", "premium", "innovative", "exceptional", "superior",
		"ultimate", "perfect", "amazing", "revolutionary", "proven",
	}
	benefitWords = []string{
		"save", "improve", "enhance", "boost", "easier",
		"comfortable", "reliable", "durable", "efficient", "convenient",
	}
	urgencyWords = []string{
		"now", "today", "limited", "hurry", "don't miss",
		"last chance", "while supplies last", "only",
	}

	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	socialProof   = regexp.MustCompile(`(?i)\b(customers?|users?|people)\b.{0,40}\b(love|trust|choose|prefer)`)
	causalPhrase  = regexp.MustCompile(`(?i)\b(because|since|so that|to help|designed to)\b`)
)

const longWordRunes = 10

// Analyze computes lexical statistics, heuristic scores and improvement
// suggestions for content. It is a pure function of its input.
func Analyze(content string) domain.QualityReport {
	words := strings.Fields(content)
	wc := len(words)
	sc := countSentences(content)
	avg := float64(wc) / float64(max(sc, 1))

	lower := strings.ToLower(content)
	readability := readabilityScore(words, sc, avg)
	seo := seoScore(words)
	conversion, hasCausal, hasUrgency := conversionScore(lower)
	overall := int(math.Round(float64(readability+seo+conversion) / 3))

	scores := domain.QualityScores{
		Readability: readability,
		SEO:         seo,
		Conversion:  conversion,
		Overall:     overall,
	}
	return domain.QualityReport{
		WordCount:           wc,
		CharacterCount:      utf8.RuneCountInString(content),
		SentenceCount:       sc,
		AvgWordsPerSentence: math.Round(avg*10) / 10,
		QualityScores:       scores,
		Suggestions:         suggestions(wc, sc, avg, scores, hasCausal, hasUrgency),
	}
}

func countSentences(content string) int {
	n := 0
	for _, seg := range sentenceSplit.Split(content, -1) {
		if strings.TrimSpace(seg) != "" {
			n++
		}
	}
	return n
}

func readabilityScore(words []string, sentences int, avg float64) int {
	score := 85
	wc := len(words)
	switch {
	case wc < 30:
		score -= 15
	case wc > 200:
		score -= 10
	}
	switch {
	case avg > 25:
		score -= 15
	case avg > 20:
		score -= 8
	}
	if sentences >= 3 && sentences <= 8 {
		score += 5
	}

	long := 0
	for _, w := range words {
		if utf8.RuneCountInString(bareWord(w)) >= longWordRunes {
			long++
		}
	}
	if wc > 0 && float64(long)/float64(wc) > 0.15 {
		score -= 10
	}
	return clamp(score)
}

func seoScore(words []string) int {
	score := 75
	wc := len(words)

	unique := make(map[string]struct{}, wc)
	for _, w := range words {
		if b := strings.ToLower(bareWord(w)); b != "" {
			unique[b] = struct{}{}
		}
	}
	if wc > 0 {
		ratio := float64(len(unique)) / float64(wc)
		switch {
		case ratio > 0.7:
			score += 15
		case ratio > 0.5:
			score += 8
		}
	}
	if wc >= 50 && wc <= 150 {
		score += 10
	}

	actions := 0
	for _, a := range actionWords {
		if _, ok := unique[a]; ok {
			actions++
		}
	}
	if actions >= 2 {
		score += 5
	}
	return clamp(score)
}

// conversionScore expects lowercased content.
func conversionScore(lower string) (score int, hasCausal, hasUrgency bool) {
	score = 70
	score += 3 * countPresent(lower, persuasiveWords)
	score += 4 * countPresent(lower, benefitWords)
	urgency := countPresent(lower, urgencyWords)
	score += 2 * urgency
	if socialProof.MatchString(lower) {
		score += 8
	}
	hasCausal = causalPhrase.MatchString(lower)
	if hasCausal {
		score += 5
	}
	return clamp(score), hasCausal, urgency > 0
}

func suggestions(wc, sc int, avg float64, s domain.QualityScores, hasCausal, hasUrgency bool) []string {
	out := []string{}
	if wc < 50 {
		out = append(out, "Consider adding more detail about features and benefits")
	}
	if wc > 200 {
		out = append(out, "Consider shortening the description for better readability")
	}
	if avg > 20 {
		out = append(out, "Shorten sentences to improve readability")
	}
	if sc < 3 {
		out = append(out, "Add more sentences for better flow")
	}
	if s.SEO < 80 {
		out = append(out, "Include more relevant keywords")
		switch {
		case wc < 50:
			out = append(out, "Expand the description to 50-150 words")
		case wc > 150:
			out = append(out, "Trim the description to 50-150 words")
		}
	}
	if s.Conversion < 80 {
		out = append(out, "Add more persuasive and benefit-focused language")
		if !hasCausal {
			out = append(out, "Explain why customers should choose this product")
		}
		if !hasUrgency {
			out = append(out, "Add a sense of urgency")
		}
	}
	if weakest, score := weakestDimension(s); score < 60 {
		out = append(out, "Regenerate with focus on "+weakest)
	}
	return out
}

// weakestDimension returns the lowest sub-score; ties go to the earlier of
// readability, SEO, conversion.
func weakestDimension(s domain.QualityScores) (string, int) {
	name, low := "readability", s.Readability
	if s.SEO < low {
		name, low = "SEO", s.SEO
	}
	if s.Conversion < low {
		name, low = "conversion", s.Conversion
	}
	return name, low
}

func countPresent(lower string, list []string) int {
	n := 0
	for _, w := range list {
		if strings.Contains(lower, w) {
			n++
		}
	}
	return n
}

// bareWord strips everything but letters and digits.
func bareWord(w string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, w)
}

func clamp(score int) int {
	return min(max(score, 0), 100)
}
