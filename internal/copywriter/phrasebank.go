package copywriter

import (
	"fmt"

	"github.com/ignite/pagecraft/internal/domain"
)

// ToneBank is the lexicon for one tone.
type ToneBank struct {
	Tone domain.Tone
	// Phrases are the filler phrases substituted into {{ phrase }}.
	Phrases []string
	// Templates are Liquid sources with name, phrase and features bound.
	// Variant i of a multi-variant request uses Templates[i % len].
	Templates []string
	// Word is the adjective used in meta titles.
	Word string
	// Keywords are appended to suggested SEO keywords.
	Keywords []string
}

// TemplateID names template i of the bank for the render cache.
func (b ToneBank) TemplateID(i int) string {
	return fmt.Sprintf("description/%s/%d", b.Tone, i)
}

const (
	genericTemplateID = "description/generic"
	genericTemplate   = `{{ name }} combines quality and innovation with features including {{ features | join: ", " }}. Designed to meet your needs with reliability and style.`

	genericToneWord = "Quality"
)

var genericKeywords = []string{"quality", "reliable"}

var banks = map[domain.Tone]ToneBank{
	domain.ToneProfessional: {
		Tone: domain.ToneProfessional,
		Phrases: []string{
			"deliver exceptional",
			"advanced technology",
			"professional-grade",
			"industry-leading",
			"optimal performance",
		},
		Templates: []string{
			`{{ name }} {{ phrase }} with its innovative design and superior functionality. This premium product features {{ features | join: ", " }}, ensuring optimal performance and reliability. Engineered for professionals who demand excellence, it delivers consistent results while maintaining the highest standards of quality and durability.`,
			`Built around {{ phrase }}, {{ name }} brings {{ features | join_list }} to your daily workflow. Every detail is designed to help teams work faster and more efficiently. Choose a tool that performs reliably from the first day to the thousandth.`,
			`Upgrade to {{ name }} and put {{ phrase }} to work. Key capabilities include {{ features | join: ", " }}. Trusted by demanding professionals, it is designed to boost productivity and reduce downtime.`,
		},
		Word:     "Professional",
		Keywords: []string{"professional grade", "high performance"},
	},
	domain.ToneCasual: {
		Tone: domain.ToneCasual,
		Phrases: []string{
			"you'll love",
			"perfect for everyday",
			"makes life easier",
			"great for",
			"enjoy the convenience",
		},
		Templates: []string{
			`Meet your new favorite {{ name }}! This amazing product {{ phrase }} with features like {{ features | join: ", " }}. Whether you're at home, work, or on-the-go, it's designed to make your life easier and more enjoyable. You'll wonder how you ever lived without it!`,
			`"{{ phrase | capitalize }}" is what everyone says about {{ name }}. It comes with {{ features | join_list }}, so every day feels a little easier. Grab yours today and see why people love it!`,
			`Looking for something {{ phrase }}? {{ name }} has you covered with {{ features | join: ", " }}. It's simple, comfortable, and ready whenever you are. Go ahead and treat yourself!`,
		},
		Word:     "Everyday",
		Keywords: []string{"everyday", "easy to use"},
	},
	domain.ToneLuxury: {
		Tone: domain.ToneLuxury,
		Phrases: []string{
			"exquisite craftsmanship",
			"sophisticated design",
			"exclusive experience",
			"premium materials",
			"unparalleled quality",
		},
		Templates: []string{
			`Experience the {{ phrase }} of {{ name }}. This exclusive piece showcases {{ features | join: ", " }}, representing the pinnacle of sophisticated design and premium craftsmanship. Reserved for those who appreciate the finer things in life, it transforms everyday moments into extraordinary experiences.`,
			`{{ name }} is a celebration of {{ phrase }}. Thoughtfully finished with {{ features | join_list }}, it speaks quietly of refinement. An heirloom in the making for those who accept nothing less than perfection.`,
			`Indulge in {{ name }}, where {{ phrase }} meets timeless elegance. Its signature details include {{ features | join: ", " }}. Discover an exclusive standard of luxury, crafted to be treasured.`,
		},
		Word:     "Premium",
		Keywords: []string{"luxury", "premium"},
	},
}

// Bank returns the lexicon for t. The second result is false for tones
// without a dedicated bank.
func Bank(t domain.Tone) (ToneBank, bool) {
	b, ok := banks[t]
	return b, ok
}

// ToneWord is the adjective used for t in meta titles.
func ToneWord(t domain.Tone) string {
	if b, ok := banks[t]; ok {
		return b.Word
	}
	return genericToneWord
}

// ToneKeywords returns the SEO keywords associated with t.
func ToneKeywords(t domain.Tone) []string {
	if b, ok := banks[t]; ok {
		return b.Keywords
	}
	return genericKeywords
}
