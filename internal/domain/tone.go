package domain

// Tone selects the phrase bank and sentence templates used for a description.
// Values outside the known set are accepted and rendered with the generic
// template.
type Tone string

const (
	ToneProfessional Tone = "Professional"
	ToneCasual       Tone = "Casual"
	ToneLuxury       Tone = "Luxury"
)

// KnownTones lists the tones that have a dedicated phrase bank, in display order.
var KnownTones = []Tone{ToneProfessional, ToneCasual, ToneLuxury}

// IsKnown reports whether t has a dedicated phrase bank.
func (t Tone) IsKnown() bool {
	switch t {
	case ToneProfessional, ToneCasual, ToneLuxury:
		return true
	}
	return false
}

// ToneOr returns t, or def when t is empty.
func ToneOr(t, def Tone) Tone {
	if t == "" {
		return def
	}
	return t
}
