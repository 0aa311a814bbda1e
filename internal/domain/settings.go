package domain

import "time"

// MaxUploadedContent is the number of characters of an uploaded brand file
// kept inline in the settings record.
const MaxUploadedContent = 5000

// UploadedFile is a brand-voice reference document attached to the settings.
type UploadedFile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Content    string    `json:"content"`
	UploadDate time.Time `json:"uploadDate"`
	// ObjectKey is set when the full file was archived to object storage.
	ObjectKey string `json:"objectKey,omitempty"`
}

// Settings is the flat preferences record stored under a single key.
// JSON names match the record written by the browser client.
type Settings struct {
	ShopifyStore       string         `json:"shopifyStore"`
	APIKey             string         `json:"apiKey"`
	AIModel            string         `json:"aiModel"`
	DefaultTone        Tone           `json:"defaultTone"`
	MaxWords           int            `json:"maxWords"`
	IncludeKeywords    bool           `json:"includeKeywords"`
	AutoSave           bool           `json:"autoSave"`
	Notifications      bool           `json:"notifications"`
	BrandVoiceStrength int            `json:"brandVoiceStrength"`
	SampleContent      string         `json:"sampleContent"`
	BrandGuidelines    string         `json:"brandGuidelines"`
	UploadedFiles      []UploadedFile `json:"uploadedFiles"`
}

// DefaultSettings returns the record used before anything has been saved.
func DefaultSettings() Settings {
	return Settings{
		AIModel:            "gpt-4",
		DefaultTone:        ToneProfessional,
		MaxWords:           150,
		IncludeKeywords:    true,
		AutoSave:           false,
		Notifications:      true,
		BrandVoiceStrength: 50,
		UploadedFiles:      []UploadedFile{},
	}
}

// Connected reports whether the Shopify credentials are filled in.
func (s Settings) Connected() bool {
	return s.ShopifyStore != "" && s.APIKey != ""
}
