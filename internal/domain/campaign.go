package domain

import "time"

// CampaignType selects the landing-page content bank.
type CampaignType string

const (
	CampaignSale          CampaignType = "Sale"
	CampaignNewCollection CampaignType = "New Collection"
	CampaignSeasonal      CampaignType = "Seasonal"
)

// CampaignStatus enumerates the lifecycle states of a marketing campaign.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "Draft"
	CampaignPublished CampaignStatus = "Published"
)

// CampaignContent is the generated copy for a campaign landing page.
type CampaignContent struct {
	Headlines   []string  `json:"headlines"`
	BodyText    string    `json:"body_text"`
	CTAButtons  []string  `json:"cta_buttons"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Campaign is a marketing campaign with optional generated content.
type Campaign struct {
	ID                 int64            `json:"id"`
	Title              string           `json:"title"`
	Type               CampaignType     `json:"type"`
	DiscountPercentage string           `json:"discount_percentage"`
	TargetAudience     string           `json:"target_audience"`
	Description        string           `json:"description"`
	Status             CampaignStatus   `json:"status"`
	GeneratedContent   *CampaignContent `json:"generated_content,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          *time.Time       `json:"updated_at,omitempty"`
}
