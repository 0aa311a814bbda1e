package campaign

import (
	"strings"

	"github.com/ignite/pagecraft/internal/domain"
)

const (
	maxHeadlines = 3
	maxCTAs      = 4
)

type contentBank struct {
	headlines []string
	bodies    []string
	ctas      []string
}

var contentBanks = map[domain.CampaignType]contentBank{
	domain.CampaignSale: {
		headlines: []string{
			"🔥 Limited Time: {{ discount }}% OFF Everything!",
			"Massive {{ discount }}% Sale - Don't Miss Out!",
			"Your Favorite Items Are Now {{ discount }}% OFF",
			"Flash Sale Alert: {{ discount }}% OFF Sitewide!",
		},
		bodies: []string{
			"Don't miss out on our incredible {{ discount | lower }}% off sale! Perfect for {{ audience | lower }}, this limited-time offer includes everything you love. From trending pieces to timeless classics, now is the perfect time to refresh your collection. Hurry - these amazing deals won't last long!",
			"Transform your style with our biggest sale event! Enjoy {{ discount | lower }}% off everything and discover why {{ audience | lower }} love shopping with us. Whether you're looking for that perfect statement piece or everyday essentials, we've got you covered at unbeatable prices.",
		},
		ctas: []string{
			"Shop {{ discount }}% OFF Sale",
			"Get Your Discount Now",
			"Start Shopping Sale",
			"Claim {{ discount }}% OFF",
			"Don't Miss Out - Shop Now",
		},
	},
	domain.CampaignNewCollection: {
		headlines: []string{
			"Introducing Our Latest Collection",
			"New Arrivals: Fresh Styles Just Dropped",
			"Discover What's New This Season",
			"Your New Favorites Have Arrived",
		},
		bodies: []string{
			"Discover our carefully curated new collection designed specifically for {{ audience | lower }}. Each piece reflects the latest trends while maintaining the quality and style you expect. From versatile basics to statement pieces, find everything you need to elevate your wardrobe this season.",
			"Step into the new season with confidence wearing our latest collection. Thoughtfully designed for {{ audience | lower }}, these fresh arrivals combine contemporary style with timeless appeal. Explore unique pieces that will become your new go-to favorites.",
		},
		ctas: []string{
			"Explore New Collection",
			"Shop Latest Arrivals",
			"Discover New Styles",
			"View Collection",
			"Find Your New Favorite",
		},
	},
	domain.CampaignSeasonal: {
		headlines: []string{
			"Seasonal Must-Haves Are Here",
			"Embrace the Season in Style",
			"Seasonal Favorites You'll Love",
			"Perfect Pieces for the Season",
		},
		bodies: []string{
			"Embrace the season with our specially curated seasonal collection perfect for {{ audience | lower }}. Whether you're looking for cozy comfort or seasonal statement pieces, we have everything you need to make the most of the season ahead. Quality meets style in every carefully selected piece.",
			"Make this season memorable with our handpicked seasonal favorites designed for {{ audience | lower }}. From seasonal essentials to special occasion pieces, discover items that capture the spirit of the season while keeping you stylish and comfortable.",
		},
		ctas: []string{
			"Shop Seasonal Collection",
			"Explore Season Styles",
			"Get Season Ready",
			"Discover Seasonal Picks",
			"Shop Now",
		},
	},
}

// Headline emoji become a fire emoji on discounted campaigns and a sparkle
// otherwise.
var (
	discountEmoji = strings.NewReplacer("⚡", "🔥", "🌞", "🔥")
	plainEmoji    = strings.NewReplacer("🔥", "✨", "⚡", "✨", "🌞", "✨")
)

func swapEmoji(headline string, discounted bool) string {
	if discounted {
		return discountEmoji.Replace(headline)
	}
	return plainEmoji.Replace(headline)
}

// CampaignTypes lists the supported campaign types.
func CampaignTypes() []domain.CampaignType {
	return []domain.CampaignType{domain.CampaignSale, domain.CampaignNewCollection, domain.CampaignSeasonal}
}
