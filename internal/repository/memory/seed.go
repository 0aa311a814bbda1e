package memory

import (
	"time"

	"github.com/ignite/pagecraft/internal/domain"
)

// DemoProducts returns the catalog shown before any feed is imported.
func DemoProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Wireless Ergonomic Mouse", SKU: "ACC-MOU-001", Category: "Electronics", Price: 49.99,
			Image: "https://images.example.com/products/mouse.jpg"},
		{ID: 2, Name: "Mechanical Keyboard", SKU: "ACC-KEY-002", Category: "Electronics", Price: 129.00,
			Image: "https://images.example.com/products/keyboard.jpg"},
		{ID: 3, Name: "Organic Cotton T-Shirt", SKU: "APP-TSH-003", Category: "Apparel", Price: 24.50,
			Image: "https://images.example.com/products/tshirt.jpg"},
		{ID: 4, Name: "Leather Weekender Bag", SKU: "APP-BAG-004", Category: "Accessories", Price: 289.00,
			Image: "https://images.example.com/products/weekender.jpg"},
		{ID: 5, Name: "Insulated Travel Mug", SKU: "HOM-MUG-005", Category: "Home & Kitchen", Price: 19.99,
			Image: "https://images.example.com/products/mug.jpg"},
		{ID: 6, Name: "Ceramic Pour-Over Set", SKU: "HOM-POS-006", Category: "Home & Kitchen", Price: 64.00,
			Image: "https://images.example.com/products/pourover.jpg"},
		{ID: 7, Name: "Silk Scarf", SKU: "ACC-SCF-007", Category: "Accessories", Price: 95.00,
			Image: "https://images.example.com/products/scarf.jpg"},
		{ID: 8, Name: "Yoga Mat Pro", SKU: "SPT-YOG-008", Category: "Sports", Price: 79.00,
			Image: "https://images.example.com/products/yogamat.jpg"},
	}
}

// DemoTemplates returns the starter template library.
func DemoTemplates() []domain.DescriptionTemplate {
	created := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	return []domain.DescriptionTemplate{
		{
			ID: 1, Name: "Tech Spec Highlight", Tone: domain.ToneProfessional, Category: "Electronics",
			Structure:   "Hook + Key specs + Performance benefit + Call to action",
			Keywords:    domain.Features{"performance", "reliable", "advanced"},
			Description: "Leads with the headline specification and backs it with measurable benefits.",
			CreatedAt:   created,
		},
		{
			ID: 2, Name: "Everyday Lifestyle", Tone: domain.ToneCasual, Category: "Home & Kitchen",
			Structure:   "Relatable moment + Features + How it makes life easier",
			Keywords:    domain.Features{"easy", "everyday", "convenient"},
			Description: "Friendly copy that places the product in a daily routine.",
			CreatedAt:   created.Add(24 * time.Hour),
		},
		{
			ID: 3, Name: "Atelier Story", Tone: domain.ToneLuxury, Category: "Accessories",
			Structure:   "Heritage + Materials + Craftsmanship + Exclusivity",
			Keywords:    domain.Features{"handcrafted", "premium", "exclusive"},
			Description: "Elegant narrative focused on materials and the making of the piece.",
			CreatedAt:   created.Add(48 * time.Hour),
		},
		{
			ID: 4, Name: "Active Performance", Tone: domain.ToneProfessional, Category: "Sports",
			Structure:   "Challenge + Solution + Proof + Call to action",
			Keywords:    domain.Features{"durable", "grip", "training"},
			Description: "Outcome-driven copy for sports and fitness gear.",
			CreatedAt:   created.Add(72 * time.Hour),
		},
	}
}

// DemoCampaigns returns the two sample marketing campaigns.
func DemoCampaigns() []domain.Campaign {
	return []domain.Campaign{
		{
			ID:                 1,
			Title:              "Summer Sale Extravaganza",
			Type:               domain.CampaignSale,
			DiscountPercentage: "30",
			TargetAudience:     "Fashion-forward millennials and Gen Z",
			Description:        "Major summer clearance event",
			Status:             domain.CampaignPublished,
			CreatedAt:          time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			GeneratedContent: &domain.CampaignContent{
				Headlines: []string{
					"🌞 Summer Sale: Up to 30% OFF Everything!",
					"Beat the Heat with Hot Summer Deals",
					"Your Summer Wardrobe Awaits - 30% OFF",
				},
				BodyText: "Transform your summer style with our biggest sale of the season! Discover trending pieces perfect for beach days, festival nights, and everything in between. From breezy dresses to statement accessories, find everything you need to make this summer unforgettable. Limited time offer - don't let these deals slip away like summer sunsets!",
				CTAButtons: []string{
					"Shop Summer Sale Now",
					"Get 30% OFF Today",
					"Discover Summer Trends",
					"Start Shopping",
				},
				GeneratedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			},
		},
		{
			ID:             2,
			Title:          "New Autumn Collection Launch",
			Type:           domain.CampaignNewCollection,
			TargetAudience: "Professional women aged 25-40",
			Description:    "Sophisticated autumn pieces for working professionals",
			Status:         domain.CampaignDraft,
			CreatedAt:      time.Date(2024, 1, 20, 14, 30, 0, 0, time.UTC),
			GeneratedContent: &domain.CampaignContent{
				Headlines: []string{
					"Introducing Our New Autumn Collection",
					"Fall into Style: New Arrivals Are Here",
					"Autumn Elegance: Discover Your New Favorites",
				},
				BodyText: "Step into autumn with confidence wearing our latest collection designed for the modern professional woman. Featuring rich textures, sophisticated silhouettes, and versatile pieces that transition seamlessly from boardroom to evening events. Each piece is crafted with attention to detail and quality that speaks to your refined taste.",
				CTAButtons: []string{
					"Explore New Collection",
					"Shop Autumn Styles",
					"View Latest Arrivals",
					"Find Your Style",
				},
				GeneratedAt: time.Date(2024, 1, 20, 14, 30, 0, 0, time.UTC),
			},
		},
	}
}
