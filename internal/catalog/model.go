package catalog

import "time"

type Pricing struct {
	CurrentPrice  float64  `bson:"currentPrice" json:"currentPrice"`
	OriginalPrice *float64 `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
}

type Inventory struct {
	StockQuantity int  `bson:"stockQuantity" json:"stockQuantity"`
	InStock       bool `bson:"inStock" json:"inStock"`
}

type Media struct {
	PrimaryImage string   `bson:"primaryImage" json:"primaryImage"`
	ImageURLs    []string `bson:"imageUrls,omitempty" json:"imageUrls,omitempty"`
}

type Specifications struct {
	ReviewIDs []string       `bson:"reviewIds,omitempty" json:"-"`
	Details   map[string]any `bson:",inline" json:"details,omitempty"`
}

type Product struct {
	ID             string         `bson:"id" json:"id"`
	Category       string         `bson:"category" json:"category"`
	Name           string         `bson:"name" json:"name"`
	Description    string         `bson:"description,omitempty" json:"description,omitempty"`
	Pricing        Pricing        `bson:"pricing" json:"pricing"`
	Inventory      Inventory      `bson:"inventory" json:"inventory"`
	Media          Media          `bson:"media" json:"media"`
	Specifications Specifications `bson:"specifications" json:"specifications,omitempty"`
	IsFeatured     bool           `bson:"isFeatured,omitempty" json:"-"`
	CreatedAt      time.Time      `bson:"createdAt,omitempty" json:"-"`
}

type Review struct {
	ReviewID string    `bson:"reviewId" json:"-"`
	Rating   int       `bson:"rating" json:"rating"`
	Author   string    `bson:"author,omitempty" json:"author,omitempty"`
	Date     time.Time `bson:"date,omitempty" json:"date,omitempty"`
	Text     string    `bson:"text,omitempty" json:"text,omitempty"`
}

// RatingSummary is the display contract every listing surface carries:
// review count plus the half-star rounded average.
type RatingSummary struct {
	Total  int     `json:"total"`
	Rating float64 `json:"rating"`
}

// Listing is a product as rendered on listing surfaces: the stored
// document plus its rating summary.
type Listing struct {
	Product
	Reviews RatingSummary `json:"reviews"`
}

// Detail is a single-product view with the full review list attached.
type Detail struct {
	Product
	Reviews DetailReviews `json:"reviews"`
}

type DetailReviews struct {
	Total  int      `json:"total"`
	Rating float64  `json:"rating"`
	List   []Review `json:"list"`
}

// FeaturedCard is the trimmed snapshot used on the landing page rail.
type FeaturedCard struct {
	ID          string        `json:"id"`
	Category    string        `json:"category"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Pricing     Pricing       `json:"pricing"`
	Media       Media         `json:"media"`
	Reviews     RatingSummary `json:"reviews"`
}

type CategorySummary struct {
	Category      string `bson:"category" json:"category"`
	TotalProducts int    `bson:"totalProducts" json:"totalProducts"`
	SampleImage   string `bson:"sampleImage" json:"sampleImage"`
}

type Pagination struct {
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// FillDefaults normalises documents coming out of the store. The
// ingestion pipeline predates some fields, so older products can miss
// them entirely.
func (p *Product) FillDefaults() {
	if p.Pricing.OriginalPrice != nil && *p.Pricing.OriginalPrice <= 0 {
		p.Pricing.OriginalPrice = nil
	}
	if p.Inventory.StockQuantity < 0 {
		p.Inventory.StockQuantity = 0
	}
	p.Inventory.InStock = p.Inventory.StockQuantity > 0
	if p.Media.PrimaryImage == "" && len(p.Media.ImageURLs) > 0 {
		p.Media.PrimaryImage = p.Media.ImageURLs[0]
	}
	if p.Specifications.ReviewIDs == nil {
		p.Specifications.ReviewIDs = []string{}
	}
}
