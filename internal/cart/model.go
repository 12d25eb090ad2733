package cart

import (
	"time"

	"github.com/sohaibalidev/Zeevno/internal/catalog"
)

// LineItem is one entry of a user's stored cart. The cart lives as an
// array on the user document; items are keyed by product id.
type LineItem struct {
	ProductID string    `bson:"productId" json:"productId"`
	Quantity  int       `bson:"quantity" json:"quantity"`
	Color     string    `bson:"color,omitempty" json:"color,omitempty"`
	Size      string    `bson:"size,omitempty" json:"size,omitempty"`
	AddedAt   time.Time `bson:"addedAt" json:"addedAt"`
}

// ReconciledItem is a line item merged with a snapshot of the current
// product state. It is derived per request and never persisted.
type ReconciledItem struct {
	LineItem
	Name      string                `json:"name"`
	Category  string                `json:"category"`
	Pricing   catalog.Pricing       `json:"pricing"`
	Inventory catalog.Inventory     `json:"inventory"`
	Media     catalog.Media         `json:"media"`
	Reviews   catalog.RatingSummary `json:"reviews"`
}

// Summary holds the derived totals for a reconciled cart.
type Summary struct {
	TotalItems      int     `json:"totalItems"`
	OriginalTotal   float64 `json:"originalTotal"`
	DiscountedTotal float64 `json:"discountedTotal"`
	TotalDiscount   float64 `json:"totalDiscount"`
	PromoDiscount   float64 `json:"promoDiscount"`
	FinalTotal      float64 `json:"finalTotal"`
}
