package cart

import (
	"context"
	"fmt"
	"log"

	"github.com/sohaibalidev/Zeevno/internal/catalog"
	"github.com/sohaibalidev/Zeevno/internal/metrics"
)

// ProductSource supplies current product state for reconciliation.
type ProductSource interface {
	ProductsByIDs(ctx context.Context, ids []string) ([]catalog.Product, error)
}

// ReviewSource supplies the reviews backing each item's rating summary.
type ReviewSource interface {
	ReviewsByIDs(ctx context.Context, ids []string) ([]catalog.Review, error)
}

// Engine turns a raw stored cart into a consistent, enriched,
// display-ready list. Invalid entries are self-healed: items whose
// product vanished are dropped, quantities above stock are clamped,
// and the corrected cart is written back so the next read is clean.
type Engine struct {
	products ProductSource
	reviews  ReviewSource
	store    Store
	logger   *log.Logger
}

func NewEngine(products ProductSource, reviews ReviewSource, store Store, logger *log.Logger) *Engine {
	return &Engine{products: products, reviews: reviews, store: store, logger: logger}
}

// Reconcile validates and enriches the stored cart for one user. The
// returned flag reports whether the stored cart needed correction; when
// it did, the corrected list has already been persisted.
func (e *Engine) Reconcile(ctx context.Context, userID string, stored []LineItem) ([]ReconciledItem, bool, error) {
	if len(stored) == 0 {
		return []ReconciledItem{}, false, nil
	}

	ids := make([]string, 0, len(stored))
	seen := make(map[string]bool, len(stored))
	for _, it := range stored {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}

	// one batch lookup for the whole cart
	products, err := e.products.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, false, fmt.Errorf("load cart products: %w", err)
	}
	byID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	mutated := false
	kept := make([]LineItem, 0, len(stored))
	for _, it := range stored {
		p, ok := byID[it.ProductID]
		if !ok {
			// product no longer exists
			mutated = true
			metrics.CartItemsDropped.Inc()
			continue
		}

		if it.Quantity > p.Inventory.StockQuantity {
			mutated = true
			it.Quantity = p.Inventory.StockQuantity
			if it.Quantity == 0 {
				// clamping to zero stock removes the line entirely; a
				// zero-quantity cart line is never exposed
				metrics.CartItemsDropped.Inc()
				continue
			}
			metrics.CartItemsClamped.Inc()
		}

		if it.Quantity < 1 {
			// direct store corruption
			mutated = true
			metrics.CartItemsDropped.Inc()
			continue
		}

		kept = append(kept, it)
	}

	enriched, err := e.enrich(ctx, kept, byID)
	if err != nil {
		return nil, false, err
	}

	if mutated {
		if err := e.store.Replace(ctx, userID, kept); err != nil {
			return nil, false, fmt.Errorf("write back corrected cart: %w", err)
		}
		metrics.CartRepairs.Inc()
		e.logger.Printf("repaired cart for %s: %d of %d items kept", userID, len(kept), len(stored))
	}

	return enriched, mutated, nil
}

func (e *Engine) enrich(ctx context.Context, items []LineItem, byID map[string]catalog.Product) ([]ReconciledItem, error) {
	union := make([]string, 0, len(items)*4)
	for _, it := range items {
		union = append(union, byID[it.ProductID].Specifications.ReviewIDs...)
	}

	reviews, err := e.reviews.ReviewsByIDs(ctx, union)
	if err != nil {
		return nil, fmt.Errorf("load cart reviews: %w", err)
	}
	reviewByID := make(map[string]catalog.Review, len(reviews))
	for _, r := range reviews {
		reviewByID[r.ReviewID] = r
	}

	out := make([]ReconciledItem, 0, len(items))
	for _, it := range items {
		p := byID[it.ProductID]

		own := make([]catalog.Review, 0, len(p.Specifications.ReviewIDs))
		for _, id := range p.Specifications.ReviewIDs {
			if r, ok := reviewByID[id]; ok {
				own = append(own, r)
			}
		}

		out = append(out, ReconciledItem{
			LineItem:  it,
			Name:      p.Name,
			Category:  p.Category,
			Pricing:   p.Pricing,
			Inventory: p.Inventory,
			Media:     catalog.Media{PrimaryImage: p.Media.PrimaryImage},
			Reviews:   catalog.AggregateRatings(own),
		})
	}
	return out, nil
}
