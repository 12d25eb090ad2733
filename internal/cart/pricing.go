package cart

// Summarize derives the totals for a reconciled cart. Items carry
// current and optional original prices; the original total falls back
// to the current price for items that were never discounted. A promo
// discount can reduce the final total but never below zero.
//
// Pure and deterministic; safe to call repeatedly on the same input.
func Summarize(items []ReconciledItem, promoDiscount float64) Summary {
	if promoDiscount < 0 {
		promoDiscount = 0
	}

	s := Summary{PromoDiscount: promoDiscount}
	for _, it := range items {
		qty := float64(it.Quantity)
		current := it.Pricing.CurrentPrice

		original := current
		if it.Pricing.OriginalPrice != nil {
			original = *it.Pricing.OriginalPrice
		}

		s.TotalItems += it.Quantity
		s.OriginalTotal += original * qty
		s.DiscountedTotal += current * qty
		if original > current {
			s.TotalDiscount += (original - current) * qty
		}
	}

	s.FinalTotal = s.DiscountedTotal - promoDiscount
	if s.FinalTotal < 0 {
		s.FinalTotal = 0
	}
	return s
}
