package cart

import (
	"reflect"
	"testing"

	"github.com/sohaibalidev/Zeevno/internal/catalog"
)

func priced(current float64, original *float64, qty int) ReconciledItem {
	return ReconciledItem{
		LineItem: LineItem{ProductID: "100001", Quantity: qty},
		Pricing:  catalog.Pricing{CurrentPrice: current, OriginalPrice: original},
	}
}

func ptr(f float64) *float64 { return &f }

func TestSummarize(t *testing.T) {
	tests := map[string]struct {
		items []ReconciledItem
		promo float64
		want  Summary
	}{
		"empty cart": {
			items: nil,
			want:  Summary{},
		},
		"mixed discounted and plain items": {
			items: []ReconciledItem{
				priced(100, nil, 2),
				priced(50, ptr(80), 1),
			},
			want: Summary{
				TotalItems:      3,
				OriginalTotal:   280,
				DiscountedTotal: 250,
				TotalDiscount:   30,
				FinalTotal:      250,
			},
		},
		"promo reduces final total": {
			items: []ReconciledItem{priced(40, nil, 1)},
			promo: 15,
			want: Summary{
				TotalItems:      1,
				OriginalTotal:   40,
				DiscountedTotal: 40,
				PromoDiscount:   15,
				FinalTotal:      25,
			},
		},
		"promo never drives total negative": {
			items: []ReconciledItem{priced(10, nil, 1)},
			promo: 100,
			want: Summary{
				TotalItems:      1,
				OriginalTotal:   10,
				DiscountedTotal: 10,
				PromoDiscount:   100,
				FinalTotal:      0,
			},
		},
		"negative promo is ignored": {
			items: []ReconciledItem{priced(10, nil, 1)},
			promo: -5,
			want: Summary{
				TotalItems:      1,
				OriginalTotal:   10,
				DiscountedTotal: 10,
				FinalTotal:      10,
			},
		},
		"original below current counts no discount": {
			items: []ReconciledItem{priced(100, ptr(90), 1)},
			want: Summary{
				TotalItems:      1,
				OriginalTotal:   90,
				DiscountedTotal: 100,
				TotalDiscount:   0,
				FinalTotal:      100,
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Summarize(tc.items, tc.promo)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("summary mismatch\ngot  %+v\nwant %+v", got, tc.want)
			}

			// pure function: a second call yields identical output
			again := Summarize(tc.items, tc.promo)
			if !reflect.DeepEqual(got, again) {
				t.Fatalf("summarize not idempotent\nfirst  %+v\nsecond %+v", got, again)
			}

			if got.TotalDiscount < 0 {
				t.Fatalf("totalDiscount negative: %v", got.TotalDiscount)
			}
			if got.FinalTotal < 0 {
				t.Fatalf("finalTotal negative: %v", got.FinalTotal)
			}
		})
	}
}
