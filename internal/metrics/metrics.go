package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CartRepairs counts read-time cart corrections (orphaned or
	// clamped line items written back to the store).
	CartRepairs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_repairs_total",
		Help: "Number of carts corrected during reconciliation.",
	})

	CartItemsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_items_dropped_total",
		Help: "Line items dropped during reconciliation (orphaned or zero stock).",
	})

	CartItemsClamped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_items_clamped_total",
		Help: "Line items clamped to available stock during reconciliation.",
	})

	EmailsEnqueued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_emails_enqueued_total",
		Help: "Outbound emails handed to the delivery queue.",
	}, []string{"kind"})

	MagicLinksIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_magic_links_issued_total",
		Help: "Magic links issued, by purpose.",
	}, []string{"purpose"})
)
