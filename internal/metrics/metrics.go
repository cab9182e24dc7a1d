package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sprinkles_orders_placed_total",
		Help: "Total number of orders successfully placed.",
	})

	OrdersClaimedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sprinkles_orders_claimed_total",
		Help: "Total number of orders claimed by a delivery account.",
	})

	OrdersDeliveredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sprinkles_orders_delivered_total",
		Help: "Total number of orders marked as delivered.",
	})

	ClaimConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sprinkles_claim_conflicts_total",
		Help: "Total number of claims rejected because the order was already taken.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sprinkles_operation_errors_total",
		Help: "Total number of storage errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sprinkles_http_requests_total",
		Help: "Total number of handled HTTP requests by route and status code.",
	},
		[]string{"route", "code"},
	)

	CatalogCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sprinkles_catalog_cache_items",
		Help: "Current number of products in the catalog cache.",
	})

	OutboxPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sprinkles_outbox_published_total",
		Help: "Total number of outbox events delivered to the broker.",
	})
)
