package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StorefrontMetrics covers the commerce core: cart activity, checkout
// outcomes and the error taxonomy, all labeled by store.
type StorefrontMetrics struct {
	OrdersCreatedTotal       prometheus.CounterVec
	OrdersCreatedAmountTotal prometheus.CounterVec
	OrdersCanceledTotal      prometheus.CounterVec
	OrderErrorsTotal         prometheus.CounterVec
	CartLinesAddedTotal      prometheus.CounterVec
	CheckoutDuration         prometheus.HistogramVec
}

func NewStorefrontMetrics() *StorefrontMetrics {
	return &StorefrontMetrics{
		OrdersCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_orders_created_total",
				Help: "Orders successfully created from carts",
			},
			[]string{"store_id", "currency"},
		),
		OrdersCreatedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_orders_created_amount_total",
				Help: "Total amount of created orders",
			},
			[]string{"store_id", "currency"},
		),
		OrdersCanceledTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_orders_canceled_total",
				Help: "Orders moved to cancelled status",
			},
			[]string{"store_id"},
		),
		OrderErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_order_errors_total",
				Help: "Failed order creations by error kind",
			},
			[]string{"store_id", "error_type"},
		),
		CartLinesAddedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_cart_lines_added_total",
				Help: "Units added to carts",
			},
			[]string{"store_id"},
		),
		CheckoutDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "storefront_checkout_duration_seconds",
				Help:    "Cart-to-order conversion time in seconds",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{"store_id"},
		),
	}
}

func (m *StorefrontMetrics) RecordOrderCreated(storeID, currency string, amount float64) {
	m.OrdersCreatedTotal.WithLabelValues(storeID, currency).Inc()
	m.OrdersCreatedAmountTotal.WithLabelValues(storeID, currency).Add(amount)
}

func (m *StorefrontMetrics) RecordOrderCanceled(storeID string) {
	m.OrdersCanceledTotal.WithLabelValues(storeID).Inc()
}

func (m *StorefrontMetrics) RecordOrderError(storeID, errorType string) {
	m.OrderErrorsTotal.WithLabelValues(storeID, errorType).Inc()
}

func (m *StorefrontMetrics) RecordCartLineAdded(storeID string, quantity int) {
	m.CartLinesAddedTotal.WithLabelValues(storeID).Add(float64(quantity))
}

func (m *StorefrontMetrics) RecordCheckoutDuration(storeID string, seconds float64) {
	m.CheckoutDuration.WithLabelValues(storeID).Observe(seconds)
}
