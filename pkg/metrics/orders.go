package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records order placement and lifecycle transition activity.
type OrderMetrics struct {
	placeDuration *prometheus.HistogramVec
	placed        *prometheus.CounterVec
	transitions   *prometheus.CounterVec
	rejections    *prometheus.CounterVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	placeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_place_duration_seconds",
		Help:    "Duration of order placement in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	placed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders successfully placed.",
	}, []string{"dealer"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Applied order status transitions.",
	}, []string{"from", "to"})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transition_rejections_total",
		Help: "Rejected order status transitions.",
	}, []string{"from", "to"})
	reg.MustRegister(placeDuration, placed, transitions, rejections)
	return &OrderMetrics{
		placeDuration: placeDuration,
		placed:        placed,
		transitions:   transitions,
		rejections:    rejections,
	}
}

// ObservePlaceDuration records how long an order placement took.
func (m *OrderMetrics) ObservePlaceDuration(outcome string, duration time.Duration) {
	if m == nil || m.placeDuration == nil {
		return
	}
	m.placeDuration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncPlaced increments the placed-order counter for the dealer.
func (m *OrderMetrics) IncPlaced(dealer string) {
	if m == nil || m.placed == nil {
		return
	}
	m.placed.WithLabelValues(normalizeLabel(dealer)).Inc()
}

// IncTransition counts an applied status transition edge.
func (m *OrderMetrics) IncTransition(from, to string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}

// IncRejection counts a rejected status transition edge.
func (m *OrderMetrics) IncRejection(from, to string) {
	if m == nil || m.rejections == nil {
		return
	}
	m.rejections.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
