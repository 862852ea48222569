package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

type Metrics struct {
	Requests        *prometheus.CounterVec
	LatencyMS       *prometheus.HistogramVec
	CartAdds        prometheus.Counter
	OrdersPlaced    prometheus.Counter
	OrderRevenue    prometheus.Counter
	ContactMessages prometheus.Counter
	Signups         prometheus.Counter
	LoginFailures   prometheus.Counter

	gatherer prometheus.Gatherer
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in
// tests so collectors don't collide across test cases.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "restaurant",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"route", "method", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "restaurant",
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"route"}),
		CartAdds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "restaurant",
			Name:      "cart_adds_total",
			Help:      "Items added to carts.",
		}),
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "restaurant",
			Name:      "orders_placed_total",
			Help:      "Orders created at checkout.",
		}),
		OrderRevenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "restaurant",
			Name:      "order_revenue_total",
			Help:      "Sum of order totals at checkout.",
		}),
		ContactMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "restaurant",
			Name:      "contact_messages_total",
			Help:      "Contact form submissions.",
		}),
		Signups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "restaurant",
			Name:      "signups_total",
			Help:      "Accounts created through signup.",
		}),
		LoginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "restaurant",
			Name:      "login_failures_total",
			Help:      "Rejected login attempts.",
		}),
		gatherer: reg,
	}

	reg.MustRegister(m.Requests, m.LatencyMS, m.CartAdds, m.OrdersPlaced,
		m.OrderRevenue, m.ContactMessages, m.Signups, m.LoginFailures)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// The helpers below accept a nil receiver so services can run without metrics.

func (m *Metrics) CartAdded() {
	if m != nil {
		m.CartAdds.Inc()
	}
}

func (m *Metrics) OrderPlaced(total decimal.Decimal) {
	if m != nil {
		m.OrdersPlaced.Inc()
		m.OrderRevenue.Add(total.InexactFloat64())
	}
}

func (m *Metrics) ContactReceived() {
	if m != nil {
		m.ContactMessages.Inc()
	}
}

func (m *Metrics) SignedUp() {
	if m != nil {
		m.Signups.Inc()
	}
}

func (m *Metrics) LoginFailed() {
	if m != nil {
		m.LoginFailures.Inc()
	}
}
