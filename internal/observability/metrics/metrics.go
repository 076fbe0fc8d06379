package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking flow. All
// methods are nil-safe so callers can run without metrics wired.
type BookingMetrics struct {
	bookingsTotal  *prometheus.CounterVec
	bookingLatency prometheus.Histogram
	rendersTotal   *prometheus.CounterVec
	requestsTotal  *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "registry",
			Subsystem: "booking",
			Name:      "bookings_total",
			Help:      "Total booking attempts by outcome",
		}, []string{"outcome"}),
		bookingLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "registry",
			Subsystem: "booking",
			Name:      "latency_seconds",
			Help:      "Latency of successful bookings",
			Buckets:   prometheus.DefBuckets,
		}),
		rendersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "registry",
			Subsystem: "document",
			Name:      "renders_total",
			Help:      "Total confirmation document renders by status",
		}, []string{"status"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "registry",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by method and status code",
		}, []string{"method", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.bookingLatency, m.rendersTotal, m.requestsTotal)
	return m
}

func (m *BookingMetrics) ObserveBooking(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
	if outcome == "booked" {
		m.bookingLatency.Observe(seconds)
	}
}

func (m *BookingMetrics) ObserveRender(status string) {
	if m == nil {
		return
	}
	m.rendersTotal.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveRequest(method, status string) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, status).Inc()
}
