package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Metrics exposes Prometheus instruments for the register and the HTTP API.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry         *prometheus.Registry
	invoicesCreated  *prometheus.CounterVec
	invoicesRefunded prometheus.Counter
	invoiceAmount    *prometheus.HistogramVec
	checkoutFailures *prometheus.CounterVec
	rateLimited      prometheus.Counter
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New registers the instruments on a dedicated registry, together with the
// Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	invoicesCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_invoices_created_total",
		Help: "Invoices committed by payment method and order type.",
	}, []string{"method", "order_type"})

	invoicesRefunded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_invoices_refunded_total",
		Help: "Invoices moved to the refunded state.",
	})

	invoiceAmount := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pos_invoice_amount",
		Help:    "Invoice grand total distribution.",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"method"})

	checkoutFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_checkout_failures_total",
		Help: "Checkouts that did not produce an invoice, by reason.",
	}, []string{"reason"})

	rateLimited := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_rate_limited_requests_total",
		Help: "Requests rejected by the branch rate limiter.",
	})

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pos_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		invoicesCreated,
		invoicesRefunded,
		invoiceAmount,
		checkoutFailures,
		rateLimited,
		httpRequests,
		httpDuration,
	)

	return &Metrics{
		registry:         reg,
		invoicesCreated:  invoicesCreated,
		invoicesRefunded: invoicesRefunded,
		invoiceAmount:    invoiceAmount,
		checkoutFailures: checkoutFailures,
		rateLimited:      rateLimited,
		httpRequests:     httpRequests,
		httpDuration:     httpDuration,
	}
}

// Registry returns the registry the instruments live on
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordInvoiceCreated counts a committed invoice and observes its total
func (m *Metrics) RecordInvoiceCreated(method enum.PaymentMethod, orderType enum.OrderType, total decimal.Decimal) {
	if m == nil {
		return
	}
	m.invoicesCreated.WithLabelValues(method.String(), orderType.String()).Inc()
	amount, _ := total.Float64()
	m.invoiceAmount.WithLabelValues(method.String()).Observe(amount)
}

// RecordInvoiceRefunded counts a refund
func (m *Metrics) RecordInvoiceRefunded() {
	if m == nil {
		return
	}
	m.invoicesRefunded.Inc()
}

// RecordCheckoutFailure counts a checkout that was rejected or failed to persist
func (m *Metrics) RecordCheckoutFailure(reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.checkoutFailures.WithLabelValues(reason).Inc()
}

// RecordRateLimited counts a request rejected by the rate limiter
func (m *Metrics) RecordRateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}

// ObserveHTTPRequest records one served request
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
