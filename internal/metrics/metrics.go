// Package metrics exposes Prometheus instrumentation for the login service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login outcomes.
const (
	OutcomeChooseProvider = "choose_provider"
	OutcomeRedirected     = "redirected"
	OutcomeCallbackError  = "callback_error"
	OutcomeUnknown        = "unknown_provider"
	OutcomeFailed         = "login_failed"
	OutcomeSucceeded      = "login_succeeded"
)

// UnknownProvider is the provider label for requests naming no registered
// provider.
const UnknownProvider = "unknown"

// Metrics holds the service collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	registry *prometheus.Registry

	logins          *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	providerCalls   *prometheus.HistogramVec
}

// New creates the collectors on a dedicated registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "social_login_outcomes_total",
			Help: "Login flow outcomes by provider.",
		}, []string{"provider", "outcome"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests processed.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		providerCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "social_login_provider_call_duration_seconds",
			Help:    "Latency of outbound calls to identity providers.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider", "call", "result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.logins,
		m.requests,
		m.requestDuration,
		m.providerCalls,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// LoginOutcome counts one pass through the login flow.
func (m *Metrics) LoginOutcome(provider, outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(provider, outcome).Inc()
}

// ObserveRequest records a served HTTP request. route is the matched
// pattern, not the raw path.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveProviderCall records an outbound call (call is "token" or
// "profile").
func (m *Metrics) ObserveProviderCall(provider, call string, d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.providerCalls.WithLabelValues(provider, call, result).Observe(d.Seconds())
}
