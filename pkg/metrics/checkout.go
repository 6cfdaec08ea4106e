package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records the checkout funnel from build to reconciliation.
type CheckoutMetrics struct {
	started    prometheus.Counter
	dispatched prometheus.Counter
	confirmed  prometheus.Counter
	cancelled  prometheus.Counter
	failures   *prometheus.CounterVec
	dispatch   prometheus.Histogram
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	started := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_started_total",
		Help: "Checkout attempts that entered the build stage.",
	})
	dispatched := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_dispatched_total",
		Help: "Checkout attempts handed off to the payment gateway.",
	})
	confirmed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_confirmed_total",
		Help: "Gateway returns reconciled as paid.",
	})
	cancelled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_cancelled_total",
		Help: "Gateway returns reconciled as cancelled.",
	})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failures_total",
		Help: "Checkout flow failures by stage.",
	}, []string{"stage"})
	dispatch := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_dispatch_seconds",
		Help:    "Time from checkout start to gateway handoff.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(started, dispatched, confirmed, cancelled, failures, dispatch)
	return &CheckoutMetrics{
		started:    started,
		dispatched: dispatched,
		confirmed:  confirmed,
		cancelled:  cancelled,
		failures:   failures,
		dispatch:   dispatch,
	}
}

// IncStarted counts a checkout attempt entering the build stage.
func (c *CheckoutMetrics) IncStarted() {
	if c == nil || c.started == nil {
		return
	}
	c.started.Inc()
}

// IncDispatched counts a gateway handoff.
func (c *CheckoutMetrics) IncDispatched() {
	if c == nil || c.dispatched == nil {
		return
	}
	c.dispatched.Inc()
}

// IncConfirmed counts a successful reconciliation.
func (c *CheckoutMetrics) IncConfirmed() {
	if c == nil || c.confirmed == nil {
		return
	}
	c.confirmed.Inc()
}

// IncCancelled counts a cancel-path reconciliation.
func (c *CheckoutMetrics) IncCancelled() {
	if c == nil || c.cancelled == nil {
		return
	}
	c.cancelled.Inc()
}

// IncFailure counts a failure at the named stage.
func (c *CheckoutMetrics) IncFailure(stage string) {
	if c == nil || c.failures == nil {
		return
	}
	c.failures.WithLabelValues(normalizeLabel(stage)).Inc()
}

// ObserveDispatch records the time taken to reach the gateway handoff.
func (c *CheckoutMetrics) ObserveDispatch(duration time.Duration) {
	if c == nil || c.dispatch == nil {
		return
	}
	c.dispatch.Observe(duration.Seconds())
}

func normalizeLabel(stage string) string {
	if stage == "" {
		return "unknown"
	}
	return stage
}
