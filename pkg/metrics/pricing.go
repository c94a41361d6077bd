package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics records storefront quote activity.
type PricingMetrics struct {
	duration *prometheus.HistogramVec
	quotes   *prometheus.CounterVec
	gaps     *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_quote_duration_seconds",
		Help:    "Duration of storefront price quotes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_quotes_total",
		Help: "Resolved storefront quotes by price basis.",
	}, []string{"basis"})
	gaps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_configuration_gaps_total",
		Help: "Quotes resolved against an incomplete price configuration.",
	}, []string{"gap"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_quote_failures_total",
		Help: "Quotes that failed by error code.",
	}, []string{"code"})
	reg.MustRegister(duration, quotes, gaps, failures)
	return &PricingMetrics{
		duration: duration,
		quotes:   quotes,
		gaps:     gaps,
		failures: failures,
	}
}

// ObserveDuration records how long the named operation took.
func (p *PricingMetrics) ObserveDuration(operation string, duration time.Duration) {
	if p == nil || p.duration == nil {
		return
	}
	p.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncQuote counts a resolved quote for the given basis.
func (p *PricingMetrics) IncQuote(basis string) {
	if p == nil || p.quotes == nil {
		return
	}
	p.quotes.WithLabelValues(normalizeLabel(basis)).Inc()
}

// IncGap counts a configuration gap surfaced on a quote.
func (p *PricingMetrics) IncGap(gap string) {
	if p == nil || p.gaps == nil {
		return
	}
	p.gaps.WithLabelValues(normalizeLabel(gap)).Inc()
}

// IncFailure counts a failed quote by error code.
func (p *PricingMetrics) IncFailure(code string) {
	if p == nil || p.failures == nil {
		return
	}
	p.failures.WithLabelValues(normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
