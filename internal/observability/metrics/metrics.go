package metrics

import "github.com/prometheus/client_golang/prometheus"

// ContactMetrics exposes counters/histograms for the submission pipeline.
type ContactMetrics struct {
	submissionsTotal *prometheus.CounterVec
	emailLatency     prometheus.Histogram
}

// Submission outcomes recorded by ObserveSubmission.
const (
	OutcomeAccepted       = "accepted"
	OutcomeRateLimited    = "rate_limited"
	OutcomeInvalid        = "invalid"
	OutcomeHoneypot       = "honeypot"
	OutcomeDeliveryFailed = "delivery_failed"
	OutcomeMisconfigured  = "misconfigured"
	OutcomeMalformed      = "malformed"
)

func NewContactMetrics(reg prometheus.Registerer) *ContactMetrics {
	m := &ContactMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pintudigital",
			Subsystem: "contact",
			Name:      "submissions_total",
			Help:      "Contact form submissions by outcome",
		}, []string{"outcome"}),
		emailLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pintudigital",
			Subsystem: "contact",
			Name:      "email_send_seconds",
			Help:      "Latency of outbound notification email sends",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.emailLatency)
	return m
}

func (m *ContactMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *ContactMetrics) ObserveEmailSend(seconds float64) {
	if m == nil {
		return
	}
	m.emailLatency.Observe(seconds)
}
