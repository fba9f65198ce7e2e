package observability

import (
	"time"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Consultation outcomes
const (
	OutcomeSuccess           = "success"
	OutcomeInvalidRequest    = "invalid_request"
	OutcomeGenerationFailed  = "generation_failed"
	OutcomeEnhancementFailed = "enhancement_failed"
)

// ConsultationMetrics holds the Prometheus collectors for the consultation
// pipeline. A nil *ConsultationMetrics is valid and records nothing.
type ConsultationMetrics struct {
	consultations      *prometheus.CounterVec
	duration           *prometheus.HistogramVec
	generationDuration *prometheus.HistogramVec
	confidence         prometheus.Histogram
	firmCacheLookups   *prometheus.CounterVec
}

// NewConsultationMetrics registers the consultation collectors with reg
func NewConsultationMetrics(reg prometheus.Registerer) *ConsultationMetrics {
	factory := promauto.With(reg)

	return &ConsultationMetrics{
		consultations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "legalconsult",
			Subsystem: "consultation",
			Name:      "requests_total",
			Help:      "Total consultations processed by outcome",
		}, []string{"outcome", "case_type"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "legalconsult",
			Subsystem: "consultation",
			Name:      "duration_seconds",
			Help:      "End-to-end consultation latency in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"outcome"}),

		generationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "legalconsult",
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "Generative backend call latency in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		}, []string{"status"}),

		confidence: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "legalconsult",
			Subsystem: "consultation",
			Name:      "confidence",
			Help:      "Distribution of returned confidence scores",
			Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 0.95},
		}),

		firmCacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "legalconsult",
			Subsystem: "firm_context",
			Name:      "cache_lookups_total",
			Help:      "Firm context cache lookups by result (hit, miss)",
		}, []string{"result"}),
	}
}

// ObserveConsultation records a finished consultation
func (m *ConsultationMetrics) ObserveConsultation(outcome, caseType string, elapsed time.Duration) {
	if m == nil {
		return
	}
	switch {
	case caseType == "":
		caseType = "none"
	case !utf8.ValidString(caseType):
		caseType = "invalid"
	}
	m.consultations.WithLabelValues(outcome, caseType).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// ObserveGeneration records one generative backend call
func (m *ConsultationMetrics) ObserveGeneration(err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.generationDuration.WithLabelValues(status).Observe(elapsed.Seconds())
}

// ObserveConfidence records the confidence of a returned response
func (m *ConsultationMetrics) ObserveConfidence(confidence float64) {
	if m == nil {
		return
	}
	m.confidence.Observe(confidence)
}

// FirmCacheHit records a firm context cache hit
func (m *ConsultationMetrics) FirmCacheHit() {
	if m == nil {
		return
	}
	m.firmCacheLookups.WithLabelValues("hit").Inc()
}

// FirmCacheMiss records a firm context cache miss
func (m *ConsultationMetrics) FirmCacheMiss() {
	if m == nil {
		return
	}
	m.firmCacheLookups.WithLabelValues("miss").Inc()
}
