package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestConsultationMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewConsultationMetrics(reg)

	m.ObserveConsultation(OutcomeSuccess, "labor", 2*time.Second)
	m.ObserveConsultation(OutcomeSuccess, "labor", time.Second)
	m.ObserveConsultation(OutcomeInvalidRequest, "", time.Millisecond)
	m.ObserveGeneration(nil, time.Second)
	m.ObserveGeneration(errors.New("timeout"), time.Second)
	m.ObserveConfidence(0.3)
	m.FirmCacheMiss()
	m.FirmCacheHit()
	m.FirmCacheHit()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.consultations.WithLabelValues(OutcomeSuccess, "labor")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.consultations.WithLabelValues(OutcomeInvalidRequest, "none")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.firmCacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.firmCacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.generationDuration))
}

func TestConsultationMetrics_NilSafe(t *testing.T) {
	var m *ConsultationMetrics

	assert.NotPanics(t, func() {
		m.ObserveConsultation(OutcomeSuccess, "labor", time.Second)
		m.ObserveGeneration(nil, time.Second)
		m.ObserveConfidence(0.5)
		m.FirmCacheHit()
		m.FirmCacheMiss()
	})
}

func TestConsultationMetrics_InvalidUTF8CaseType(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewConsultationMetrics(reg)

	assert.NotPanics(t, func() {
		m.ObserveConsultation(OutcomeInvalidRequest, "\xff\xfe", time.Millisecond)
	})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.consultations.WithLabelValues(OutcomeInvalidRequest, "invalid")))
}
