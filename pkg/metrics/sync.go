package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SyncMetrics records metadata for bulk roster import runs.
type SyncMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	rows     *prometheus.CounterVec
}

// NewSyncMetrics registers the sync metrics on the provided registerer.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	if reg == nil {
		return &SyncMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sync_duration_seconds",
		Help:    "Duration of roster sync runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_success",
		Help: "Successful roster sync runs.",
	}, []string{"stage"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_failure",
		Help: "Failed roster sync runs.",
	}, []string{"stage"})
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_rows_written",
		Help: "Rows written per entity during roster sync.",
	}, []string{"entity"})
	reg.MustRegister(duration, success, failure, rows)
	return &SyncMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		rows:     rows,
	}
}

// ObserveDuration records the duration for the named stage.
func (s *SyncMetrics) ObserveDuration(stage string, elapsed time.Duration) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.WithLabelValues(normalizeLabel(stage)).Observe(elapsed.Seconds())
}

// IncSuccess increments the success counter for the named stage.
func (s *SyncMetrics) IncSuccess(stage string) {
	if s == nil || s.success == nil {
		return
	}
	s.success.WithLabelValues(normalizeLabel(stage)).Inc()
}

// IncFailure increments the failure counter for the named stage.
func (s *SyncMetrics) IncFailure(stage string) {
	if s == nil || s.failure == nil {
		return
	}
	s.failure.WithLabelValues(normalizeLabel(stage)).Inc()
}

// AddRows adds written row counts for an entity.
func (s *SyncMetrics) AddRows(entity string, count int) {
	if s == nil || s.rows == nil || count <= 0 {
		return
	}
	s.rows.WithLabelValues(normalizeLabel(entity)).Add(float64(count))
}
