package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the assessment module.
type Metrics struct {
	// Assessments run, by outcome ("ok", "invalid_input", "error")
	AssessmentsTotal *prometheus.CounterVec

	// End-to-end calculation latency
	ComputeLatency prometheus.Histogram

	// Size of the live material snapshot
	MaterialCount prometheus.Gauge
}

// New creates a Metrics instance with all assessment metrics registered.
func New() *Metrics {
	return &Metrics{
		AssessmentsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "carbonconstruct_assessments_total",
			Help: "Total assessments run by outcome",
		}, []string{"outcome"}),

		ComputeLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "carbonconstruct_assessment_duration_seconds",
			Help:    "Duration of a full assessment (LCA, scopes, compliance, persistence)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		MaterialCount: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "carbonconstruct_material_snapshot_size",
			Help: "Number of materials in the live coefficient snapshot",
		}),
	}
}

// IncrementAssessment records an assessment outcome.
func (m *Metrics) IncrementAssessment(outcome string) {
	if m != nil {
		m.AssessmentsTotal.WithLabelValues(outcome).Inc()
	}
}

// ObserveCompute records the duration of a full assessment.
func (m *Metrics) ObserveCompute(d time.Duration) {
	if m != nil {
		m.ComputeLatency.Observe(d.Seconds())
	}
}

// SetMaterialCount records the live snapshot size.
func (m *Metrics) SetMaterialCount(n int) {
	if m != nil {
		m.MaterialCount.Set(float64(n))
	}
}
