package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SolverMetrics records solver outcomes and timings.
//
// All methods are safe on a nil receiver, which records nothing.
type SolverMetrics struct {
	solvesTotal   *prometheus.CounterVec
	solveDuration *prometheus.HistogramVec
	inputBytes    *prometheus.CounterVec
	lastRun       prometheus.Gauge
}

// NewSolverMetrics creates solver metrics on the global registry.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewSolverMetrics() *SolverMetrics {
	if !IsEnabled() {
		return nil
	}
	return NewSolverMetricsWith(GetRegistry())
}

// NewSolverMetricsWith creates solver metrics registered on reg.
func NewSolverMetricsWith(reg prometheus.Registerer) *SolverMetrics {
	return &SolverMetrics{
		solvesTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "elfdevice_solves_total",
				Help: "Total number of puzzle solves by puzzle and status",
			},
			[]string{"puzzle", "status"},
		),
		solveDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "elfdevice_solve_duration_seconds",
				Help: "Duration of puzzle solves in seconds, input read included",
				Buckets: []float64{
					0.0001, // 100µs
					0.001,  // 1ms
					0.01,   // 10ms
					0.1,    // 100ms
					1.0,    // 1s
					10.0,   // 10s
				},
			},
			[]string{"puzzle"},
		),
		inputBytes: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "elfdevice_input_bytes_total",
				Help: "Total bytes of puzzle input read",
			},
			[]string{"puzzle"},
		),
		lastRun: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "elfdevice_last_run_timestamp_seconds",
				Help: "Unix time of the last completed run",
			},
		),
	}
}

// ObserveSolve records one solve attempt.
func (m *SolverMetrics) ObserveSolve(puzzle string, inputBytes int64, duration time.Duration, err error) {
	if m == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "error"
	}
	m.solvesTotal.WithLabelValues(puzzle, status).Inc()
	m.solveDuration.WithLabelValues(puzzle).Observe(duration.Seconds())
	if inputBytes > 0 {
		m.inputBytes.WithLabelValues(puzzle).Add(float64(inputBytes))
	}
}

// ObserveRunComplete stamps the completion time of a run.
func (m *SolverMetrics) ObserveRunComplete(at time.Time) {
	if m == nil {
		return
	}
	m.lastRun.Set(float64(at.Unix()))
}
