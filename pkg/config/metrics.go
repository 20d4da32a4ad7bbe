package config

import (
	"context"
	"time"

	"github.com/marmos91/elfdevice/pkg/metrics"
)

// MetricsResult contains all metrics-related components created from configuration.
type MetricsResult struct {
	// SolverMetrics records solver outcomes (nil if disabled, which is a no-op)
	SolverMetrics *metrics.SolverMetrics

	pushURL string
	job     string
}

// InitializeMetrics creates metrics components based on configuration.
//
// If metrics are enabled the global Prometheus registry is initialized and
// Prometheus-backed collectors are created. Otherwise every component is nil
// and Push does nothing.
func InitializeMetrics(cfg *Config) *MetricsResult {
	if !cfg.Metrics.Enabled {
		return &MetricsResult{}
	}

	metrics.InitRegistry()

	return &MetricsResult{
		SolverMetrics: metrics.NewSolverMetrics(),
		pushURL:       cfg.Metrics.PushURL,
		job:           cfg.Metrics.Job,
	}
}

// Push stamps the run completion time and delivers the collected metrics to
// the configured Pushgateway.
func (m *MetricsResult) Push(ctx context.Context) error {
	if m.SolverMetrics == nil {
		return nil
	}
	m.SolverMetrics.ObserveRunComplete(time.Now())
	return metrics.Push(ctx, m.pushURL, m.job)
}
