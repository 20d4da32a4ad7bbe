// Package metrics provides Prometheus metrics collection for elfdevice.
//
// All metrics are optional - if not initialized, components use no-op
// implementations. A batch run is short lived, so metrics are pushed to a
// Pushgateway once the run completes rather than scraped.
//
// Usage:
//
//	// Initialize global registry (typically in main.go)
//	metrics.InitRegistry()
//
//	// Create metrics for the runner; nil when disabled
//	solverMetrics := metrics.NewSolverMetrics()
//
//	// After the run
//	metrics.Push(ctx, "http://localhost:9091", "elfdevice")
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// registry is the global Prometheus registry for all elfdevice metrics
	// Protected by registryOnce for write-once, read-many pattern
	registry     *prometheus.Registry
	registryOnce sync.Once
)

// InitRegistry initializes the global Prometheus registry.
//
// Safe to call multiple times - subsequent calls are ignored. If never
// called, GetRegistry returns nil and constructors return nil (no-op).
func InitRegistry() {
	registryOnce.Do(func() {
		registry = prometheus.NewRegistry()
	})
}

// GetRegistry returns the global Prometheus registry, or nil if metrics
// are disabled.
func GetRegistry() *prometheus.Registry {
	return registry
}

// IsEnabled returns true if InitRegistry has been called.
func IsEnabled() bool {
	return GetRegistry() != nil
}
