package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Push sends the global registry to a Pushgateway, replacing the metrics
// previously pushed under job. It does nothing when metrics are disabled.
func Push(ctx context.Context, url, job string) error {
	if !IsEnabled() {
		return nil
	}
	return PushGatherer(ctx, GetRegistry(), url, job)
}

// PushGatherer sends the metrics of g to the Pushgateway at url.
func PushGatherer(ctx context.Context, g prometheus.Gatherer, url, job string) error {
	if err := push.New(url, job).Gatherer(g).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}
