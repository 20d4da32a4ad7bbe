package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/marmos91/elfdevice/internal/logger"
	"github.com/marmos91/elfdevice/pkg/input"
	"github.com/marmos91/elfdevice/pkg/results"
)

// Runtime bundles the components a solve run needs, built from one Config.
type Runtime struct {
	Config  *Config
	Inputs  input.Source
	Results results.Store
	Metrics *MetricsResult
}

// InitializeRuntime creates every configured component.
//
// This function orchestrates the initialization process:
//  1. Creates the input source from cfg.Inputs
//  2. Creates the result store from cfg.Results
//  3. Initializes metrics from cfg.Metrics
//
// On failure, components created so far are closed.
//
// Example:
//
//	cfg, _ := config.Load("config.yaml")
//	rt, err := config.InitializeRuntime(ctx, cfg)
//	if err != nil {
//	    log.Fatalf("Failed to initialize runtime: %v", err)
//	}
//	defer rt.Close()
func InitializeRuntime(ctx context.Context, cfg *Config) (*Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is nil")
	}

	logger.Debug("Initializing runtime from configuration")

	src, err := CreateInputSource(ctx, &cfg.Inputs)
	if err != nil {
		return nil, err
	}
	logger.Debug("Input source: %s", cfg.Inputs.Type)

	store, err := CreateResultStore(ctx, &cfg.Results)
	if err != nil {
		_ = src.Close()
		return nil, err
	}
	logger.Debug("Result store: %s", cfg.Results.Type)

	return &Runtime{
		Config:  cfg,
		Inputs:  src,
		Results: store,
		Metrics: InitializeMetrics(cfg),
	}, nil
}

// Close releases the input source and the result store.
func (rt *Runtime) Close() error {
	return errors.Join(rt.Inputs.Close(), rt.Results.Close())
}
