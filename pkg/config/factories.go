package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/marmos91/elfdevice/internal/logger"
	"github.com/marmos91/elfdevice/pkg/input"
	inputFs "github.com/marmos91/elfdevice/pkg/input/fs"
	inputMemory "github.com/marmos91/elfdevice/pkg/input/memory"
	inputS3 "github.com/marmos91/elfdevice/pkg/input/s3"
	"github.com/marmos91/elfdevice/pkg/results"
	resultsBadger "github.com/marmos91/elfdevice/pkg/results/badger"
	resultsMemory "github.com/marmos91/elfdevice/pkg/results/memory"
	"github.com/mitchellh/mapstructure"
)

// CreateInputSource creates an input source based on configuration.
//
// Supported types:
//   - "filesystem": pkg/input/fs (files under a local directory)
//   - "memory": pkg/input/memory (inline file contents)
//   - "s3": pkg/input/s3 (objects in an S3 or S3-compatible bucket)
//
// Parameters:
//   - ctx: Context for initialization operations
//   - cfg: Input source configuration
//
// Returns:
//   - input.Source: Initialized source
//   - error: Configuration or initialization error
func CreateInputSource(ctx context.Context, cfg *InputsConfig) (input.Source, error) {
	switch cfg.Type {
	case "filesystem":
		return createFilesystemInputSource(ctx, cfg.Filesystem)
	case "memory":
		return createMemoryInputSource(ctx, cfg.Memory)
	case "s3":
		return createS3InputSource(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown input source type: %q (supported: filesystem, memory, s3)", cfg.Type)
	}
}

// createFilesystemInputSource creates a filesystem-based input source.
func createFilesystemInputSource(ctx context.Context, options map[string]any) (input.Source, error) {
	type FilesystemInputSourceConfig struct {
		Path string `mapstructure:"path"`
	}

	var srcCfg FilesystemInputSourceConfig
	if err := mapstructure.Decode(options, &srcCfg); err != nil {
		return nil, fmt.Errorf("failed to decode filesystem input source config: %w", err)
	}

	if srcCfg.Path == "" {
		return nil, fmt.Errorf("filesystem input source: path is required")
	}

	src, err := inputFs.NewFSInputSource(ctx, srcCfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem input source: %w", err)
	}
	return src, nil
}

// createMemoryInputSource creates an in-memory input source.
func createMemoryInputSource(ctx context.Context, options map[string]any) (input.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// A list rather than a map: viper would split file names on their dots
	type MemoryFile struct {
		Name    string `mapstructure:"name"`
		Content string `mapstructure:"content"`
	}
	type MemoryInputSourceConfig struct {
		Files []MemoryFile `mapstructure:"files"`
	}

	var srcCfg MemoryInputSourceConfig
	if err := mapstructure.Decode(options, &srcCfg); err != nil {
		return nil, fmt.Errorf("failed to decode memory input source config: %w", err)
	}

	files := make(map[string]string, len(srcCfg.Files))
	for i, f := range srcCfg.Files {
		if f.Name == "" {
			return nil, fmt.Errorf("memory input source: files[%d]: name is required", i)
		}
		files[f.Name] = f.Content
	}
	return inputMemory.NewMemoryInputSource(files), nil
}

// createS3InputSource creates an S3-based input source.
func createS3InputSource(ctx context.Context, options map[string]any) (input.Source, error) {
	type S3InputSourceConfig struct {
		Region          string `mapstructure:"region"`
		Bucket          string `mapstructure:"bucket"`
		KeyPrefix       string `mapstructure:"key_prefix"`
		Endpoint        string `mapstructure:"endpoint"`
		AccessKeyID     string `mapstructure:"access_key_id"`
		SecretAccessKey string `mapstructure:"secret_access_key"`
		MaxRetries      int    `mapstructure:"max_retries"`
		RequestsPerSec  uint   `mapstructure:"requests_per_second"`
		Burst           uint   `mapstructure:"burst"`
	}

	var srcCfg S3InputSourceConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &srcCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(options); err != nil {
		return nil, fmt.Errorf("failed to decode S3 input source config: %w", err)
	}

	if srcCfg.Bucket == "" {
		return nil, fmt.Errorf("S3 input source: bucket is required")
	}
	if srcCfg.Region == "" {
		return nil, fmt.Errorf("S3 input source: region is required")
	}

	// ========================================================================
	// Step 1: Build AWS Config
	// ========================================================================

	configOptions := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(srcCfg.Region),
	}

	// Static credentials if provided, otherwise the default credential chain
	if srcCfg.AccessKeyID != "" && srcCfg.SecretAccessKey != "" {
		credProvider := credentials.NewStaticCredentialsProvider(
			srcCfg.AccessKeyID,
			srcCfg.SecretAccessKey,
			"",
		)
		configOptions = append(configOptions, awsConfig.WithCredentialsProvider(credProvider))
	}

	maxRetries := srcCfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = 5
	}
	configOptions = append(configOptions, awsConfig.WithRetryer(func() aws.Retryer {
		return retry.NewStandard(func(o *retry.StandardOptions) {
			o.MaxAttempts = maxRetries
		})
	}))

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, configOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// ========================================================================
	// Step 2: Create S3 Client
	// ========================================================================

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// Custom endpoints (MinIO, Localstack) need path-style addressing
		if srcCfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(srcCfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	// ========================================================================
	// Step 3: Create S3 Input Source
	// ========================================================================

	src, err := inputS3.NewS3InputSource(ctx, inputS3.S3InputSourceConfig{
		Client:            client,
		Bucket:            srcCfg.Bucket,
		KeyPrefix:         srcCfg.KeyPrefix,
		RequestsPerSecond: srcCfg.RequestsPerSec,
		Burst:             srcCfg.Burst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 input source: %w", err)
	}

	logger.Info("S3 input source initialized: bucket=%s, region=%s, prefix=%s",
		srcCfg.Bucket, srcCfg.Region, srcCfg.KeyPrefix)

	return src, nil
}

// CreateResultStore creates a result store based on configuration.
//
// Supported types:
//   - "memory": pkg/results/memory (ephemeral)
//   - "badger": pkg/results/badger (BadgerDB, persistent)
func CreateResultStore(ctx context.Context, cfg *ResultsConfig) (results.Store, error) {
	switch cfg.Type {
	case "memory":
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return resultsMemory.NewMemoryResultStore(), nil
	case "badger":
		return createBadgerResultStore(ctx, cfg.Badger)
	default:
		return nil, fmt.Errorf("unknown result store type: %q (supported: memory, badger)", cfg.Type)
	}
}

// createBadgerResultStore creates a BadgerDB-based persistent result store.
func createBadgerResultStore(ctx context.Context, options map[string]any) (results.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type BadgerResultStoreOptions struct {
		DBPath           string `mapstructure:"db_path"`
		InMemory         bool   `mapstructure:"in_memory"`
		BlockCacheSizeMB int64  `mapstructure:"block_cache_mb"`
		IndexCacheSizeMB int64  `mapstructure:"index_cache_mb"`
	}

	var storeOpts BadgerResultStoreOptions
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &storeOpts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(options); err != nil {
		return nil, fmt.Errorf("failed to decode badger result store options: %w", err)
	}

	if storeOpts.DBPath == "" && !storeOpts.InMemory {
		return nil, fmt.Errorf("badger result store: db_path is required")
	}

	store, err := resultsBadger.NewBadgerResultStore(ctx, resultsBadger.BadgerResultStoreConfig{
		DBPath:           storeOpts.DBPath,
		InMemory:         storeOpts.InMemory,
		BlockCacheSizeMB: storeOpts.BlockCacheSizeMB,
		IndexCacheSizeMB: storeOpts.IndexCacheSizeMB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create badger result store: %w", err)
	}

	return store, nil
}
