// Package s3 implements an input source backed by Amazon S3 or any
// S3-compatible object store.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/marmos91/elfdevice/internal/ratelimiter"
	"github.com/marmos91/elfdevice/pkg/input"
)

// API is the subset of the S3 client used by the source. *s3.Client
// satisfies it.
type API interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3InputSource reads inputs from objects in a bucket.
//
// Input names map directly onto object keys below KeyPrefix, so a bucket
// laid out as "inputs/day07.txt" is addressed with prefix "inputs/" and name
// "day07.txt".
//
// Thread Safety:
// Safe for concurrent use; the AWS client is.
type S3InputSource struct {
	client    API
	bucket    string
	keyPrefix string
	limiter   *ratelimiter.RateLimiter
}

// S3InputSourceConfig contains configuration for the S3 input source.
type S3InputSourceConfig struct {
	// Client is the configured S3 client
	Client API

	// Bucket is the S3 bucket name
	Bucket string

	// KeyPrefix is an optional prefix for all object keys
	KeyPrefix string

	// RequestsPerSecond caps GetObject calls. Zero disables limiting.
	RequestsPerSecond uint

	// Burst is the limiter bucket size (default: 2x RequestsPerSecond)
	Burst uint
}

// NewS3InputSource creates a source and verifies bucket access. The bucket
// must already exist.
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - cfg: S3 configuration
//
// Returns:
//   - *S3InputSource: Initialized source
//   - error: If configuration is incomplete, the bucket is unreachable, or
//     the context is cancelled
func NewS3InputSource(ctx context.Context, cfg S3InputSourceConfig) (*S3InputSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cfg.Client == nil {
		return nil, fmt.Errorf("S3 client is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	_, err := cfg.Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(cfg.Bucket),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to access bucket %q: %w", cfg.Bucket, err)
	}

	return &S3InputSource{
		client:    cfg.Client,
		bucket:    cfg.Bucket,
		keyPrefix: cfg.KeyPrefix,
		limiter:   ratelimiter.New(cfg.RequestsPerSecond, cfg.Burst),
	}, nil
}

// Open streams the object for name. The returned body must be closed.
func (s *S3InputSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := s.getObjectKey(name)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for request slot: %w", err)
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NoSuchKey
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("s3://%s/%s: %w", s.bucket, key, input.ErrInputNotFound)
		}
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}

	return result.Body, nil
}

// Close is a no-op; the AWS client holds no per-source resources.
func (s *S3InputSource) Close() error {
	return nil
}

func (s *S3InputSource) getObjectKey(name string) (string, error) {
	clean := path.Clean("/" + name)[1:]
	if name == "" || clean == "" || clean != strings.TrimPrefix(name, "/") {
		return "", fmt.Errorf("%q: %w", name, input.ErrInvalidName)
	}
	return s.keyPrefix + clean, nil
}
