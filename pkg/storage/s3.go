package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"github.com/telekom/moodmail/pkg/config"
)

// S3Source reads templates from an S3-compatible bucket. Operators upload
// customized templates there; anything absent falls through to the service's
// compiled-in copies.
type S3Source struct {
	client *s3.Client
	cfg    config.TemplateStore
	log    *zap.SugaredLogger
}

// NewS3Source creates an S3Source from the template store configuration.
// A custom Endpoint (with PathStyle) targets MinIO or other S3-compatible
// stores.
func NewS3Source(cfg config.TemplateStore, log *zap.SugaredLogger) (*S3Source, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", ErrInvalidConfig)
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("%w: access key and secret key are required", ErrInvalidConfig)
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	log = log.Named("template-source")
	log.Infow("template backing store configured",
		"bucket", cfg.Bucket, "region", cfg.Region, "endpoint", cfg.Endpoint, "keyPrefix", cfg.KeyPrefix)

	return &S3Source{
		client: s3.New(s3.Options{}, opts...),
		cfg:    cfg,
		log:    log,
	}, nil
}

// Get fetches the object stored under key, applying the configured key
// prefix. An absent object is reported as ErrKeyNotFound.
func (s *S3Source) Get(ctx context.Context, key string) (string, error) {
	objectKey := s.objectKey(key)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		wrapped := wrapS3Error(objectKey, err)
		if errors.Is(wrapped, ErrKeyNotFound) {
			s.log.Debugw("no customized template in backing store", "key", objectKey)
		}
		return "", wrapped
	}
	defer func() { _ = out.Body.Close() }()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("reading template object %s: %w", objectKey, err)
	}
	return string(content), nil
}

// objectKey prepends the configured prefix, normalizing slashes.
func (s *S3Source) objectKey(key string) string {
	prefix := strings.Trim(s.cfg.KeyPrefix, "/")
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}

// wrapS3Error maps S3 not-found conditions to ErrKeyNotFound so callers can
// distinguish an absent template from an unreachable store. It checks both
// API error codes and typed errors.
func wrapS3Error(key string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
	}

	var notFound *types.NoSuchKey
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	return fmt.Errorf("fetching template object %s: %w", key, err)
}
