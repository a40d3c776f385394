// Package storage provides the destinations partner exports are written to.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abstratium/partner/internal/infrastructure/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

const (
	exportContentType = "text/plain; charset=utf-8"
	defaultObjectKey  = "exports/partners.txt"
	defaultEndpoint   = "http://localhost:9000"
	defaultRegion     = "us-east-1"
)

// s3API is the subset of *s3.Client the sink uses
type s3API interface {
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, opts ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads exports to one object in an S3-compatible bucket
// (AWS S3, MinIO, RustFS). Every export overwrites the previous object.
type S3Sink struct {
	api    s3API
	bucket string
	key    string
	logger *zap.Logger
}

// NewS3Sink builds a sink for cfg writing to key; an empty key falls back
// to exports/partners.txt.
func NewS3Sink(cfg config.StorageConfig, key string, logger *zap.Logger) (*S3Sink, error) {
	for _, required := range []struct{ name, value string }{
		{"bucket", cfg.Bucket},
		{"access key id", cfg.AccessKeyID},
		{"secret access key", cfg.SecretAccessKey},
	} {
		if required.value == "" {
			return nil, fmt.Errorf("s3 export sink: %s is required", required.name)
		}
	}

	client, err := newS3Client(cfg)
	if err != nil {
		return nil, err
	}
	return newS3Sink(client, cfg.Bucket, key, logger), nil
}

func newS3Sink(api s3API, bucket, key string, logger *zap.Logger) *S3Sink {
	if key == "" {
		key = defaultObjectKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &S3Sink{api: api, bucket: bucket, key: strings.TrimPrefix(key, "/"), logger: logger}
}

func newS3Client(cfg config.StorageConfig) (*s3.Client, error) {
	endpoint := cfg.Endpoint
	switch {
	case endpoint == "":
		endpoint = defaultEndpoint
	case !strings.Contains(endpoint, "://"):
		endpoint = "https://" + endpoint
	}
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("s3 export sink: load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// EnsureBucket creates the bucket unless it already exists
func (s *S3Sink) EnsureBucket(ctx context.Context) error {
	_, err := s.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("s3 export sink: head bucket %s: %w", s.bucket, err)
	}

	s.logger.Info("Creating export bucket", zap.String("bucket", s.bucket))
	_, err = s.api.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	var owned *types.BucketAlreadyOwnedByYou
	if err != nil && !errors.As(err, &owned) {
		return fmt.Errorf("s3 export sink: create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Write uploads the export and returns its s3:// location. The body is
// buffered so the upload carries a content length.
func (s *S3Sink) Write(ctx context.Context, r io.Reader) (string, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("s3 export sink: read export: %w", err)
	}
	_, err = s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(exportContentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 export sink: put %s: %w", s.Location(), err)
	}

	s.logger.Info("Export uploaded", zap.String("location", s.Location()), zap.Int("bytes", len(body)))
	return s.Location(), nil
}

// Location is the s3:// URI of the export object
func (s *S3Sink) Location() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}
