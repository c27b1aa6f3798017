package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/bitswalk/jobly/src/common/errors"
)

// S3Config holds the S3 storage configuration
type S3Config struct {
	// Endpoint is an S3-compatible endpoint URL such as http://minio:9000.
	// Empty means AWS itself.
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// UsePathStyle is required by most S3-compatible servers
	UsePathStyle bool
}

// S3Backend stores objects in a single bucket
type S3Backend struct {
	client *s3.Client
	config S3Config
}

// NewS3 creates an S3 backend with static credentials
func NewS3(cfg S3Config) (*S3Backend, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 storage requires a bucket")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	awsCfg := aws.Config{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Backend{client: client, config: cfg}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (b *S3Backend) EnsureBucket(ctx context.Context) error {
	_, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(b.config.Bucket),
	})
	if err == nil {
		return nil
	}

	_, err = b.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(b.config.Bucket),
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", b.config.Bucket, err)
	}

	return nil
}

// Upload puts an object into the bucket
func (b *S3Backend) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(b.config.Bucket),
		Key:    aws.String(key),
		Body:   reader,
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := b.client.PutObject(ctx, input); err != nil {
		return errors.ErrStorageUploadFailed.WithCause(err)
	}

	return nil
}

// Download fetches an object from the bucket
func (b *S3Backend) Download(ctx context.Context, key string) (io.ReadCloser, *ObjectInfo, error) {
	output, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil, errors.ErrStorageNotFound.WithMessagef("object not found: %s", key)
		}
		return nil, nil, fmt.Errorf("failed to download object %s: %w", key, err)
	}

	return output.Body, &ObjectInfo{
		Key:          key,
		Size:         aws.ToInt64(output.ContentLength),
		ContentType:  aws.ToString(output.ContentType),
		ETag:         aws.ToString(output.ETag),
		LastModified: aws.ToTime(output.LastModified),
	}, nil
}

// Delete removes an object from the bucket
func (b *S3Backend) Delete(ctx context.Context, key string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

// Ping checks that the bucket is reachable
func (b *S3Backend) Ping(ctx context.Context) error {
	_, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(b.config.Bucket),
	})
	if err != nil {
		return errors.ErrStorageUnavailable.WithCause(err)
	}
	return nil
}

// Type returns "s3"
func (b *S3Backend) Type() string {
	return "s3"
}

// Location returns the endpoint and bucket
func (b *S3Backend) Location() string {
	endpoint := b.config.Endpoint
	if endpoint == "" {
		endpoint = "aws:" + b.config.Region
	}
	return fmt.Sprintf("%s/%s", endpoint, b.config.Bucket)
}
