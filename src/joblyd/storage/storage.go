// Package storage keeps uploaded company logos on the local filesystem or
// in an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Backend is an object store addressed by slash-separated keys
type Backend interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Download returns errors.ErrStorageNotFound for a missing key
	Download(ctx context.Context, key string) (io.ReadCloser, *ObjectInfo, error)

	// Delete succeeds when the key does not exist
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error

	// Type returns "local" or "s3"
	Type() string

	// Location returns a human-readable location description
	Location() string
}

// ObjectInfo holds metadata about a stored object
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}

// Config holds the storage configuration
type Config struct {
	// Type is "local" or "s3"
	Type  string
	Local LocalConfig
	S3    S3Config
}

// DefaultConfig returns a local filesystem configuration
func DefaultConfig() Config {
	return Config{
		Type: "local",
		Local: LocalConfig{
			BasePath: "~/.jobly/storage",
		},
	}
}

// New creates the configured backend
func New(cfg Config) (Backend, error) {
	switch cfg.Type {
	case "s3":
		return NewS3(cfg.S3)
	case "local", "":
		return NewLocal(cfg.Local)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
