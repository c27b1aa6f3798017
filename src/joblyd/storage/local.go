package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitswalk/jobly/src/common/errors"
	"github.com/bitswalk/jobly/src/common/paths"
)

// LocalConfig holds the local filesystem storage configuration
type LocalConfig struct {
	BasePath string
}

// LocalBackend stores objects as files below a base directory
type LocalBackend struct {
	basePath string
}

// NewLocal creates the base directory if needed and returns the backend
func NewLocal(cfg LocalConfig) (*LocalBackend, error) {
	basePath, err := filepath.Abs(paths.Expand(cfg.BasePath))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage path %s: %w", cfg.BasePath, err)
	}

	if err := paths.EnsureDir(basePath); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalBackend{basePath: basePath}, nil
}

// fullPath maps a key below basePath. Keys that would escape it are
// rejected.
func (b *LocalBackend) fullPath(key string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	full := filepath.Join(b.basePath, clean)

	if full == b.basePath || !strings.HasPrefix(full, b.basePath+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return full, nil
}

// Upload writes the object to a temporary file and renames it into place
func (b *LocalBackend) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	full, err := b.fullPath(key)
	if err != nil {
		return err
	}

	if err := paths.EnsureParent(full); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return errors.ErrStorageUploadFailed.WithCause(err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, reader)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return errors.ErrStorageUploadFailed.WithCause(err)
	}
	if size > 0 && written != size {
		return errors.ErrStorageUploadFailed.WithMessagef("size mismatch: expected %d bytes, wrote %d bytes", size, written)
	}

	if err := os.Rename(tmp.Name(), full); err != nil {
		return errors.ErrStorageUploadFailed.WithCause(err)
	}

	return nil
}

// Download opens a stored file
func (b *LocalBackend) Download(ctx context.Context, key string) (io.ReadCloser, *ObjectInfo, error) {
	full, err := b.fullPath(key)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.ErrStorageNotFound.WithMessagef("object not found: %s", key)
		}
		return nil, nil, fmt.Errorf("failed to open %s: %w", key, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("failed to stat %s: %w", key, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	sum := md5.Sum([]byte(fmt.Sprintf("%s-%d-%d", stat.Name(), stat.Size(), stat.ModTime().UnixNano())))

	return file, &ObjectInfo{
		Key:          key,
		Size:         stat.Size(),
		ContentType:  contentType,
		ETag:         hex.EncodeToString(sum[:]),
		LastModified: stat.ModTime(),
	}, nil
}

// Delete removes a stored file
func (b *LocalBackend) Delete(ctx context.Context, key string) error {
	full, err := b.fullPath(key)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Ping checks that the base directory is still there
func (b *LocalBackend) Ping(ctx context.Context) error {
	info, err := os.Stat(b.basePath)
	if err != nil || !info.IsDir() {
		return errors.ErrStorageUnavailable.WithMessagef("storage directory unavailable: %s", b.basePath)
	}
	return nil
}

// Type returns "local"
func (b *LocalBackend) Type() string {
	return "local"
}

// Location returns the base directory
func (b *LocalBackend) Location() string {
	return b.basePath
}
