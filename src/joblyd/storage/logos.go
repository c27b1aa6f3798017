package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/bitswalk/jobly/src/common/errors"
	"github.com/google/uuid"
)

// logoTypes maps accepted image content types to their stored extension
var logoTypes = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// SniffLogo identifies an uploaded image from its first bytes. SVG is text
// and sniffs as text/xml or text/plain, so it is accepted by file name when
// the content carries an <svg element.
func SniffLogo(head []byte, filename string) (contentType, ext string, err error) {
	contentType = http.DetectContentType(head)
	if ext, ok := logoTypes[contentType]; ok {
		return contentType, ext, nil
	}
	if strings.EqualFold(path.Ext(filename), ".svg") && bytes.Contains(head, []byte("<svg")) {
		return "image/svg+xml", ".svg", nil
	}
	return "", "", errors.ErrBadRequest.WithMessagef("Invalid logo type '%s'", contentType)
}

// LogoContentType guesses the content type of a stored logo from its key
func LogoContentType(key string) string {
	ext := strings.ToLower(path.Ext(key))
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	for ct, e := range logoTypes {
		if e == ext {
			return ct
		}
	}
	return "application/octet-stream"
}

// LogoKey names a new object for a company logo. Every upload gets a fresh
// key so cached copies of the old logo never mask the new one.
func LogoKey(handle, ext string) string {
	return fmt.Sprintf("logos/%s/%s%s", handle, uuid.New().String(), ext)
}

// Logo is an opened company logo
type Logo struct {
	io.ReadCloser
	Info ObjectInfo
}

// PutLogo sniffs r, stores it under a new key and returns that key together
// with the detected content type. r must be seekable so the sniffed bytes
// are stored too.
func PutLogo(ctx context.Context, b Backend, handle, filename string, r io.ReadSeeker, size int64) (key, contentType string, err error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", "", errors.ErrBadRequest.WithMessage("Failed to read logo")
	}
	if n == 0 {
		return "", "", errors.ErrBadRequest.WithMessage("Logo is empty")
	}

	contentType, ext, err := SniffLogo(head[:n], filename)
	if err != nil {
		return "", "", err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", "", errors.ErrInternal.WithCause(err)
	}

	key = LogoKey(handle, ext)
	if err := b.Upload(ctx, key, r, size, contentType); err != nil {
		return "", "", err
	}
	return key, contentType, nil
}

// OpenLogo opens a stored logo. Backends that only know the object as
// octet-stream get the content type from the key.
func OpenLogo(ctx context.Context, b Backend, key string) (*Logo, error) {
	rc, info, err := b.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	if info.ContentType == "" || info.ContentType == "application/octet-stream" {
		info.ContentType = LogoContentType(key)
	}
	return &Logo{ReadCloser: rc, Info: *info}, nil
}
