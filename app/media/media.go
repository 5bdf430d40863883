// Package media stores uploaded post images on disk or in S3.
package media

import (
	"context"
	"io"
	"mime"
	"path"
	"strings"

	"yatube/app/config"

	"github.com/pkg/errors"
)

var (
	ErrNotFound    = errors.New("media file not found")
	ErrInvalidName = errors.New("invalid media file name")
)

// Store keeps named blobs. Names are slash separated and relative, for
// example "posts/thumbs/abc.jpg".
type Store interface {
	Save(ctx context.Context, name string, r io.Reader, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

// New builds the store selected by cfg.MediaBackend.
func New(cfg config.Config) (Store, error) {
	switch cfg.MediaBackend {
	case config.MediaS3:
		return NewS3Store(S3Options{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
		})
	case config.MediaDisk, "":
		return NewDiskStore(cfg.MediaRoot), nil
	}
	return nil, errors.Errorf("unknown media backend %q", cfg.MediaBackend)
}

// cleanName rejects absolute names and anything escaping the store root.
func cleanName(name string) (string, error) {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return "", ErrInvalidName
	}
	cleaned := path.Clean(name)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidName
	}
	return cleaned, nil
}

// ContentType guesses a MIME type from the file extension.
func ContentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
