package storage

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Uploader coordinates a single image upload: generate a key, put the
// bytes, resolve the public URL. The URL is what callers persist on the
// owning entity; the stored object itself is never referenced again.
type Uploader struct {
	store  BlobStore
	logger *zap.Logger
}

// NewUploader creates a new Uploader on top of a blob store
func NewUploader(store BlobStore, logger *zap.Logger) *Uploader {
	return &Uploader{store: store, logger: logger}
}

// Upload stores the file and returns its public URL. On failure nothing
// is persisted and the caller keeps whatever URL it had before; there is
// no retry and no cleanup of partial writes.
func (u *Uploader) Upload(ctx context.Context, filename string, body io.Reader) (string, error) {
	key := ObjectKey(filename)

	storedPath, err := u.store.Put(ctx, key, body)
	if err != nil {
		u.logger.Error("Image upload failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	url := u.store.PublicURL(storedPath)

	u.logger.Info("Image uploaded",
		zap.String("key", key),
		zap.String("url", url),
	)

	return url, nil
}
