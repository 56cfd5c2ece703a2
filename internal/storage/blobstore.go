package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"menu-admin/internal/config"
)

// BlobStore is the narrow contract the image pipeline needs from object
// storage: write an object under a key and resolve its public URL.
// Objects are write-once; nothing ever deletes or rewrites them.
type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader) (storedPath string, err error)
	PublicURL(storedPath string) string
}

// DiskStore stores objects as files under a local uploads directory and
// serves them back under a configured base URL.
type DiskStore struct {
	dir  string
	base string
}

// NewDiskStore creates the uploads directory if needed and returns a
// store rooted there.
func NewDiskStore(cfg config.StorageConfig) (*DiskStore, error) {
	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	return &DiskStore{
		dir:  cfg.UploadsDir,
		base: strings.TrimRight(cfg.PublicBase, "/"),
	}, nil
}

// Put writes the object to disk under key and returns the stored path.
func (s *DiskStore) Put(ctx context.Context, key string, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst := filepath.Join(s.dir, key)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create object file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	return key, nil
}

// PublicURL resolves the URL an object is served under.
func (s *DiskStore) PublicURL(storedPath string) string {
	return s.base + "/" + storedPath
}
