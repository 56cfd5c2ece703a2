package storage

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ObjectKey generates a collision-resistant storage key for an uploaded
// file: a random UUID prefix joined to a sanitized form of the original
// filename, so the original name stays visible in the bucket.
func ObjectKey(filename string) string {
	return uuid.New().String() + "-" + sanitizeFilename(filename)
}

// sanitizeFilename strips any path components and replaces characters
// that are unsafe in object keys or URLs.
func sanitizeFilename(filename string) string {
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "file"
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	return b.String()
}
