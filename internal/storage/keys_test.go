package storage

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey_UUIDPrefix(t *testing.T) {
	key := ObjectKey("margherita.png")

	prefix, name, found := strings.Cut(key, "-"+"margherita.png")
	require.True(t, found)
	assert.Empty(t, name)

	_, err := uuid.Parse(prefix)
	assert.NoError(t, err, "key should start with a parseable UUID")
}

func TestObjectKey_Unique(t *testing.T) {
	first := ObjectKey("logo.png")
	second := ObjectKey("logo.png")
	assert.NotEqual(t, first, second)
}

func TestObjectKey_Sanitization(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		suffix   string
	}{
		{"spaces become underscores", "my photo.png", "-my_photo.png"},
		{"path components stripped", "../../etc/passwd", "-passwd"},
		{"unicode replaced", "café.jpg", "-caf_.jpg"},
		{"safe punctuation kept", "header-v2_final.jpeg", "-header-v2_final.jpeg"},
		{"empty name falls back", "", "-file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := ObjectKey(tt.filename)
			assert.True(t, strings.HasSuffix(key, tt.suffix),
				"key %q should end with %q", key, tt.suffix)
		})
	}
}

func TestProperty_ObjectKeyIsURLSafe(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	isSafe := func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return true
		case r == '.' || r == '-' || r == '_':
			return true
		}
		return false
	}

	properties.Property("every key character is URL safe", prop.ForAll(
		func(filename string) bool {
			for _, r := range ObjectKey(filename) {
				if !isSafe(r) {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
