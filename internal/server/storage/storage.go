// Package storage persists uploaded images. Keys are generated server-side
// so two uploads never collide, and client filenames are sanitized before
// they become part of a key.
package storage

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Storage is the durable home of uploaded images.
type Storage interface {
	// Save persists data under a fresh key derived from name and returns
	// the key.
	Save(ctx context.Context, name string, data []byte) (string, error)
	// Remove deletes the object with the given key. A missing object is
	// not an error.
	Remove(ctx context.Context, key string) error
	// Open returns the stored bytes for key.
	Open(ctx context.Context, key string) ([]byte, error)
}

// NewKey builds a collision-free storage key: a uuid prefix joined to the
// sanitized client filename.
func NewKey(name string) string {
	return uuid.New().String() + "_" + SanitizeFilename(name)
}

// SanitizeFilename reduces a client-supplied filename to a safe base name:
// any path components are dropped and everything outside [a-zA-Z0-9._-]
// becomes '_'. An empty result falls back to "image".
func SanitizeFilename(name string) string {
	// Strip directories, both separators: client OS is unknown.
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	s := strings.Trim(b.String(), "._")
	if s == "" {
		return "image"
	}
	return s
}
