package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"ecoscan/internal/filex"
)

// Local stores images as files in a single uploads directory.
type Local struct {
	dir string
}

// NewLocal ensures dir exists and returns a Local storage over it.
func NewLocal(dir string) (*Local, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("uploads dir: %w", err)
	}
	return &Local{dir: abs}, nil
}

func (l *Local) Save(ctx context.Context, name string, data []byte) (string, error) {
	key := NewKey(name)

	if err := os.WriteFile(filepath.Join(l.dir, key), data, 0o640); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return key, nil
}

func (l *Local) Remove(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(l.dir, SanitizeFilename(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

func (l *Local) Open(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, SanitizeFilename(key)))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}
