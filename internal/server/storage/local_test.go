package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) *Local {
	t.Helper()
	l, err := NewLocal(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	return l
}

func TestLocal_SaveOpenRemove(t *testing.T) {
	l := newLocal(t)
	ctx := context.Background()

	key, err := l.Save(ctx, "photo.jpg", []byte("jpegdata"))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(key, "_photo.jpg"), "key keeps the sanitized name: %s", key)

	data, err := l.Open(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpegdata"), data)

	require.NoError(t, l.Remove(ctx, key))

	_, err = l.Open(ctx, key)
	require.Error(t, err)
}

func TestLocal_SaveTwiceNeverCollides(t *testing.T) {
	l := newLocal(t)
	ctx := context.Background()

	first, err := l.Save(ctx, "photo.jpg", []byte("one"))
	require.NoError(t, err)
	second, err := l.Save(ctx, "photo.jpg", []byte("two"))
	require.NoError(t, err)

	require.NotEqual(t, first, second)

	data, err := l.Open(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data, "first upload must survive the second")
}

func TestLocal_RemoveMissingIsNotAnError(t *testing.T) {
	l := newLocal(t)
	require.NoError(t, l.Remove(context.Background(), "ghost.jpg"))
}

func TestLocal_TraversalNameStaysInDir(t *testing.T) {
	l := newLocal(t)
	ctx := context.Background()

	outside := filepath.Join(filepath.Dir(l.dir), "escape.txt")

	key, err := l.Save(ctx, "../escape.txt", []byte("x"))
	require.NoError(t, err)
	assert.NotContains(t, key, "/")
	assert.NotContains(t, key, "..")

	_, err = os.Stat(outside)
	assert.True(t, os.IsNotExist(err), "file must not land outside the uploads dir")
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "photo.jpg"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\tree.png`, "tree.png"},
		{"my tree pic.png", "my_tree_pic.png"},
		{"....", "image"},
		{"", "image"},
		{"väx t.jpg", "v_x_t.jpg"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), "input %q", tt.in)
	}
}
