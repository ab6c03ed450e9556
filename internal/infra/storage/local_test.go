package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	repo "github.com/Lucas16AR/stock-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDisk_PutExistsDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	d, err := NewLocalDisk(root, "/uploads/")
	require.NoError(t, err)

	ok, err := d.Exists(ctx, "a.png")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, d.Put(ctx, "a.png", strings.NewReader("png-bytes")))

	ok, err = d.Exists(ctx, "a.png")
	require.NoError(t, err)
	assert.True(t, ok)

	b, err := os.ReadFile(filepath.Join(root, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))

	assert.Equal(t, "/uploads/a.png", d.URL("a.png"))

	require.NoError(t, d.Delete(ctx, "a.png"))
	ok, err = d.Exists(ctx, "a.png")
	require.NoError(t, err)
	assert.False(t, ok)

	// 2回目の削除もエラーにしない
	require.NoError(t, d.Delete(ctx, "a.png"))
}

func TestLocalDisk_StaysInsideRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	d, err := NewLocalDisk(filepath.Join(root, "uploads"), "/uploads")
	require.NoError(t, err)

	require.NoError(t, d.Put(ctx, "../escape.png", strings.NewReader("x")))

	_, err = os.Stat(filepath.Join(root, "escape.png"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, "uploads", "escape.png"))
	assert.NoError(t, err)
}

func TestLocalDisk_PutDoesNotOverwrite(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	d, err := NewLocalDisk(root, "/uploads")
	require.NoError(t, err)

	require.NoError(t, d.Put(ctx, "a.png", strings.NewReader("first")))
	err = d.Put(ctx, "a.png", strings.NewReader("second"))
	assert.ErrorIs(t, err, repo.ErrFileExists)

	b, err := os.ReadFile(filepath.Join(root, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(b))
}
