package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_GetSize(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), make([]byte, 10), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b"), make([]byte, 5), 0o600))

	a := New()
	ctx := context.Background()

	size, err := a.GetSize(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, int64(15), size)

	size, err = a.GetSize(ctx, filepath.Join(dir, "a"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), size)

	size, err = a.GetSize(ctx, filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestAdapter_GetSizeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().GetSize(ctx, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAdapter_ExistsAndRemoveAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	a := New()
	ctx := context.Background()

	ok, err := a.Exists(ctx, dir)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, a.RemoveAll(ctx, dir))
	ok, err = a.Exists(ctx, dir)
	require.NoError(t, err)
	assert.False(t, ok)
}
