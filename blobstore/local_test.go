package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStore_OpenList(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	data := []byte("hello world, this is a test blob for jdb")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "kb-001.jdb"), data, 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "archive"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "archive", "kb-000.jdb"), []byte("old"), 0o600))

	blob, err := store.Open(ctx, "kb-001.jdb")
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "world", string(buf))

	n, err = blob.ReadAt(ctx, make([]byte, 8), int64(len(data))-3)
	require.Equal(t, 3, n)
	require.Equal(t, io.EOF, err)

	m, ok := blob.(Mappable)
	require.True(t, ok)
	b, err := m.Bytes()
	require.NoError(t, err)
	require.Equal(t, data, b)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"archive/kb-000.jdb", "kb-001.jdb"}, names)

	names, err = store.List(ctx, "archive/")
	require.NoError(t, err)
	require.Equal(t, []string{"archive/kb-000.jdb"}, names)
}

func TestLocalStore_NotFound(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	_, err := store.Open(context.Background(), "missing.jdb")
	require.ErrorIs(t, err, ErrNotFound)
}
