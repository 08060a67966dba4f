package blobstore

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("hello world")
	require.NoError(t, store.Put(ctx, "kb/a.jdb", data))
	require.NoError(t, store.Put(ctx, "kb/b.jdb", []byte("b")))
	require.NoError(t, store.Put(ctx, "other.jdb", []byte("c")))

	// Put copies its input.
	data[0] = 'H'

	blob, err := store.Open(ctx, "kb/a.jdb")
	require.NoError(t, err)
	defer blob.Close()
	require.Equal(t, int64(11), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(buf))

	buf = make([]byte, 10)
	n, err = blob.ReadAt(ctx, buf, 6)
	assert.Equal(t, 5, n)
	assert.Equal(t, io.EOF, err)

	names, err := store.List(ctx, "kb/")
	require.NoError(t, err)
	assert.Equal(t, []string{"kb/a.jdb", "kb/b.jdb"}, names)

	require.NoError(t, store.Delete(ctx, "kb/a.jdb"))
	_, err = store.Open(ctx, "kb/a.jdb")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReaderAtBlob(t *testing.T) {
	ctx := context.Background()
	blob := NewReaderAtBlob(bytes.NewReader([]byte("0123456789")), 10)
	require.Equal(t, int64(10), blob.Size())

	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 2)
	require.NoError(t, err)
	assert.Equal(t, "2345", string(buf[:n]))

	n, err = blob.ReadAt(ctx, buf, 8)
	assert.Equal(t, 2, n)
	assert.Equal(t, io.EOF, err)

	n, err = blob.ReadAt(ctx, buf, 10)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = blob.ReadAt(cancelled, buf, 0)
	assert.ErrorIs(t, err, context.Canceled)

	require.NoError(t, blob.Close())
}
