package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/jdb"
)

func TestExport(t *testing.T) {
	b := fixture().Bytes()
	db, err := jdb.Load(context.Background(), bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err)

	stem := filepath.Join(t.TempDir(), "kb")
	require.NoError(t, export(context.Background(), db, stem, jdb.NoopLogger()))

	for _, tt := range tables(db) {
		f, err := os.Open(stem + tt.suffix)
		require.NoError(t, err)
		recs, err := csv.NewReader(f).ReadAll()
		require.NoError(t, f.Close())
		require.NoError(t, err)

		assert.Equal(t, tt.header, recs[0], tt.suffix)
		assert.Len(t, recs, tt.count+1, tt.suffix)
	}
}

func TestExport_MissingDirectory(t *testing.T) {
	b := fixture().Bytes()
	db, err := jdb.Load(context.Background(), bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err)

	stem := filepath.Join(t.TempDir(), "missing", "kb")
	assert.Error(t, export(context.Background(), db, stem, jdb.NoopLogger()))
}

func TestExport_Canceled(t *testing.T) {
	b := fixture().Bytes()
	db, err := jdb.Load(context.Background(), bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = export(ctx, db, filepath.Join(t.TempDir(), "kb"), jdb.NoopLogger())
	assert.ErrorIs(t, err, context.Canceled)
}
