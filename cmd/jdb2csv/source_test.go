package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in   string
		want location
	}{
		{"skj.jdb", location{key: "skj.jdb"}},
		{"/data/kb/skj.jdb", location{key: "/data/kb/skj.jdb"}},
		{"s3://kb-snapshots/skj/latest.jdb", location{scheme: "s3", bucket: "kb-snapshots", key: "skj/latest.jdb"}},
		{"minio://kb/skj.jdb.zst", location{scheme: "minio", bucket: "kb", key: "skj.jdb.zst"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLocation(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLocation_Invalid(t *testing.T) {
	for _, in := range []string{"gs://bucket/key", "s3://bucket", "s3:///key", "minio://bucket/"} {
		t.Run(in, func(t *testing.T) {
			_, err := parseLocation(in)
			assert.Error(t, err)
		})
	}
}

func TestDefaultStem(t *testing.T) {
	assert.Equal(t, "skj", defaultStem("skj.jdb"))
	assert.Equal(t, "skj", defaultStem("/data/kb/skj.jdb"))
	assert.Equal(t, "skj", defaultStem("skj"))
	assert.Equal(t, "latest", defaultStem("s3://kb/skj/latest.jdb"))
	assert.Equal(t, "skj.jdb", defaultStem("minio://kb/skj.jdb.zst"))
}

func TestOpenSource_Local(t *testing.T) {
	store, name, err := openSource(context.Background(), "/data/kb/skj.jdb", sourceConfig{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.Equal(t, "skj.jdb", name)
}

func TestOpenSource_MinioNeedsEndpoint(t *testing.T) {
	_, _, err := openSource(context.Background(), "minio://kb/skj.jdb", sourceConfig{}, func(string) string { return "" })
	assert.ErrorContains(t, err, "--endpoint")
}

func TestOpenSource_Minio(t *testing.T) {
	env := map[string]string{"MINIO_ACCESS_KEY": "access", "MINIO_SECRET_KEY": "secret"}
	store, name, err := openSource(context.Background(), "minio://kb/skj.jdb",
		sourceConfig{endpoint: "localhost:9000", insecure: true}, func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.Equal(t, "skj.jdb", name)
}
