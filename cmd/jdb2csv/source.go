package main

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/hupe1980/jdb/blobstore"
	"github.com/hupe1980/jdb/blobstore/minio"
	"github.com/hupe1980/jdb/blobstore/s3"
)

type sourceConfig struct {
	endpoint string
	region   string
	insecure bool
	prefetch bool
}

// location is a parsed INFILE argument.
type location struct {
	scheme string // "", "s3" or "minio"
	bucket string
	key    string // local path when scheme is empty
}

func parseLocation(infile string) (location, error) {
	if !strings.Contains(infile, "://") {
		return location{key: infile}, nil
	}

	u, err := url.Parse(infile)
	if err != nil {
		return location{}, fmt.Errorf("invalid INFILE %q: %w", infile, err)
	}
	switch u.Scheme {
	case "s3", "minio":
	default:
		return location{}, fmt.Errorf("invalid INFILE %q: unsupported scheme %q", infile, u.Scheme)
	}

	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return location{}, fmt.Errorf("invalid INFILE %q: want %s://bucket/key", infile, u.Scheme)
	}
	return location{scheme: u.Scheme, bucket: u.Host, key: key}, nil
}

// defaultStem strips the directory and the last extension of INFILE.
func defaultStem(infile string) string {
	base := filepath.Base(infile)
	if loc, err := parseLocation(infile); err == nil && loc.scheme != "" {
		base = path.Base(loc.key)
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// openSource resolves INFILE to a store and the name of the snapshot in it.
// Compressed snapshots are inflated on open.
func openSource(ctx context.Context, infile string, cfg sourceConfig, getenv func(string) string) (blobstore.BlobStore, string, error) {
	loc, err := parseLocation(infile)
	if err != nil {
		return nil, "", err
	}

	var (
		store blobstore.BlobStore
		name  = loc.key
	)
	switch loc.scheme {
	case "":
		store = blobstore.NewLocalStore(filepath.Dir(loc.key))
		name = filepath.Base(loc.key)
	case "s3":
		var opts []s3.Option
		if cfg.endpoint != "" {
			opts = append(opts, s3.WithEndpoint(cfg.endpoint))
		}
		if cfg.region != "" {
			opts = append(opts, s3.WithRegion(cfg.region))
		}
		if cfg.prefetch {
			opts = append(opts, s3.WithDownload(s3.DefaultDownloadConfig()))
		}
		if store, err = s3.New(ctx, loc.bucket, opts...); err != nil {
			return nil, "", fmt.Errorf("s3: %w", err)
		}
	case "minio":
		if cfg.endpoint == "" {
			return nil, "", fmt.Errorf("minio: --endpoint is required")
		}
		store, err = minio.Dial(cfg.endpoint, getenv("MINIO_ACCESS_KEY"), getenv("MINIO_SECRET_KEY"),
			!cfg.insecure, loc.bucket, "")
		if err != nil {
			return nil, "", fmt.Errorf("minio: %w", err)
		}
	}

	return blobstore.NewDecompressingStore(store, 0), name, nil
}
