package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hupe1980/jdb"
	"github.com/hupe1980/jdb/metric/prom"
	"github.com/hupe1980/jdb/resource"
)

type config struct {
	logLevel    string
	logFormat   string
	memoryLimit int64
	ioLimit     int64
	metricsFile string
	source      sourceConfig
}

func newRootCmd() *cobra.Command {
	var cfg config

	cmd := &cobra.Command{
		Use:   "jdb2csv INFILE [OUTSTEM]",
		Short: "export a jdb snapshot to CSV tables",
		Long: `Loads a jdb snapshot and writes OUTSTEM.params.csv, OUTSTEM.apps.csv,
OUTSTEM.comps.csv, OUTSTEM.joins.csv, OUTSTEM.weights.csv and OUTSTEM.names.csv.

INFILE is a local path, s3://bucket/key or minio://bucket/key. MinIO
credentials are read from MINIO_ACCESS_KEY and MINIO_SECRET_KEY. zstd and
lz4 framed snapshots are decompressed transparently.`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			stem := defaultStem(args[0])
			if len(args) == 2 {
				stem = args[1]
			}
			return run(cmd, cfg, args[0], stem)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.logLevel, "log-level", "info", "minimum log level (debug, info, warn, error)")
	f.StringVar(&cfg.logFormat, "log-format", "text", "log format (text, json)")
	f.Int64Var(&cfg.memoryLimit, "memory-limit", 0, "memory budget for the loaded database in bytes (0 means unlimited)")
	f.Int64Var(&cfg.ioLimit, "io-limit", 0, "read throughput limit in bytes per second (0 means unlimited)")
	f.StringVar(&cfg.metricsFile, "metrics-file", "", "write load metrics to this file in the Prometheus text format")
	f.StringVar(&cfg.source.endpoint, "endpoint", "", "S3 or MinIO endpoint")
	f.StringVar(&cfg.source.region, "region", "", "S3 region")
	f.BoolVar(&cfg.source.insecure, "insecure", false, "use plain HTTP for MinIO")
	f.BoolVar(&cfg.source.prefetch, "prefetch", false, "download S3 snapshots with parallel ranged GETs before loading")

	return cmd
}

func newLogger(cfg config, cmd *cobra.Command) (*jdb.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", cfg.logLevel, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch cfg.logFormat {
	case "text":
		return jdb.NewLogger(slog.NewTextHandler(cmd.ErrOrStderr(), opts)), nil
	case "json":
		return jdb.NewLogger(slog.NewJSONHandler(cmd.ErrOrStderr(), opts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q: want text or json", cfg.logFormat)
	}
}

func run(cmd *cobra.Command, cfg config, infile, stem string) (err error) {
	ctx := cmd.Context()

	logger, err := newLogger(cfg, cmd)
	if err != nil {
		return err
	}

	opts := []jdb.Option{jdb.WithLogger(logger.WithSource(infile))}
	if cfg.memoryLimit > 0 || cfg.ioLimit > 0 {
		rc := resource.NewController(resource.Config{
			MemoryLimitBytes:   cfg.memoryLimit,
			IOLimitBytesPerSec: cfg.ioLimit,
		})
		limits := rc.Config()
		logger.DebugContext(ctx, "resource limits",
			"memory_limit_bytes", limits.MemoryLimitBytes,
			"io_limit_bytes_per_sec", limits.IOLimitBytesPerSec)
		opts = append(opts, jdb.WithResourceController(rc))
	}

	if cfg.metricsFile != "" {
		collector := prom.NewCollector()
		reg := prometheus.NewRegistry()
		reg.MustRegister(collector)
		opts = append(opts, jdb.WithMetricsCollector(collector))

		defer func() {
			if werr := prometheus.WriteToTextfile(cfg.metricsFile, reg); werr != nil && err == nil {
				err = fmt.Errorf("write metrics: %w", werr)
			}
		}()
	}

	store, name, err := openSource(ctx, infile, cfg.source, os.Getenv)
	if err != nil {
		return err
	}

	db, err := jdb.OpenBlob(ctx, store, name, opts...)
	if err != nil {
		return err
	}
	defer db.Release()

	return export(ctx, db, stem, logger)
}
