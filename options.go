package jdb

import (
	"log/slog"

	"github.com/hupe1980/jdb/resource"
)

type options struct {
	logger  *Logger
	metrics MetricsCollector
	rc      *resource.Controller
}

// Option configures a load.
type Option func(*options)

// WithLogger sets the logger for load progress and failures.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithLogLevel logs text to stderr at the given minimum level.
//
// Example:
//
//	db, err := jdb.Open(ctx, path, jdb.WithLogLevel(slog.LevelDebug))
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector sets the collector notified about loads and sections.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithResourceController bounds the memory and read throughput of the load.
//
// The memory reserved by a successful load stays accounted until
// Database.Release is called.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

func applyOptions(opts []Option) *options {
	o := &options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
