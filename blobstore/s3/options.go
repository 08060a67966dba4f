package s3

// DownloadConfig configures whole-object downloads.
type DownloadConfig struct {
	// PartSize is the size of each ranged GET.
	// Default: 8MB
	PartSize int64

	// Concurrency is the number of parts fetched in parallel.
	// Default: 5 (matches SDK default)
	Concurrency int
}

// DefaultDownloadConfig returns the download settings used by WithDownload.
func DefaultDownloadConfig() DownloadConfig {
	return DownloadConfig{
		PartSize:    8 * 1024 * 1024,
		Concurrency: 5,
	}
}

type options struct {
	prefix   string
	region   string
	endpoint string
	download *DownloadConfig
}

// Option configures New and NewStore.
type Option func(*options)

// WithPrefix sets the key prefix prepended to every blob name.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithRegion overrides the region from the default AWS config chain.
func WithRegion(region string) Option {
	return func(o *options) {
		o.region = region
	}
}

// WithEndpoint points the client at a custom S3-compatible endpoint and
// switches to path-style addressing.
func WithEndpoint(endpoint string) Option {
	return func(o *options) {
		o.endpoint = endpoint
	}
}

// WithDownload makes Open fetch the whole object up front with parallel
// ranged GETs instead of issuing one range read per section.
func WithDownload(cfg DownloadConfig) Option {
	return func(o *options) {
		def := DefaultDownloadConfig()
		if cfg.PartSize <= 0 {
			cfg.PartSize = def.PartSize
		}
		if cfg.Concurrency <= 0 {
			cfg.Concurrency = def.Concurrency
		}
		o.download = &cfg
	}
}
