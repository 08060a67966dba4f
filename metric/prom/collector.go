// Package prom exports jdb load metrics to Prometheus.
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/jdb"
)

// Collector implements jdb.MetricsCollector on Prometheus metrics.
// It is itself a prometheus.Collector and must be registered by the caller.
type Collector struct {
	loadLatency    *prometheus.HistogramVec
	loads          *prometheus.CounterVec
	bytesRead      prometheus.Counter
	sectionLatency *prometheus.HistogramVec
	records        *prometheus.GaugeVec
}

var (
	_ jdb.MetricsCollector = (*Collector)(nil)
	_ prometheus.Collector = (*Collector)(nil)
)

// NewCollector creates a new Collector.
func NewCollector() *Collector {
	return &Collector{
		loadLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jdb_load_duration_seconds",
			Help:    "Duration of database loads",
			Buckets: prometheus.DefBuckets,
		}, []string{"status"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jdb_loads_total",
			Help: "Total database loads by outcome",
		}, []string{"status"}),
		bytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jdb_read_bytes_total",
			Help: "Total bytes read from snapshot sources",
		}),
		sectionLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jdb_section_duration_seconds",
			Help:    "Duration of loading and validating a section",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"section"}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "jdb_section_records",
			Help: "Records in the last loaded section",
		}, []string{"section"}),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.loadLatency.Describe(ch)
	c.loads.Describe(ch)
	c.bytesRead.Describe(ch)
	c.sectionLatency.Describe(ch)
	c.records.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.loadLatency.Collect(ch)
	c.loads.Collect(ch)
	c.bytesRead.Collect(ch)
	c.sectionLatency.Collect(ch)
	c.records.Collect(ch)
}

// RecordLoad implements jdb.MetricsCollector.
func (c *Collector) RecordLoad(stats jdb.Stats, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.loadLatency.WithLabelValues(status).Observe(d.Seconds())
	c.loads.WithLabelValues(status).Inc()
	c.bytesRead.Add(float64(stats.BytesRead))
}

// RecordSection implements jdb.MetricsCollector.
func (c *Collector) RecordSection(section jdb.Section, records int, d time.Duration) {
	c.sectionLatency.WithLabelValues(string(section)).Observe(d.Seconds())
	c.records.WithLabelValues(string(section)).Set(float64(records))
}
