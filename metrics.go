package jdb

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting load metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus; see package metric/prom.
type MetricsCollector interface {
	// RecordLoad is called once per load, after the source is released.
	// err is nil if the load succeeded.
	RecordLoad(stats Stats, duration time.Duration, err error)

	// RecordSection is called after each section is loaded and validated.
	RecordSection(section Section, records int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(Stats, time.Duration, error)    {}
func (NoopMetricsCollector) RecordSection(Section, int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount      atomic.Int64
	LoadErrors     atomic.Int64
	LoadTotalNanos atomic.Int64
	BytesRead      atomic.Int64
	SectionCount   atomic.Int64
	RecordsLoaded  atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(stats Stats, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	b.BytesRead.Add(stats.BytesRead)
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordSection implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSection(_ Section, records int, _ time.Duration) {
	b.SectionCount.Add(1)
	b.RecordsLoaded.Add(int64(records))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:     b.LoadCount.Load(),
		LoadErrors:    b.LoadErrors.Load(),
		LoadAvgNanos:  b.getAvgLoadNanos(),
		BytesRead:     b.BytesRead.Load(),
		SectionCount:  b.SectionCount.Load(),
		RecordsLoaded: b.RecordsLoaded.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgLoadNanos() int64 {
	count := b.LoadCount.Load()
	if count == 0 {
		return 0
	}
	return b.LoadTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount     int64
	LoadErrors    int64
	LoadAvgNanos  int64
	BytesRead     int64
	SectionCount  int64
	RecordsLoaded int64
}
