package prom_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/jdb"
	"github.com/hupe1980/jdb/internal/jdbtest"
	"github.com/hupe1980/jdb/metric/prom"
)

func load(t *testing.T, s *jdbtest.Snapshot, c *prom.Collector) error {
	t.Helper()
	b := s.Bytes()
	_, err := jdb.Load(context.Background(), bytes.NewReader(b), int64(len(b)), jdb.WithMetricsCollector(c))
	return err
}

func TestCollector(t *testing.T) {
	c := prom.NewCollector()
	reg := prometheus.NewRegistry()
	reg.MustRegister(c)

	s := jdbtest.New()
	s.Names = []jdbtest.Name{{Ob: 1, Name: "S"}, {Ob: 2, Name: "K"}}
	require.NoError(t, load(t, s, c))

	bad := jdbtest.New()
	bad.Version = jdb.Version{A: 1}
	require.Error(t, load(t, bad, c))

	expected := `
# HELP jdb_loads_total Total database loads by outcome
# TYPE jdb_loads_total counter
jdb_loads_total{status="error"} 1
jdb_loads_total{status="success"} 1
# HELP jdb_section_records Records in the last loaded section
# TYPE jdb_section_records gauge
jdb_section_records{section="app"} 1
jdb_section_records{section="comp"} 0
jdb_section_records{section="grammar"} 0
jdb_section_records{section="join"} 0
jdb_section_records{section="names"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "jdb_loads_total", "jdb_section_records"))

	n, err := testutil.GatherAndCount(reg, "jdb_load_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCollector_BytesRead(t *testing.T) {
	c := prom.NewCollector()
	c.RecordLoad(jdb.Stats{BytesRead: 10}, 0, nil)
	c.RecordLoad(jdb.Stats{BytesRead: 32}, 0, nil)

	expected := `
# HELP jdb_read_bytes_total Total bytes read from snapshot sources
# TYPE jdb_read_bytes_total counter
jdb_read_bytes_total 42
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected), "jdb_read_bytes_total"))
}

func TestCollector_WriteToTextfile(t *testing.T) {
	c := prom.NewCollector()
	reg := prometheus.NewRegistry()
	reg.MustRegister(c)
	c.RecordSection(jdb.SectionApp, 12, 0)

	path := filepath.Join(t.TempDir(), "jdb.prom")
	require.NoError(t, prometheus.WriteToTextfile(path, reg))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(out), `jdb_section_records{section="app"} 12`)
}
