package jdb_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/jdb"
	"github.com/hupe1980/jdb/internal/format"
	"github.com/hupe1980/jdb/internal/jdbtest"
)

type MockMetricsCollector struct {
	mock.Mock
}

func (m *MockMetricsCollector) RecordLoad(stats jdb.Stats, duration time.Duration, err error) {
	m.Called(stats, duration, err)
}

func (m *MockMetricsCollector) RecordSection(section jdb.Section, records int, duration time.Duration) {
	m.Called(section, records, duration)
}

func TestMetrics_Sections(t *testing.T) {
	s := jdbtest.New()
	s.Weights = []format.WeightRecord{{Ob: 2, Mass: 0.5}}
	s.Names = []jdbtest.Name{{Ob: 1, Name: "S"}, {Ob: 2, Name: "K"}}

	mc := new(MockMetricsCollector)
	dur := mock.AnythingOfType("time.Duration")
	mc.On("RecordSection", jdb.SectionApp, 1, dur).Once()
	mc.On("RecordSection", jdb.SectionComp, 0, dur).Once()
	mc.On("RecordSection", jdb.SectionJoin, 0, dur).Once()
	mc.On("RecordSection", jdb.SectionGrammar, 1, dur).Once()
	mc.On("RecordSection", jdb.SectionNames, 2, dur).Once()
	mc.On("RecordLoad", mock.MatchedBy(func(st jdb.Stats) bool {
		return st.ObCount == 3 && st.NameCount == 2 && st.WeightCount == 1
	}), dur, nil).Once()

	mustLoad(t, s, jdb.WithMetricsCollector(mc))
	mc.AssertExpectations(t)
}

func TestMetrics_FailedLoad(t *testing.T) {
	s := jdbtest.New()
	s.Comps = []jdb.Eqn{{Lhs: 1, Rhs: 1, Result: 7}}

	mc := new(MockMetricsCollector)
	dur := mock.AnythingOfType("time.Duration")
	mc.On("RecordSection", jdb.SectionApp, 1, dur).Once()
	mc.On("RecordLoad", mock.Anything, dur, mock.MatchedBy(func(err error) bool {
		return err != nil
	})).Once()

	_, err := load(t, s, jdb.WithMetricsCollector(mc))
	require.ErrorIs(t, err, jdb.ErrInvalid)
	mc.AssertExpectations(t)
	mc.AssertNotCalled(t, "RecordSection", jdb.SectionComp, mock.Anything, mock.Anything)
}

func TestBasicMetricsCollector(t *testing.T) {
	mc := &jdb.BasicMetricsCollector{}
	mustLoad(t, jdbtest.New(), jdb.WithMetricsCollector(mc))

	bad := jdbtest.New()
	bad.Version = jdb.Version{A: 2}
	_, err := load(t, bad, jdb.WithMetricsCollector(mc))
	require.Error(t, err)

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.LoadCount)
	assert.Equal(t, int64(1), stats.LoadErrors)
	assert.Equal(t, int64(5), stats.SectionCount)
	assert.Equal(t, int64(1), stats.RecordsLoaded)
	assert.Equal(t, int64(2*format.HeaderSize+format.EqnSize+format.GrammarScalars*format.ScalarSize), stats.BytesRead)
}

func TestWithMetricsCollector_Nil(t *testing.T) {
	db := mustLoad(t, jdbtest.New(), jdb.WithMetricsCollector(nil), jdb.WithLogger(nil))
	assert.Equal(t, 3, db.ObCount())
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := jdb.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	mustLoad(t, jdbtest.New(), jdb.WithLogger(logger))

	var msgs []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		msgs = append(msgs, rec["msg"].(string))
		if rec["msg"] == "load completed" {
			assert.EqualValues(t, 3, rec["obs"])
			assert.EqualValues(t, 1, rec["apps"])
		}
	}
	assert.Equal(t, []string{
		"load started",
		"section loaded", "section loaded", "section loaded", "section loaded", "section loaded",
		"load completed",
	}, msgs)
}

func TestLogger_Failure(t *testing.T) {
	var buf bytes.Buffer
	logger := jdb.NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	s := jdbtest.New()
	s.AppProb = 0.9
	_, err := load(t, s, jdb.WithLogger(logger.WithSource("fixture")))
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "load failed")
	assert.Contains(t, out, "atom_prob")
	assert.Contains(t, out, "source=fixture")
	assert.NotContains(t, out, "section loaded")
}

func TestNoopLogger(t *testing.T) {
	l := jdb.NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}
