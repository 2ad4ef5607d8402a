package metrics

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saynope/internal/catalog"
	"saynope/internal/testutil"
)

type memoryStore struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (s *memoryStore) IncrementCopyCount(_ context.Context, category, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.counts == nil {
		s.counts = map[string]int64{}
	}
	s.counts[category]++
	return nil
}

func (s *memoryStore) GetCopyCountsByCategory(context.Context) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out, s.err
}

func sample() *catalog.Catalog {
	return catalog.New([]catalog.Category{
		{Name: "Work", Reasons: []string{"Too busy", "Not my job"}},
		{Name: "Life", Reasons: []string{"I'm tired"}},
	})
}

func TestCatalogCollector(t *testing.T) {
	m := New(sample(), nil)

	expected := `
# HELP saynope_catalog_reasons Number of reasons per catalog category
# TYPE saynope_catalog_reasons gauge
saynope_catalog_reasons{category="Life"} 1
saynope_catalog_reasons{category="Work"} 2
`
	require.NoError(t, promtest.GatherAndCompare(m.Registry, strings.NewReader(expected), "saynope_catalog_reasons"))
}

func TestRecorders_InProcess(t *testing.T) {
	m := New(sample(), nil)

	m.RecordQuery("All", true)
	m.RecordQuery("All", true)
	m.RecordPick("Work", true)
	m.RecordPick("Empty", false)
	m.RecordCopy("Work", "Too busy")

	assert.Equal(t, 2.0, promtest.ToFloat64(m.queries.WithLabelValues("All", "true")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.picks.WithLabelValues("Work", "picked")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.picks.WithLabelValues("Empty", "empty")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.copies.WithLabelValues("Work")))
}

func TestRecordCopy_Store(t *testing.T) {
	store := &memoryStore{}
	m := New(sample(), store)

	m.RecordCopy("Work", "Too busy")
	m.RecordCopy("Work", "Not my job")
	m.RecordCopy("Life", "I'm tired")
	m.Flush()

	expected := `
# HELP saynope_copies_total Total copy-to-clipboard events by category
# TYPE saynope_copies_total counter
saynope_copies_total{category="Life"} 1
saynope_copies_total{category="Work"} 2
`
	require.NoError(t, promtest.GatherAndCompare(m.Registry, strings.NewReader(expected), "saynope_copies_total"))
}

func TestRecordCopy_StoreErrorIsSwallowed(t *testing.T) {
	store := &memoryStore{err: errors.New("database down")}
	m := New(sample(), store)

	m.RecordCopy("Work", "Too busy")
	m.Flush()

	n, err := promtest.GatherAndCount(m.Registry, "saynope_copies_total")
	require.NoError(t, err)
	assert.Zero(t, n)
}

// stalledStore never answers until the caller gives up.
type stalledStore struct{}

func (stalledStore) IncrementCopyCount(context.Context, string, string) error { return nil }

func (stalledStore) GetCopyCountsByCategory(ctx context.Context) (map[string]int64, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestCopyCollector_StalledStoreTimesOut(t *testing.T) {
	collector := &CopyCollector{store: stalledStore{}, timeout: 20 * time.Millisecond}

	done := make(chan int, 1)
	go func() { done <- promtest.CollectAndCount(collector) }()

	select {
	case n := <-done:
		assert.Equal(t, 0, n)
	case <-time.After(5 * time.Second):
		t.Fatal("collect did not return after the store timed out")
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordQuery("All", false)
		m.RecordPick("All", true)
		m.RecordCopy("All", "x")
		m.Flush()
	})
}

func TestCopyCollector_Postgres(t *testing.T) {
	database := testutil.TestDB(t)
	m := New(testutil.SampleCatalog(t), database)

	m.RecordCopy("Work", "Too busy")
	m.RecordCopy("Work", "Too busy")
	m.RecordCopy("Life", "I'm tired")
	m.Flush()

	expected := `
# HELP saynope_copies_total Total copy-to-clipboard events by category
# TYPE saynope_copies_total counter
saynope_copies_total{category="Life"} 1
saynope_copies_total{category="Work"} 2
`
	require.NoError(t, promtest.GatherAndCompare(m.Registry, strings.NewReader(expected), "saynope_copies_total"))
}
