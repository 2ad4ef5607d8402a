package metrics

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"saynope/internal/catalog"
)

var (
	catalogReasonsDesc = prometheus.NewDesc(
		"saynope_catalog_reasons",
		"Number of reasons per catalog category",
		[]string{"category"},
		nil,
	)
	copiesDesc = prometheus.NewDesc(
		"saynope_copies_total",
		"Total copy-to-clipboard events by category",
		[]string{"category"},
		nil,
	)
)

// collectTimeout bounds the store query made during a scrape.
const collectTimeout = 2 * time.Second

// CopyStore persists copy events.
type CopyStore interface {
	IncrementCopyCount(ctx context.Context, category, reason string) error
	GetCopyCountsByCategory(ctx context.Context) (map[string]int64, error)
}

// CatalogCollector exports the immutable catalog counts on each scrape.
type CatalogCollector struct {
	catalog *catalog.Catalog
}

// Describe sends the metric descriptor to the channel.
func (c *CatalogCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- catalogReasonsDesc
}

// Collect emits one gauge per category.
func (c *CatalogCollector) Collect(ch chan<- prometheus.Metric) {
	counts := c.catalog.Counts()
	for _, name := range counts.Order {
		ch <- prometheus.MustNewConstMetric(
			catalogReasonsDesc,
			prometheus.GaugeValue,
			float64(counts.PerCategory[name]),
			name,
		)
	}
}

// CopyCollector reads persisted copy counts from the store on each scrape.
type CopyCollector struct {
	store   CopyStore
	timeout time.Duration
}

// Describe sends the metric descriptor to the channel.
func (c *CopyCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- copiesDesc
}

// Collect queries the store and emits the counts as counters.
func (c *CopyCollector) Collect(ch chan<- prometheus.Metric) {
	timeout := c.timeout
	if timeout <= 0 {
		timeout = collectTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	counts, err := c.store.GetCopyCountsByCategory(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to collect copy metrics")
		return
	}
	for category, n := range counts {
		ch <- prometheus.MustNewConstMetric(copiesDesc, prometheus.CounterValue, float64(n), category)
	}
}

// Metrics owns the registry and the recorders used by the handlers.
// A nil *Metrics records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	queries *prometheus.CounterVec
	picks   *prometheus.CounterVec
	copies  *prometheus.CounterVec
	store   CopyStore
	pending sync.WaitGroup
}

// New registers the catalog collector and the request counters. When store
// is non-nil copy events are persisted there and read back on scrape;
// otherwise they are counted in process.
func New(c *catalog.Catalog, store CopyStore) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "saynope_queries_total",
			Help: "Total filter queries by category and whether a search term was given",
		}, []string{"category", "searched"}),
		picks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "saynope_random_picks_total",
			Help: "Total random picks by category and outcome",
		}, []string{"category", "outcome"}),
		store: store,
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		&CatalogCollector{catalog: c},
		m.queries,
		m.picks,
	)

	if store != nil {
		reg.MustRegister(&CopyCollector{store: store, timeout: collectTimeout})
	} else {
		m.copies = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "saynope_copies_total",
			Help: "Total copy-to-clipboard events by category",
		}, []string{"category"})
		reg.MustRegister(m.copies)
	}

	return m
}

// RecordQuery counts a filter query.
func (m *Metrics) RecordQuery(category string, searched bool) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(category, strconv.FormatBool(searched)).Inc()
}

// RecordPick counts a random pick attempt.
func (m *Metrics) RecordPick(category string, picked bool) {
	if m == nil {
		return
	}
	outcome := "picked"
	if !picked {
		outcome = "empty"
	}
	m.picks.WithLabelValues(category, outcome).Inc()
}

// RecordCopy records a copy event. Persisted events are written
// asynchronously; failures are logged and never returned.
func (m *Metrics) RecordCopy(category, reason string) {
	if m == nil {
		return
	}
	if m.store == nil {
		m.copies.WithLabelValues(category).Inc()
		return
	}

	m.pending.Add(1)
	go func() {
		defer m.pending.Done()
		if err := m.store.IncrementCopyCount(context.Background(), category, reason); err != nil {
			log.Error().Err(err).Str("category", category).Msg("failed to record copy")
		}
	}()
}

// Flush waits for in-flight copy writes.
func (m *Metrics) Flush() {
	if m == nil {
		return
	}
	m.pending.Wait()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
