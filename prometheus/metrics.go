// Package prometheus instruments modwiki services with Prometheus
// collectors on a dedicated registry.
package prometheus

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/modwiki"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the collectors for a modwiki run.
type Metrics struct {
	Registry             *prometheus.Registry
	FetchRequestsTotal   *prometheus.CounterVec
	FetchDuration        *prometheus.HistogramVec
	CatalogMods          prometheus.Gauge
	RefreshFailuresTotal *prometheus.CounterVec
	RefreshDuration      prometheus.Histogram
	LastSuccess          prometheus.Gauge
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "modwiki_fetch_requests_total",
			Help: "Total wiki requests by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
	fetchDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "modwiki_fetch_duration_seconds",
			Help:    "Wiki request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
	mods := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "modwiki_catalog_mods",
			Help: "Number of mods in the last refreshed catalog.",
		},
	)
	failures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "modwiki_refresh_failures_total",
			Help: "Items left out of refreshes, by scope.",
		},
		[]string{"scope"},
	)
	refreshDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "modwiki_refresh_duration_seconds",
			Help:    "Duration of catalog refreshes.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		},
	)
	lastSuccess := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "modwiki_refresh_last_success_timestamp_seconds",
			Help: "Unix time of the last successful refresh.",
		},
	)

	registry.MustRegister(requests, fetchDuration, mods, failures, refreshDuration, lastSuccess)

	return &Metrics{
		Registry:             registry,
		FetchRequestsTotal:   requests,
		FetchDuration:        fetchDuration,
		CatalogMods:          mods,
		RefreshFailuresTotal: failures,
		RefreshDuration:      refreshDuration,
		LastSuccess:          lastSuccess,
	}
}

// WriteTextfile writes every metric to path in the text exposition format,
// for pickup by the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}

// Ensure InstrumentedFetcher implements modwiki.Fetcher.
var _ modwiki.Fetcher = (*InstrumentedFetcher)(nil)

// InstrumentedFetcher counts and times requests made through a Fetcher.
type InstrumentedFetcher struct {
	next    modwiki.Fetcher
	metrics *Metrics
}

// InstrumentFetcher wraps next so its requests are recorded in m.
func InstrumentFetcher(next modwiki.Fetcher, m *Metrics) *InstrumentedFetcher {
	return &InstrumentedFetcher{next: next, metrics: m}
}

// Fetch delegates to the wrapped fetcher.
func (f *InstrumentedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	kind := requestKind(url)
	begin := time.Now()
	body, err := f.next.Fetch(ctx, url)
	f.metrics.FetchDuration.WithLabelValues(kind).Observe(time.Since(begin).Seconds())
	f.metrics.FetchRequestsTotal.WithLabelValues(kind, outcome(err)).Inc()
	return body, err
}

// Close delegates to the wrapped fetcher.
func (f *InstrumentedFetcher) Close() error {
	return f.next.Close()
}

// requestKind tells category listings (API calls) from mod pages.
func requestKind(url string) string {
	if strings.Contains(url, "/api.php") {
		return "listing"
	}
	return "page"
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var fe *modwiki.FetchError
	if errors.As(err, &fe) && fe.StatusCode != 0 {
		return strconv.Itoa(fe.StatusCode)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "error"
}

// Ensure InstrumentedRefresher implements modwiki.CatalogRefresher.
var _ modwiki.CatalogRefresher = (*InstrumentedRefresher)(nil)

// InstrumentedRefresher records refresh outcomes.
type InstrumentedRefresher struct {
	next    modwiki.CatalogRefresher
	metrics *Metrics
	now     func() time.Time
}

// InstrumentRefresher wraps next so its refreshes are recorded in m.
func InstrumentRefresher(next modwiki.CatalogRefresher, m *Metrics) *InstrumentedRefresher {
	return &InstrumentedRefresher{next: next, metrics: m, now: time.Now}
}

// Refresh delegates to the wrapped refresher.
func (r *InstrumentedRefresher) Refresh(ctx context.Context) (*modwiki.RefreshResult, error) {
	result, err := r.next.Refresh(ctx)
	if err != nil {
		r.metrics.RefreshFailuresTotal.WithLabelValues("refresh").Inc()
		return nil, err
	}
	r.metrics.RefreshDuration.Observe(result.Duration.Seconds())
	r.metrics.CatalogMods.Set(float64(result.Catalog.Len()))
	r.metrics.RefreshFailuresTotal.WithLabelValues("mod").Add(float64(len(result.Failures)))
	r.metrics.RefreshFailuresTotal.WithLabelValues("category").Add(float64(len(result.CategoryFailures)))
	r.metrics.LastSuccess.Set(float64(r.now().Unix()))
	return result, nil
}
