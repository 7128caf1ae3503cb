package prommetrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront-sync-api/internal/client"
)

// Adapter implements client.Metrics and exports Prometheus counters.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	fetches   *prometheus.CounterVec
	shared    prometheus.Counter
	cacheHits prometheus.Counter
	cacheMiss prometheus.Counter
}

// New constructs a Prometheus metrics adapter.
//   - reg: registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns:  Prometheus namespace
func New(reg prometheus.Registerer, ns string) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "fetcher",
				Name:      "fetches_total",
				Help:      "Product fetches by result",
			},
			[]string{"result"},
		),
		shared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "fetcher",
			Name:      "shared_total",
			Help:      "Fetch calls served by an already in-flight request",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Product cache hits",
		}),
		cacheMiss: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Product cache misses",
		}),
	}
	reg.MustRegister(a.fetches, a.shared, a.cacheHits, a.cacheMiss)
	return a
}

// FetchChanged increments the fetch counter for a full-product response.
func (a *Adapter) FetchChanged() { a.fetches.WithLabelValues("changed").Inc() }

// FetchUnchanged increments the fetch counter for an "unchanged" response.
func (a *Adapter) FetchUnchanged() { a.fetches.WithLabelValues("unchanged").Inc() }

// FetchError increments the fetch counter for a failed fetch.
func (a *Adapter) FetchError() { a.fetches.WithLabelValues("error").Inc() }

// FetchShared counts a caller that joined an in-flight fetch.
func (a *Adapter) FetchShared() { a.shared.Inc() }

// CacheHit increments the cache hit counter.
func (a *Adapter) CacheHit() { a.cacheHits.Inc() }

// CacheMiss increments the cache miss counter.
func (a *Adapter) CacheMiss() { a.cacheMiss.Inc() }

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Compile-time check: ensure Adapter implements client.Metrics.
var _ client.Metrics = (*Adapter)(nil)
