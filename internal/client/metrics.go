package client

// Metrics receives fetcher and cache events. Implementations must be safe
// for concurrent use.
type Metrics interface {
	FetchChanged()
	FetchUnchanged()
	FetchError()
	FetchShared()
	CacheHit()
	CacheMiss()
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is the default when no observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) FetchChanged()   {}
func (NoopMetrics) FetchUnchanged() {}
func (NoopMetrics) FetchError()     {}
func (NoopMetrics) FetchShared()    {}
func (NoopMetrics) CacheHit()       {}
func (NoopMetrics) CacheMiss()      {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}
