package client

import (
	"context"
	"time"

	"storefront-sync-api/internal/cache"
	"storefront-sync-api/internal/model"

	"golang.org/x/sync/singleflight"
)

// ProductAPI is the slice of the inventory API the fetcher needs.
type ProductAPI interface {
	FetchProduct(ctx context.Context, id, lastUpdated string) (*model.Product, error)
}

// Fetcher performs conditional product fetches with per-id request
// de-duplication. At most one fetch per product id is outstanding at any
// time; concurrent callers for the same id share the pending result.
//
// A (nil, nil) return means "unchanged, use your current local copy".
type Fetcher struct {
	api     ProductAPI
	cache   cache.ProductCache
	metrics Metrics

	// ttl optionally short-circuits fetches for entries younger than this,
	// answering "unchanged" without network I/O. Version comparison stays
	// the canonical staleness mechanism; 0 disables the short-circuit.
	ttl time.Duration

	group singleflight.Group
}

// NewFetcher creates a product fetcher. metrics may be nil.
func NewFetcher(api ProductAPI, productCache cache.ProductCache, ttl time.Duration, metrics Metrics) *Fetcher {
	if api == nil || productCache == nil {
		return nil
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &Fetcher{
		api:     api,
		cache:   productCache,
		metrics: metrics,
		ttl:     ttl,
	}
}

// FetchProduct fetches the current state of one product, honoring the TTL
// short-circuit when configured.
func (f *Fetcher) FetchProduct(ctx context.Context, id string) (*model.Product, error) {
	return f.fetch(ctx, id, false)
}

// RefreshProduct fetches one product, bypassing the TTL short-circuit. The
// known version marker is still sent, so the server may answer "unchanged".
func (f *Fetcher) RefreshProduct(ctx context.Context, id string) (*model.Product, error) {
	return f.fetch(ctx, id, true)
}

func (f *Fetcher) fetch(ctx context.Context, id string, force bool) (*model.Product, error) {
	if !force && f.ttl > 0 {
		if e, ok := f.cache.Get(ctx, id); ok && time.Since(e.FetchedAt) < f.ttl {
			f.metrics.CacheHit()
			return nil, nil
		}
	}

	// Per-id singleflight: the first caller issues the network request,
	// concurrent callers for the same id wait for and share its result.
	// The in-flight marker is cleared when the call settles, success or
	// failure, so a failed fetch never stalls later ones.
	v, err, shared := f.group.Do(id, func() (interface{}, error) {
		var known string
		if e, ok := f.cache.Get(ctx, id); ok {
			known = e.LastUpdated
			f.metrics.CacheHit()
		} else {
			f.metrics.CacheMiss()
		}

		p, err := f.api.FetchProduct(ctx, id, known)
		if err != nil {
			f.metrics.FetchError()
			return nil, err
		}

		// The cache write happens before any caller observes the result,
		// so no caller ever sees a half-updated entry.
		if p != nil {
			f.cache.Set(ctx, id, cache.Entry{
				LastUpdated: p.LastUpdated,
				MaxQuantity: p.MaxQuantity,
				FetchedAt:   time.Now(),
			})
			f.metrics.FetchChanged()
		} else {
			f.metrics.FetchUnchanged()
		}
		return p, nil
	})
	if shared {
		f.metrics.FetchShared()
	}
	if err != nil {
		return nil, err
	}

	p, _ := v.(*model.Product)
	return p, nil
}
