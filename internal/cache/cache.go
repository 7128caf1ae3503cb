package cache

import (
	"context"
	"time"
)

// Entry is the memoized last-known server state for one product. FetchedAt
// records when the entry was written, for the optional coarse TTL
// short-circuit; staleness itself is always judged by comparing LastUpdated
// against the server's authoritative value.
type Entry struct {
	LastUpdated string    `json:"lastUpdated"`
	MaxQuantity int       `json:"maxQuantity"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// ProductCache is a per-product-id key-value store of cache entries.
// This abstraction allows swapping between memory cache (development)
// and Redis cache (shared deployments) without changing the fetch logic.
// No eviction policy is required: the catalog is small and bounded, and
// entries are overwritten on every successful fetch.
type ProductCache interface {
	// Get retrieves the entry for a product id. The bool reports presence.
	Get(ctx context.Context, id string) (Entry, bool)

	// Set stores (overwrites) the entry for a product id.
	Set(ctx context.Context, id string, e Entry)

	// Delete removes the entry for a product id.
	Delete(ctx context.Context, id string)
}
