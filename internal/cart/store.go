package cart

import (
	"context"
	"log"
	"sync"
	"time"

	"storefront-sync-api/internal/model"
)

// ProductFetcher is the slice of the sync client the cart needs. A
// (nil, nil) return means "unchanged, keep the local snapshot".
type ProductFetcher interface {
	FetchProduct(ctx context.Context, id string) (*model.Product, error)
}

// Store owns the cart line items: all quantity math, add/remove/update
// operations, and persistence ordering. Staleness checks are delegated to
// the injected ProductFetcher. Construct one Store per logical cart; there
// are no package-level singletons, so tests get isolated instances.
//
// Concurrency: mutations are serialized by the store mutex. Network fetches
// run outside the lock, so other cart operations may interleave with an
// in-flight fetch and observe intermediate state; persistence writes happen
// inside the critical section, in mutation order, so the durable slot only
// ever holds states the in-memory cart passed through.
type Store struct {
	fetcher     ProductFetcher
	persistence Persistence

	mu            sync.Mutex
	items         []Item
	lastSyncError string
}

// NewStore creates a cart store, loading and normalizing any persisted
// state. Returns nil if either dependency is nil (required).
func NewStore(fetcher ProductFetcher, persistence Persistence) *Store {
	if fetcher == nil || persistence == nil {
		return nil
	}
	s := &Store{
		fetcher:     fetcher,
		persistence: persistence,
	}
	s.restore()
	return s
}

// restore loads persisted items, fills missing LastSynchronized fields with
// the current time, drops zero-quantity lines, and re-saves (self-healing
// migration for older stored shapes).
func (s *Store) restore() {
	items, found, err := s.persistence.Load()
	if err != nil {
		log.Printf("[CartStore] Failed to load persisted cart, starting empty: %v", err)
		return
	}
	if !found {
		return
	}

	now := time.Now()
	kept := items[:0]
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		if it.LastSynchronized.IsZero() {
			it.LastSynchronized = now
		}
		kept = append(kept, it)
	}
	s.mu.Lock()
	s.items = kept
	s.persistLocked()
	s.mu.Unlock()
}

// AddToCart adds quantity units of a product. For a new line the freshest
// server snapshot is fetched first, falling back to the caller's snapshot
// when the fetch fails or reports "unchanged". For an existing line the
// quantity accumulates independently, and a fetched update refreshes the
// availability ceiling without touching the accumulated quantity.
func (s *Store) AddToCart(ctx context.Context, product model.Product, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}

	updated, err := s.fetcher.FetchProduct(ctx, product.ID)
	if err != nil {
		// Background refresh failures never abort a cart action; the user
		// keeps working against the last-known local values.
		s.recordSyncError(err)
		updated = nil
	}

	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexLocked(product.ID); idx >= 0 {
		it := &s.items[idx]
		it.Quantity += quantity
		// Any non-nil fetch result is a server-side update, even when the
		// ceiling itself did not move (e.g. a price-only change).
		if updated != nil {
			it.MaxQuantity = updated.MaxQuantity
			it.LastSynchronized = now
		}
	} else {
		snapshot := product
		if updated != nil {
			snapshot = *updated
		}
		s.items = append(s.items, Item{
			Product:          snapshot,
			Quantity:         quantity,
			LastSynchronized: now,
		})
	}

	s.persistLocked()
}

// RemoveFromCart removes the line unconditionally.
func (s *Store) RemoveFromCart(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(id)
	s.persistLocked()
}

// UpdateQuantity sets a line's quantity, reconciling with the server first.
// When the server's availability ceiling is lower than the requested
// quantity the stored quantity is clamped down to it: server authority
// wins when it shrinks availability, user intent wins otherwise. A
// resulting quantity of zero or below removes the line. Absent ids are a
// no-op.
func (s *Store) UpdateQuantity(ctx context.Context, id string, newQuantity int) error {
	s.mu.Lock()
	present := s.indexLocked(id) >= 0
	s.mu.Unlock()
	if !present {
		return nil
	}

	updated, err := s.fetcher.FetchProduct(ctx, id)
	if err != nil {
		s.recordSyncError(err)
		updated = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		// Removed while the fetch was in flight.
		return nil
	}
	it := &s.items[idx]

	// A nil update means "unchanged": ceiling and LastSynchronized stay put.
	if updated != nil {
		it.MaxQuantity = updated.MaxQuantity
		it.LastSynchronized = time.Now()
	}

	q := newQuantity
	if q > it.MaxQuantity {
		q = it.MaxQuantity
	}

	if q <= 0 {
		s.removeLocked(id)
		s.persistLocked()
		return nil
	}

	it.Quantity = q
	s.persistLocked()
	return nil
}

// Items returns a copy of the current cart lines.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// GetCartItem returns the line for a product id, if present.
func (s *Store) GetCartItem(id string) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexLocked(id); idx >= 0 {
		return s.items[idx], true
	}
	return Item{}, false
}

// Subtotal folds the effective price over all lines. Recomputed on every
// read, never cached.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum float64
	for _, it := range s.items {
		sum += it.Subtotal()
	}
	return sum
}

// ItemCount folds the quantities over all lines. Recomputed on every read,
// never cached.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, it := range s.items {
		count += it.Quantity
	}
	return count
}

// LastSyncError returns the most recent absorbed refresh failure, for
// non-blocking surfacing in a UI. Empty when no failure has occurred.
func (s *Store) LastSyncError() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastSyncError
}

func (s *Store) recordSyncError(err error) {
	log.Printf("[CartStore] Sync failure absorbed: %v", err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSyncError = err.Error()
}

func (s *Store) indexLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) removeLocked(id string) {
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
}

// persistLocked saves the current items. Persistence failures are logged
// but never fail the mutation; the next successful save catches up.
func (s *Store) persistLocked() {
	snapshot := make([]Item, len(s.items))
	copy(snapshot, s.items)

	if err := s.persistence.Save(snapshot); err != nil {
		log.Printf("[CartStore] Failed to persist cart: %v", err)
	}
}
