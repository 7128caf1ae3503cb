package catalog

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"storefront-sync-api/internal/client"
	"storefront-sync-api/internal/model"
)

// InventoryAPI is the slice of the inventory API the catalog view needs.
type InventoryAPI interface {
	FetchCatalog(ctx context.Context) ([]model.Product, error)
	UpdateMaxQuantity(ctx context.Context, id string, maxQuantity int, lastUpdated string) (*model.PatchResult, error)
}

// SyncStatus describes the catalog view's relationship to the server.
type SyncStatus struct {
	LastSynced time.Time
	Syncing    bool
	Conflicts  []string
}

// Store is a client-side view of the product catalog. Writes are applied
// optimistically and rolled back when the server rejects them; conflicts
// are recorded, never retried automatically.
type Store struct {
	api InventoryAPI

	mu     sync.Mutex
	items  []model.Product
	status SyncStatus
}

// NewStore creates a catalog view. Returns nil if api is nil (required).
func NewStore(api InventoryAPI) *Store {
	if api == nil {
		return nil
	}
	return &Store{api: api}
}

// SyncWithServer replaces the local catalog with the server's current state.
func (s *Store) SyncWithServer(ctx context.Context) error {
	s.mu.Lock()
	s.status.Syncing = true
	s.mu.Unlock()

	items, err := s.api.FetchCatalog(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Syncing = false

	if err != nil {
		log.Printf("[CatalogStore] Sync failed: %v", err)
		return err
	}

	s.items = items
	s.status.LastSynced = time.Now()
	return nil
}

// UpdateMaxQuantity changes a product's availability ceiling. The new
// ceiling is applied locally first; on conflict the server's authoritative
// item replaces the optimistic value, the id is recorded in Conflicts, and
// a ConflictError carrying that item is returned so the caller can decide
// whether to re-apply its intent. Network failures roll back to the
// previous local value.
func (s *Store) UpdateMaxQuantity(ctx context.Context, id string, maxQuantity int) error {
	s.mu.Lock()
	idx := s.index(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", client.ErrNotFound, id)
	}
	previous := s.items[idx].MaxQuantity
	knownVersion := s.items[idx].LastUpdated
	s.items[idx].MaxQuantity = maxQuantity
	s.mu.Unlock()

	result, err := s.api.UpdateMaxQuantity(ctx, id, maxQuantity, knownVersion)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx = s.index(id)
	if idx < 0 {
		// Item disappeared from the view mid-flight; nothing to reconcile.
		return err
	}

	if err != nil {
		s.items[idx].MaxQuantity = previous
		log.Printf("[CatalogStore] Update for %s failed, rolled back: %v", id, err)
		return err
	}

	if result.Conflict {
		if result.Item != nil {
			s.items[idx] = *result.Item
		} else {
			s.items[idx].MaxQuantity = previous
		}
		s.status.Conflicts = append(s.status.Conflicts, id)
		return &client.ConflictError{ID: id, Item: result.Item, Message: result.Message}
	}

	if result.Item != nil {
		s.items[idx] = *result.Item
	}
	return nil
}

// Items returns a copy of the local catalog view.
func (s *Store) Items() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Product, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the local view of one product, if present.
func (s *Store) Get(id string) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.index(id); idx >= 0 {
		return s.items[idx], true
	}
	return model.Product{}, false
}

// Status returns a copy of the current sync status.
func (s *Store) Status() SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.status
	out.Conflicts = append([]string(nil), s.status.Conflicts...)
	return out
}

func (s *Store) index(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
