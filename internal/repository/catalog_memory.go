package repository

import (
	"context"
	"sort"
	"sync"

	"storefront-sync-api/internal/model"
)

// MemoryCatalogRepository implements CatalogRepository with an in-memory map.
// Use this for development/testing or single-instance deployments.
type MemoryCatalogRepository struct {
	mu       sync.RWMutex
	products map[string]model.Product
}

// NewMemoryCatalogRepository creates an in-memory catalog pre-populated
// with the given products.
func NewMemoryCatalogRepository(seed []model.Product) *MemoryCatalogRepository {
	products := make(map[string]model.Product, len(seed))
	for _, p := range seed {
		products[p.ID] = p
	}
	return &MemoryCatalogRepository{products: products}
}

// List returns the full catalog ordered by id.
func (r *MemoryCatalogRepository) List(ctx context.Context) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get returns a single product by id, or (nil, nil) when absent.
func (r *MemoryCatalogRepository) Get(ctx context.Context, id string) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Create stores a new product.
func (r *MemoryCatalogRepository) Create(ctx context.Context, p model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[p.ID] = p
	return nil
}

// Update overwrites an existing product row.
func (r *MemoryCatalogRepository) Update(ctx context.Context, p model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[p.ID] = p
	return nil
}

// Close is a no-op for the in-memory repository.
func (r *MemoryCatalogRepository) Close() error {
	return nil
}

// Ensure MemoryCatalogRepository implements CatalogRepository
var _ CatalogRepository = (*MemoryCatalogRepository)(nil)
