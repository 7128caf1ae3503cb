package repository

import (
	"context"

	"storefront-sync-api/internal/model"
)

// CatalogRepository defines catalog data access methods.
type CatalogRepository interface {
	// List returns the full catalog.
	List(ctx context.Context) ([]model.Product, error)

	// Get returns a single product by id, or (nil, nil) when absent.
	Get(ctx context.Context, id string) (*model.Product, error)

	// Create stores a new product.
	Create(ctx context.Context, p model.Product) error

	// Update overwrites an existing product row.
	Update(ctx context.Context, p model.Product) error

	// Close closes the repository connection.
	Close() error
}
