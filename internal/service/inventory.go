package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"storefront-sync-api/internal/model"
	"storefront-sync-api/internal/repository"
	"storefront-sync-api/pkg/apierror"
	"storefront-sync-api/pkg/uid"
)

// SimulatedDelay bounds the artificial latency injected into catalog
// listings. Both zero disables the delay.
type SimulatedDelay struct {
	Min time.Duration
	Max time.Duration
}

// InventoryService handles catalog business logic, including the
// conditional-fetch and compare-and-swap write protocols.
type InventoryService struct {
	repo  repository.CatalogRepository
	delay SimulatedDelay
}

// NewInventoryService creates a new inventory service.
// Returns nil if repo is nil (required dependency).
func NewInventoryService(repo repository.CatalogRepository, delay SimulatedDelay) *InventoryService {
	if repo == nil {
		return nil
	}
	return &InventoryService{repo: repo, delay: delay}
}

// versionMatches reports whether a caller-supplied version marker equals the
// authoritative one. An empty supplied marker never matches: callers without
// a known version always receive full data.
func versionMatches(supplied, current string) bool {
	return supplied != "" && supplied == current
}

// simulateDelay sleeps for a random duration within the configured bounds.
func (s *InventoryService) simulateDelay(ctx context.Context) {
	if s.delay.Max <= 0 {
		return
	}
	d := s.delay.Min
	if s.delay.Max > s.delay.Min {
		d += time.Duration(rand.Int63n(int64(s.delay.Max - s.delay.Min)))
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

// ListProducts returns the full catalog after the simulated network delay.
func (s *InventoryService) ListProducts(ctx context.Context) ([]model.Product, error) {
	s.simulateDelay(ctx)
	return s.repo.List(ctx)
}

// GetProduct returns a single product or a NotFound API error.
func (s *InventoryService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apierror.NotFound(fmt.Sprintf("Product %s not found", id))
	}
	return p, nil
}

// ConditionalGet implements the conditional fetch protocol: when the
// supplied lastUpdated equals the authoritative value the product is
// unchanged and (nil, nil) is returned; otherwise the full product is
// returned. Absent ids yield a NotFound API error.
func (s *InventoryService) ConditionalGet(ctx context.Context, id, lastUpdated string) (*model.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if versionMatches(lastUpdated, p.LastUpdated) {
		return nil, nil
	}
	return p, nil
}

// UpdateMaxQuantity applies a compare-and-swap write to a product's
// availability ceiling. When the caller's lastUpdated does not match the
// authoritative value the write is rejected and the current item is
// returned with Conflict set, so the caller can decide whether to re-apply
// its intent.
func (s *InventoryService) UpdateMaxQuantity(ctx context.Context, id string, req model.PatchRequest) (*model.PatchResult, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if !versionMatches(req.LastUpdated, p.LastUpdated) {
		return &model.PatchResult{
			Conflict: true,
			Item:     p,
			Message:  fmt.Sprintf("Product %s was modified concurrently", id),
		}, nil
	}

	p.MaxQuantity = req.MaxQuantity
	p.LastUpdated = model.NewVersion()
	p.InStock = p.MaxQuantity > 0

	if err := s.repo.Update(ctx, *p); err != nil {
		return nil, err
	}

	return &model.PatchResult{Item: p}, nil
}

// Timestamp returns a product's current version marker. Cheap staleness
// probe, alternative to a full conditional fetch.
func (s *InventoryService) Timestamp(ctx context.Context, id string) (*model.Timestamp, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.Timestamp{LastUpdated: p.LastUpdated}, nil
}

// CreateProduct adds a new product to the catalog with a server-assigned
// id and version marker.
func (s *InventoryService) CreateProduct(ctx context.Context, input model.CreateProductInput) (*model.Product, error) {
	category := input.Category
	if category.ID == "" {
		category = model.Category{ID: "0", Title: "Uncategorized"}
	}

	p := model.Product{
		ID:          uid.New(),
		Name:        input.Name,
		ImageURL:    input.ImageURL,
		MaxQuantity: input.Quantity,
		LastUpdated: model.NewVersion(),
		Badges:      []model.Badge{},
		Price:       input.Price,
		Variants:    input.Variants,
		Category:    category,
		InStock:     input.Quantity > 0,
	}
	if p.Variants == nil {
		p.Variants = []string{}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}
