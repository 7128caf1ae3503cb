package service

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"storefront-sync-api/internal/model"
	"storefront-sync-api/internal/repository"
)

// ChurnConfig holds configuration for the catalog churn scheduler.
type ChurnConfig struct {
	// Interval is how often availability ceilings are rewritten.
	// Default: 60 seconds.
	Interval time.Duration

	// MaxCeiling bounds the randomized maxQuantity (1..MaxCeiling).
	// Default: 99.
	MaxCeiling int
}

// DefaultChurnConfig returns default churn configuration.
func DefaultChurnConfig() ChurnConfig {
	return ChurnConfig{
		Interval:   60 * time.Second,
		MaxCeiling: 99,
	}
}

// ChurnScheduler periodically rewrites every product's availability ceiling
// and version marker, simulating a catalog that changes underneath clients.
// This is what makes the client-side staleness machinery observable in a demo.
type ChurnScheduler struct {
	repo      repository.CatalogRepository
	config    ChurnConfig
	ticker    *time.Ticker
	stopCh    chan struct{}
	stopOnce  sync.Once
	isRunning bool
	mu        sync.Mutex
}

// NewChurnScheduler creates a new churn scheduler.
func NewChurnScheduler(repo repository.CatalogRepository, config ChurnConfig) *ChurnScheduler {
	if config.Interval == 0 {
		config.Interval = 60 * time.Second
	}
	if config.MaxCeiling == 0 {
		config.MaxCeiling = 99
	}

	return &ChurnScheduler{
		repo:   repo,
		config: config,
		stopCh: make(chan struct{}),
	}
}

// Start begins the churn scheduler.
func (s *ChurnScheduler) Start() {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.ticker = time.NewTicker(s.config.Interval)
	s.mu.Unlock()

	log.Printf("[ChurnScheduler] Started - Interval: %v", s.config.Interval)

	go s.run()
}

// run is the main churn loop.
func (s *ChurnScheduler) run() {
	for {
		select {
		case <-s.ticker.C:
			s.runChurn()
		case <-s.stopCh:
			log.Printf("[ChurnScheduler] Stopped")
			return
		}
	}
}

// runChurn rewrites every product with a fresh ceiling and version.
func (s *ChurnScheduler) runChurn() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	products, err := s.repo.List(ctx)
	if err != nil {
		log.Printf("[ChurnScheduler] Error listing catalog: %v", err)
		return
	}

	for _, p := range products {
		p.MaxQuantity = rand.Intn(s.config.MaxCeiling) + 1
		p.LastUpdated = model.NewVersion()
		p.InStock = p.MaxQuantity > 0
		if err := s.repo.Update(ctx, p); err != nil {
			log.Printf("[ChurnScheduler] Error updating product %s: %v", p.ID, err)
		}
	}

	log.Printf("[ChurnScheduler] Rewrote %d products", len(products))
}

// Stop stops the churn scheduler.
func (s *ChurnScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.stopCh)
		s.isRunning = false
	})
}
