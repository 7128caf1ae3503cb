package main

import (
	"context"
	"errors"
	"log"

	"storefront-sync-api/internal/cache"
	"storefront-sync-api/internal/cart"
	"storefront-sync-api/internal/catalog"
	"storefront-sync-api/internal/client"
	"storefront-sync-api/internal/config"
	"storefront-sync-api/pkg/currency"
	"storefront-sync-api/pkg/prommetrics"
)

// Demo client: synchronizes a locally persisted cart against the inventory
// API, exercising the conditional-fetch, de-duplication, clamping, and
// batch reconciliation paths.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.MustLoad()
	ctx := context.Background()

	api := client.NewAPI(cfg.Client.BaseURL, cfg.Client.Timeout)

	// Product cache: memory by default, Redis when configured and reachable.
	var productCache cache.ProductCache
	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(cache.RedisCacheConfig{
			Addr:      cfg.Cache.RedisAddress(),
			Password:  cfg.Cache.RedisPassword,
			DB:        cfg.Cache.RedisDB,
			KeyPrefix: cfg.Cache.RedisPrefix,
		})
		if err != nil {
			log.Printf("Warning: Redis cache unavailable, using memory: %v", err)
			productCache = cache.NewMemoryCache()
		} else {
			defer redisCache.Close()
			productCache = redisCache
			log.Println("Redis product cache initialized")
		}
	} else {
		productCache = cache.NewMemoryCache()
	}

	metrics := prommetrics.New(nil, "storefront")
	fetcher := client.NewFetcher(api, productCache, cfg.Cache.TTL, metrics)

	persistence := cart.NewFileStore(cfg.Cart.StatePath)
	store := cart.NewStore(fetcher, persistence)
	queue := cart.NewBatchUpdateQueue(store)

	// Pull the catalog through the optimistic view store.
	view := catalog.NewStore(api)
	if err := view.SyncWithServer(ctx); err != nil {
		log.Fatalf("Failed to sync catalog: %v", err)
	}
	products := view.Items()
	log.Printf("Catalog synced: %d products", len(products))

	if len(products) == 0 {
		log.Println("Catalog is empty, nothing to demo")
		return
	}

	// Add the first two products, then batch a few rapid quantity changes.
	store.AddToCart(ctx, products[0], 2)
	if len(products) > 1 {
		store.AddToCart(ctx, products[1], 1)
	}
	log.Printf("Cart: %d items, subtotal %s", store.ItemCount(), currency.Format(store.Subtotal()))

	queue.QueueUpdate(products[0].ID, 3)
	queue.QueueUpdate(products[0].ID, 5) // coalesces with the previous update
	queue.Wait()

	for _, it := range store.Items() {
		log.Printf("  %s x%d (ceiling %d) = %s",
			it.Name, it.Quantity, it.MaxQuantity, currency.Format(it.Subtotal()))
	}

	// Demonstrate the compare-and-swap write path.
	if err := view.UpdateMaxQuantity(ctx, products[0].ID, products[0].MaxQuantity+10); err != nil {
		var conflict *client.ConflictError
		if errors.As(err, &conflict) {
			if conflict.Item != nil {
				log.Printf("Ceiling change rejected, server has version %s", conflict.Item.LastUpdated)
			} else {
				log.Printf("Ceiling change rejected: %v", conflict)
			}
		} else {
			log.Printf("Ceiling change failed: %v", err)
		}
	} else {
		log.Println("Ceiling change accepted")
	}

	if msg := store.LastSyncError(); msg != "" {
		log.Printf("Last absorbed sync failure: %s", msg)
	}
	log.Printf("Final cart: %d items, subtotal %s", store.ItemCount(), currency.Format(store.Subtotal()))
}
