package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront-sync-api/internal/config"
	"storefront-sync-api/internal/handler"
	"storefront-sync-api/internal/model"
	"storefront-sync-api/internal/repository"
	"storefront-sync-api/internal/router"
	"storefront-sync-api/internal/service"
	"storefront-sync-api/pkg/prommetrics"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting storefront inventory API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize catalog repository based on config
	var catalogRepo repository.CatalogRepository
	switch cfg.CatalogDB.Type {
	case "sqlite":
		sqliteRepo, err := repository.NewSQLiteCatalogRepository(cfg.CatalogDB.Path)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		defer sqliteRepo.Close()
		catalogRepo = sqliteRepo
		log.Println("SQLite catalog repository initialized")
	case "mysql":
		mysqlRepo, err := repository.NewMySQLCatalogRepository(cfg.CatalogDB.MySQLDSN())
		if err != nil {
			log.Fatalf("Failed to initialize MySQL: %v", err)
		}
		defer mysqlRepo.Close()
		catalogRepo = mysqlRepo
		log.Println("MySQL catalog repository initialized")
	case "postgres", "postgresql":
		pgRepo, err := repository.NewPostgresCatalogRepository(cfg.CatalogDB.PostgresDSN())
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL: %v", err)
		}
		defer pgRepo.Close()
		catalogRepo = pgRepo
		log.Println("PostgreSQL catalog repository initialized")
	default: // memory
		catalogRepo = repository.NewMemoryCatalogRepository(repository.SeedCatalog(model.NewVersion()))
		log.Println("In-memory catalog repository initialized")
	}

	if err := ensureSeeded(catalogRepo); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	// Initialize services
	inventoryService := service.NewInventoryService(catalogRepo, service.SimulatedDelay{
		Min: cfg.Sim.MinDelay,
		Max: cfg.Sim.MaxDelay,
	})

	// Catalog churn keeps availability ceilings moving so clients have
	// something to synchronize against.
	var churn *service.ChurnScheduler
	if cfg.Sim.ChurnInterval > 0 {
		churn = service.NewChurnScheduler(catalogRepo, service.ChurnConfig{
			Interval: cfg.Sim.ChurnInterval,
		})
		churn.Start()
	}

	// Initialize handlers
	healthHandler := handler.New(cfg.App.Version)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)

	// Create router
	r := router.New(router.Config{
		Handler:          healthHandler,
		InventoryHandler: inventoryHandler,
		MetricsHandler:   prommetrics.Handler(),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if churn != nil {
		churn.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// ensureSeeded populates an empty catalog with the demo products.
func ensureSeeded(repo repository.CatalogRepository) error {
	ctx := context.Background()

	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, p := range repository.SeedCatalog(model.NewVersion()) {
		if err := repo.Create(ctx, p); err != nil {
			return err
		}
	}
	log.Println("Catalog seeded with demo products")
	return nil
}
