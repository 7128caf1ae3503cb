package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"storefront-sync-api/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteCatalogRepository implements CatalogRepository using SQLite.
// Thread-safe with WAL mode for high-concurrency reads.
type SQLiteCatalogRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteCatalogRepository creates a new SQLite catalog repository.
// dbPath is the path to the SQLite database file (e.g., "./data/catalog.db")
func NewSQLiteCatalogRepository(dbPath string) (*SQLiteCatalogRepository, error) {
	// Open with WAL mode and other optimizations
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite connection pool settings
	db.SetMaxOpenConns(1) // SQLite only supports 1 writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createSQLiteTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteCatalogRepository] Initialized with database: %s", dbPath)
	return &SQLiteCatalogRepository{db: db}, nil
}

// createSQLiteTables creates the products table.
func createSQLiteTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS catalog_products (
		id TEXT PRIMARY KEY,
		product_json TEXT NOT NULL,
		last_updated TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_last_updated ON catalog_products(last_updated);
	`
	_, err := db.Exec(query)
	return err
}

// List returns the full catalog ordered by id.
func (r *SQLiteCatalogRepository) List(ctx context.Context) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx, `SELECT product_json FROM catalog_products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var out []model.Product
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		var p model.Product
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("failed to decode product row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get returns a single product by id, or (nil, nil) when absent.
func (r *SQLiteCatalogRepository) Get(ctx context.Context, id string) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT product_json FROM catalog_products WHERE id = ?`, id).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	var p model.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("failed to decode product row: %w", err)
	}
	return &p, nil
}

// Create stores a new product.
func (r *SQLiteCatalogRepository) Create(ctx context.Context, p model.Product) error {
	return r.upsert(ctx, p)
}

// Update overwrites an existing product row.
func (r *SQLiteCatalogRepository) Update(ctx context.Context, p model.Product) error {
	return r.upsert(ctx, p)
}

func (r *SQLiteCatalogRepository) upsert(ctx context.Context, p model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode product: %w", err)
	}

	query := `
		INSERT INTO catalog_products (id, product_json, last_updated)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			product_json = excluded.product_json,
			last_updated = excluded.last_updated`

	if _, err := r.db.ExecContext(ctx, query, p.ID, string(raw), p.LastUpdated); err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *SQLiteCatalogRepository) Close() error {
	return r.db.Close()
}

// Ensure SQLiteCatalogRepository implements CatalogRepository
var _ CatalogRepository = (*SQLiteCatalogRepository)(nil)
