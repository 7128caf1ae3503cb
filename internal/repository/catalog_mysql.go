package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"storefront-sync-api/internal/model"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

// MySQLCatalogRepository implements CatalogRepository using MySQL.
type MySQLCatalogRepository struct {
	db *sql.DB
}

// NewMySQLCatalogRepository creates a new MySQL catalog repository.
// dsn format: "user:password@tcp(host:port)/dbname?parseTime=true"
func NewMySQLCatalogRepository(dsn string) (*MySQLCatalogRepository, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	if err := createMySQLTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[MySQLCatalogRepository] Initialized")
	return &MySQLCatalogRepository{db: db}, nil
}

// createMySQLTables creates the products table.
func createMySQLTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS catalog_products (
		id VARCHAR(64) PRIMARY KEY,
		product_json JSON NOT NULL,
		last_updated VARCHAR(64) NOT NULL,
		INDEX idx_last_updated (last_updated)
	)`
	_, err := db.Exec(query)
	return err
}

// List returns the full catalog ordered by id.
func (r *MySQLCatalogRepository) List(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT product_json FROM catalog_products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var out []model.Product
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		var p model.Product
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("failed to decode product row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get returns a single product by id, or (nil, nil) when absent.
func (r *MySQLCatalogRepository) Get(ctx context.Context, id string) (*model.Product, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT product_json FROM catalog_products WHERE id = ?`, id).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	var p model.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to decode product row: %w", err)
	}
	return &p, nil
}

// Create stores a new product.
func (r *MySQLCatalogRepository) Create(ctx context.Context, p model.Product) error {
	return r.upsert(ctx, p)
}

// Update overwrites an existing product row.
func (r *MySQLCatalogRepository) Update(ctx context.Context, p model.Product) error {
	return r.upsert(ctx, p)
}

func (r *MySQLCatalogRepository) upsert(ctx context.Context, p model.Product) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode product: %w", err)
	}

	query := `
		INSERT INTO catalog_products (id, product_json, last_updated)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE
			product_json = VALUES(product_json),
			last_updated = VALUES(last_updated)`

	if _, err := r.db.ExecContext(ctx, query, p.ID, raw, p.LastUpdated); err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *MySQLCatalogRepository) Close() error {
	return r.db.Close()
}

// Ensure MySQLCatalogRepository implements CatalogRepository
var _ CatalogRepository = (*MySQLCatalogRepository)(nil)
