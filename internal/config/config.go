package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server    ServerConfig
	App       AppConfig
	CatalogDB CatalogDBConfig
	Cache     CacheConfig
	Client    ClientConfig
	Cart      CartConfig
	Sim       SimConfig
}

// ServerConfig holds HTTP server settings for the inventory API.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"storefront-sync-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Debug       bool   `envconfig:"APP_DEBUG" default:"false"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
}

// CatalogDBConfig selects and configures the catalog backing store.
type CatalogDBConfig struct {
	Type string `envconfig:"CATALOG_DB_TYPE" default:"memory"` // memory, sqlite, mysql, or postgres
	Path string `envconfig:"CATALOG_DB_PATH" default:"./data/catalog.db"`
	// MySQL settings
	MySQLHost     string `envconfig:"CATALOG_MYSQL_HOST" default:"localhost"`
	MySQLPort     int    `envconfig:"CATALOG_MYSQL_PORT" default:"3306"`
	MySQLName     string `envconfig:"CATALOG_MYSQL_NAME" default:"storefront"`
	MySQLUser     string `envconfig:"CATALOG_MYSQL_USER" default:"root"`
	MySQLPassword string `envconfig:"CATALOG_MYSQL_PASS" default:""`
	// PostgreSQL settings
	PGHost     string `envconfig:"CATALOG_PG_HOST" default:"localhost"`
	PGPort     int    `envconfig:"CATALOG_PG_PORT" default:"5432"`
	PGName     string `envconfig:"CATALOG_PG_NAME" default:"storefront"`
	PGUser     string `envconfig:"CATALOG_PG_USER" default:"postgres"`
	PGPassword string `envconfig:"CATALOG_PG_PASS" default:""`
	PGSSLMode  string `envconfig:"CATALOG_PG_SSLMODE" default:"disable"`
}

// CacheConfig holds product cache settings for the sync client.
type CacheConfig struct {
	Type string        `envconfig:"CACHE_TYPE" default:"memory"` // memory or redis
	TTL  time.Duration `envconfig:"CACHE_TTL" default:"0"`       // 0 disables the coarse TTL short-circuit

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPrefix   string `envconfig:"REDIS_PREFIX" default:"storefront:products"`
}

// ClientConfig holds settings for the inventory API client.
type ClientConfig struct {
	BaseURL string        `envconfig:"INVENTORY_BASE_URL" default:"http://localhost:8080"`
	Timeout time.Duration `envconfig:"INVENTORY_TIMEOUT" default:"10s"`
}

// CartConfig holds cart persistence settings.
type CartConfig struct {
	StatePath string `envconfig:"CART_STATE_PATH" default:"./data/cart.json"`
}

// SimConfig controls the simulated network delay of the mock inventory
// service. Both zero disables the delay entirely (tests).
type SimConfig struct {
	MinDelay time.Duration `envconfig:"SIM_MIN_DELAY" default:"100ms"`
	MaxDelay time.Duration `envconfig:"SIM_MAX_DELAY" default:"600ms"`
	// ChurnInterval is how often the catalog rewrites availability ceilings.
	// 0 disables churn.
	ChurnInterval time.Duration `envconfig:"SIM_CHURN_INTERVAL" default:"60s"`
}

// MySQLDSN returns the MySQL data source name.
func (c *CatalogDBConfig) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		c.MySQLUser, c.MySQLPassword, c.MySQLHost, c.MySQLPort, c.MySQLName)
}

// PostgresDSN returns the PostgreSQL connection string.
func (c *CatalogDBConfig) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGName, c.PGSSLMode)
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
