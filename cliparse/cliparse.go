package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Supported database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
	DatabasePGX      = "pgx"
)

type Config struct {
	Port           int
	MetricsPort    int
	DatabaseURL    string
	DatabaseType   string
	Schema         string
	RequestTimeout time.Duration
	SkipSchema     bool
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("social-posts", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.IntVar(&cfg.MetricsPort, "metrics-port", -1, "Metrics server port (0 disables)")

	// Database config
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or pgx)")
	fs.StringVar(&cfg.Schema, "schema", "", "Database schema holding the posts table")
	fs.BoolVar(&cfg.SkipSchema, "skip-schema", false, "Do not create the posts table on startup")

	timeout := fs.String("timeout", "", "Per-request timeout (0 disables)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 9999 // default
		}
	}

	if cfg.MetricsPort < 0 {
		cfg.MetricsPort = 0
		if portStr := os.Getenv("METRICS_PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid METRICS_PORT env variable")
			}
			cfg.MetricsPort = port
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	switch cfg.DatabaseType {
	case DatabaseSQLite, DatabasePostgres, DatabasePGX:
	default:
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.Schema == "" {
		cfg.Schema = os.Getenv("DATABASE_SCHEMA")
	}
	if cfg.Schema == "" {
		cfg.Schema = DefaultSchema(cfg.DatabaseType)
	}
	if cfg.DatabaseType == DatabaseSQLite && cfg.Schema != "main" {
		return Config{}, fmt.Errorf("sqlite only supports the main schema, got %q", cfg.Schema)
	}

	if *timeout == "" {
		*timeout = os.Getenv("REQUEST_TIMEOUT")
	}
	cfg.RequestTimeout = 10 * time.Second
	if *timeout != "" {
		d, err := time.ParseDuration(*timeout)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("invalid request timeout %q", *timeout)
		}
		cfg.RequestTimeout = d
	}

	if !cfg.SkipSchema {
		if v := os.Getenv("SKIP_SCHEMA"); v != "" {
			skip, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid SKIP_SCHEMA env variable")
			}
			cfg.SkipSchema = skip
		}
	}

	return cfg, nil
}

// DefaultSchema returns the schema the posts table lives in when none is
// configured. SQLite has no CREATE SCHEMA, so its main database is used.
func DefaultSchema(databaseType string) string {
	if databaseType == DatabaseSQLite {
		return "main"
	}
	return "social"
}
