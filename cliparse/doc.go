// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: API listen port (default: 9999)
  - MetricsPort: Prometheus listen port (default: 0, disabled)
  - DatabaseURL: connection string or SQLite file (required)
  - DatabaseType: sqlite, postgres or pgx (default: sqlite)
  - Schema: schema holding the posts table (default: social, main for SQLite)
  - RequestTimeout: per-request deadline (default: 10s, 0 disables)
  - SkipSchema: do not create the posts table on startup

# CLI Flags

	-p            Server port
	-metrics-port Metrics server port
	-d            Database URL
	-t            Database type
	-schema       Database schema
	-timeout      Request timeout
	-skip-schema  Skip schema creation

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	METRICS_PORT    → -metrics-port
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	DATABASE_SCHEMA → -schema
	REQUEST_TIMEOUT → -timeout
	SKIP_SCHEMA     → -skip-schema

CLI flags take precedence over environment variables. main loads a .env
file into the environment before ParseFlags runs.
*/
package cliparse
