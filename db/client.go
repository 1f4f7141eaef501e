// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"regexp"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/social-posts/cliparse"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Client is the process-wide handle to the posts store. Requests never
// share connections: each Session borrows its own and closes it on release.
type Client struct {
	db      *sql.DB
	dbType  string
	schema  string
	queries queries
}

// Open connects to the database described by cfg and verifies it is reachable.
// The caller owns the returned Client and must Close it on shutdown.
func Open(ctx context.Context, cfg cliparse.Config) (*Client, error) {
	schema := cfg.Schema
	if schema == "" {
		schema = cliparse.DefaultSchema(cfg.DatabaseType)
	}
	if !identifier.MatchString(schema) {
		return nil, errors.Errorf("invalid schema name %q", schema)
	}

	dsn := cfg.DatabaseURL
	if cfg.DatabaseType == cliparse.DatabaseSQLite {
		dsn = sqliteDSN(dsn)
	}

	// The driver names registered by lib/pq, pgx and modernc match the
	// configured database types.
	conn, err := sql.Open(cfg.DatabaseType, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s database failed", cfg.DatabaseType)
	}

	// No idle pool: a released connection is closed, never handed to the
	// next request.
	conn.SetMaxIdleConns(0)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "database ping failed")
	}

	return &Client{
		db:      conn,
		dbType:  cfg.DatabaseType,
		schema:  schema,
		queries: newQueries(schema + ".posts"),
	}, nil
}

// Session returns a new per-request session. No connection is taken until
// the session runs its first statement.
func (c *Client) Session() *Session {
	return &Session{client: c}
}

// DB exposes the underlying handle for schema setup, stats and tests.
func (c *Client) DB() *sql.DB {
	return c.db
}

// Table is the qualified name of the posts table.
func (c *Client) Table() string {
	return c.queries.table
}

// Close shuts the client down. Sessions must not be used afterwards.
func (c *Client) Close() error {
	return c.db.Close()
}

// sqliteDSN makes concurrent writers wait on each other instead of failing
// with SQLITE_BUSY, since every request opens its own connection.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "busy_timeout") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=busy_timeout(5000)"
}
