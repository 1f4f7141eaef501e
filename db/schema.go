// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/danielhkuo/social-posts/cliparse"
)

// CreateSchema creates the posts table and its schema.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, c *Client) error {
	for _, stmt := range schemaStatements(c.dbType, c.schema) {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "failed to create schema")
		}
	}

	return nil
}

func schemaStatements(dbType, schema string) []string {
	if dbType == cliparse.DatabaseSQLite {
		// SQLite qualifies the index name, not the table, with the schema.
		return []string{
			fmt.Sprintf(sqliteTable, schema),
			fmt.Sprintf(sqliteIndex, schema),
		}
	}

	return []string{
		fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, schema),
		fmt.Sprintf(postgresTable, schema),
		fmt.Sprintf(postgresIndex, schema),
	}
}

const postgresTable = `
CREATE TABLE IF NOT EXISTS %s.posts (
    id BIGSERIAL PRIMARY KEY,
    content TEXT NOT NULL,
    likes BIGINT NOT NULL DEFAULT 0,
    created TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    removed BOOLEAN NOT NULL DEFAULT FALSE
)`

const postgresIndex = `CREATE INDEX IF NOT EXISTS posts_removed_id_idx ON %s.posts (removed, id)`

const sqliteTable = `
CREATE TABLE IF NOT EXISTS %s.posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    content TEXT NOT NULL,
    likes INTEGER NOT NULL DEFAULT 0,
    created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    removed BOOLEAN NOT NULL DEFAULT FALSE
)`

const sqliteIndex = `CREATE INDEX IF NOT EXISTS %s.posts_removed_id_idx ON posts (removed, id)`
