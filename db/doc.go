// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the posts store: the client, per-request sessions and
schema creation.

# Client

Open builds the single store client from configuration. It is created once
in main and closed on shutdown:

	client, err := db.Open(ctx, cfg)
	defer client.Close()

Three drivers are supported, chosen by cfg.DatabaseType:

  - postgres: github.com/lib/pq
  - pgx: github.com/jackc/pgx/v5/stdlib
  - sqlite: modernc.org/sqlite

The client keeps no idle connections, so a connection released by one
request is closed rather than reused by the next.

# Sessions

Each request gets its own Session:

	session := client.Session()
	defer session.Close()

	post, err := session.GetPost(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		// 404
	}

A session takes a connection on its first statement and closes it in
Close. Sessions are not safe for concurrent use.

# Mutations

Every mutation is a single UPDATE or INSERT with RETURNING:

  - RemovePost and RestorePost flip the removed flag and return the post
    as it was before.
  - AdjustLikes moves the counter with likes = likes + delta and returns
    the value from before the change, so concurrent likes are never lost.

# Schema Creation

CreateSchema creates the schema (PostgreSQL only) and the posts table:

	posts (
	    id       auto-increment primary key
	    content  text, required
	    likes    integer, default 0
	    created  timestamp, default now
	    removed  boolean, default false
	)

with an index on (removed, id). Safe to call multiple times - uses IF NOT
EXISTS. SQLite has no CREATE SCHEMA; its table lives in "main".
*/
package db
