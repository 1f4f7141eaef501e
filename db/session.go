// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/danielhkuo/social-posts/models"
)

// ErrNotFound is returned when no post matches the id in the expected
// removed or non-removed state.
var ErrNotFound = errors.New("post not found")

const postColumns = "id, content, likes, created"

type queries struct {
	table   string
	list    string
	get     string
	create  string
	edit    string
	remove  string
	restore string
	likes   string
}

func newQueries(table string) queries {
	return queries{
		table: table,
		list: fmt.Sprintf(`SELECT %s FROM %s WHERE removed = FALSE ORDER BY id DESC`,
			postColumns, table),
		get: fmt.Sprintf(`SELECT %s FROM %s WHERE removed = FALSE AND id = $1`,
			postColumns, table),
		create: fmt.Sprintf(`INSERT INTO %s (content) VALUES ($1) RETURNING %s`,
			table, postColumns),
		edit: fmt.Sprintf(`UPDATE %s SET content = $2 WHERE removed = FALSE AND id = $1 RETURNING %s`,
			table, postColumns),
		// Only the removed flag changes, so the returned columns are the
		// snapshot from before the update.
		remove: fmt.Sprintf(`UPDATE %s SET removed = TRUE WHERE removed = FALSE AND id = $1 RETURNING %s`,
			table, postColumns),
		restore: fmt.Sprintf(`UPDATE %s SET removed = FALSE WHERE removed = TRUE AND id = $1 RETURNING %s`,
			table, postColumns),
		// The counter moves in a single statement; RETURNING reports the
		// value it held before.
		likes: fmt.Sprintf(`UPDATE %s SET likes = likes + $2 WHERE removed = FALSE AND id = $1 RETURNING id, content, likes - $2, created`,
			table),
	}
}

// Session is one request's view of the store. It is not safe for
// concurrent use.
type Session struct {
	client *Client
	conn   *sql.Conn
	closed bool
}

func (s *Session) acquire(ctx context.Context) (*sql.Conn, error) {
	if s.closed {
		return nil, errors.New("session is closed")
	}
	if s.conn != nil {
		return s.conn, nil
	}

	conn, err := s.client.db.Conn(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "acquiring connection failed")
	}
	s.conn = conn
	return conn, nil
}

// Close releases the session's connection, if it took one.
// Calling Close more than once is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.conn == nil {
		return nil
	}

	err := s.conn.Close()
	s.conn = nil
	if err != nil {
		return errors.Wrap(err, "closing connection failed")
	}
	return nil
}

// ListPosts returns every non-removed post, newest id first.
func (s *Session) ListPosts(ctx context.Context) ([]models.Post, error) {
	conn, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, s.client.queries.list)
	if err != nil {
		return nil, errors.Wrap(err, "listing posts failed")
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Content, &p.Likes, timestamp{&p.Created}); err != nil {
			return nil, errors.Wrap(err, "scanning post failed")
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "listing posts failed")
	}

	return posts, nil
}

// GetPost returns the non-removed post with the given id.
func (s *Session) GetPost(ctx context.Context, id int64) (models.Post, error) {
	return s.queryPost(ctx, "getting post failed", s.client.queries.get, id)
}

// CreatePost inserts a post and returns the stored row.
func (s *Session) CreatePost(ctx context.Context, content string) (models.Post, error) {
	return s.queryPost(ctx, "creating post failed", s.client.queries.create, content)
}

// EditPost replaces the content of a non-removed post and returns the
// updated row.
func (s *Session) EditPost(ctx context.Context, id int64, content string) (models.Post, error) {
	return s.queryPost(ctx, "editing post failed", s.client.queries.edit, id, content)
}

// RemovePost soft-deletes a post and returns it as it was before removal.
func (s *Session) RemovePost(ctx context.Context, id int64) (models.Post, error) {
	return s.queryPost(ctx, "removing post failed", s.client.queries.remove, id)
}

// RestorePost clears the removed flag and returns the post as it was
// before restoring.
func (s *Session) RestorePost(ctx context.Context, id int64) (models.Post, error) {
	return s.queryPost(ctx, "restoring post failed", s.client.queries.restore, id)
}

// AdjustLikes adds delta to the like counter of a non-removed post and
// returns the post with the counter value from before the change.
func (s *Session) AdjustLikes(ctx context.Context, id, delta int64) (models.Post, error) {
	return s.queryPost(ctx, "adjusting likes failed", s.client.queries.likes, id, delta)
}

func (s *Session) queryPost(ctx context.Context, msg, query string, args ...any) (models.Post, error) {
	conn, err := s.acquire(ctx)
	if err != nil {
		return models.Post{}, err
	}

	var p models.Post
	err = conn.QueryRowContext(ctx, query, args...).
		Scan(&p.ID, &p.Content, &p.Likes, timestamp{&p.Created})
	if err == sql.ErrNoRows {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		return models.Post{}, errors.Wrap(err, msg)
	}

	return p, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// timestamp scans the created column whether the driver hands back a
// time.Time (postgres) or text (sqlite without a declared time type).
type timestamp struct {
	t *time.Time
}

func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts.t = v
		return nil
	case nil:
		*ts.t = time.Time{}
		return nil
	case []byte:
		return ts.parse(string(v))
	case string:
		return ts.parse(v)
	}
	return errors.Errorf("cannot scan %T into timestamp", src)
}

func (ts timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*ts.t = t
			return nil
		}
	}
	return errors.Errorf("unrecognized timestamp %q", s)
}
