// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/danielhkuo/social-posts/middleware"
	"github.com/danielhkuo/social-posts/models"
)

// Store is the per-request view of the posts table. Methods that target a
// single post return db.ErrNotFound when the post is missing or not in the
// expected removed state.
type Store interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, id int64) (models.Post, error)
	CreatePost(ctx context.Context, content string) (models.Post, error)
	EditPost(ctx context.Context, id int64, content string) (models.Post, error)
	RemovePost(ctx context.Context, id int64) (models.Post, error)
	RestorePost(ctx context.Context, id int64) (models.Post, error)
	AdjustLikes(ctx context.Context, id, delta int64) (models.Post, error)
}

// Params is what the dispatcher hands every handler.
type Params struct {
	Path  string
	Query url.Values
	DB    Store
}

// Func handles one endpoint. It writes exactly one response unless it
// returns an error before writing, in which case the dispatcher answers 500.
type Func func(w http.ResponseWriter, r *http.Request, p Params) error

// idParam is the outcome of reading the id query parameter.
type idParam int

const (
	idInvalid     idParam = iota // missing or not a number: 400
	idUnmatchable                // a number no post can carry: 404
	idValid
)

// requireID reads the id query parameter as a number. Zero is a valid id.
// Numbers that are not whole, or fall outside int64, parse fine but can
// never match a post.
func requireID(q url.Values) (int64, idParam) {
	if !q.Has("id") {
		return 0, idInvalid
	}
	raw := strings.TrimSpace(q.Get("id"))
	if raw == "" {
		return 0, idInvalid
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, idInvalid
	}
	if math.IsNaN(f) {
		return 0, idInvalid
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, idUnmatchable
	}
	return int64(f), idValid
}

// sendIDError answers a request whose id is not idValid.
func sendIDError(w http.ResponseWriter, state idParam) {
	if state == idUnmatchable {
		middleware.SendStatus(w, http.StatusNotFound)
		return
	}
	middleware.SendStatus(w, http.StatusBadRequest)
}

// requireContent reads the content query parameter. An empty value is
// allowed as long as the parameter is present.
func requireContent(q url.Values) (string, bool) {
	if !q.Has("content") {
		return "", false
	}
	return q.Get("content"), true
}
