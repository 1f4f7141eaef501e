// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"net/http"

	"github.com/danielhkuo/social-posts/cliparse"
	"github.com/danielhkuo/social-posts/db"
	"github.com/danielhkuo/social-posts/handlers"
	"github.com/danielhkuo/social-posts/middleware"
)

// Routes is the fixed path table. Paths match exactly and any method is
// accepted.
func Routes() map[string]handlers.Func {
	return map[string]handlers.Func{
		"/posts.get":     handlers.List,
		"/posts.getById": handlers.GetByID,
		"/posts.post":    handlers.Create,
		"/posts.edit":    handlers.Edit,
		"/posts.delete":  handlers.Delete,
		"/posts.restore": handlers.Restore,
		"/posts.like":    handlers.Like,
		"/posts.dislike": handlers.Dislike,
	}
}

func NewRouter(client *db.Client, cfg cliparse.Config, metrics *middleware.Metrics) http.Handler {
	open := func(ctx context.Context) (Session, error) {
		return client.Session(), nil
	}

	d := NewDispatcher(Routes(), open, cfg.RequestTimeout, metrics)

	return middleware.WithRequestID(middleware.WithLogging(d.ServeHTTP))
}
