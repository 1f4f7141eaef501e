// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/social-posts/handlers"
	"github.com/danielhkuo/social-posts/middleware"
)

// Session is a request-scoped store handle the dispatcher closes when the
// handler is done.
type Session interface {
	handlers.Store
	Close() error
}

// OpenFunc opens a session for one request.
type OpenFunc func(ctx context.Context) (Session, error)

// Dispatcher looks up the handler for a path and runs it inside its own
// store session.
type Dispatcher struct {
	routes  map[string]handlers.Func
	open    OpenFunc
	timeout time.Duration
	metrics *middleware.Metrics
}

// NewDispatcher builds a dispatcher over a fixed route table. A zero
// timeout leaves request contexts unbounded; metrics may be nil.
func NewDispatcher(routes map[string]handlers.Func, open OpenFunc, timeout time.Duration, metrics *middleware.Metrics) *Dispatcher {
	return &Dispatcher{
		routes:  routes,
		open:    open,
		timeout: timeout,
		metrics: metrics,
	}
}

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sw := middleware.WrapWriter(w)

	route := r.URL.Path
	h, ok := d.routes[route]
	if !ok {
		middleware.SendStatus(sw, http.StatusNotFound)
		d.metrics.Observe("unmatched", http.StatusNotFound, time.Since(start))
		return
	}
	defer func() {
		d.metrics.Observe(route, sw.Status(), time.Since(start))
	}()

	if d.timeout > 0 {
		ctx, cancel := context.WithTimeout(r.Context(), d.timeout)
		defer cancel()
		r = r.WithContext(ctx)
	}

	d.dispatch(sw, r, h)
}

// dispatch runs h and guarantees the session is closed and that a failure
// before any response was written becomes a bare 500.
func (d *Dispatcher) dispatch(w *middleware.StatusWriter, r *http.Request, h handlers.Func) {
	requestID := middleware.RequestID(r.Context())

	var session Session
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("handler panicked",
				"path", r.URL.Path,
				"panic", rec,
				"request_id", requestID,
			)
			d.fail(w, r)
		}

		if session == nil {
			return
		}
		if err := session.Close(); err != nil {
			slog.Error("failed to close session",
				"path", r.URL.Path,
				"error", err,
				"request_id", requestID,
			)
		}
	}()

	var err error
	session, err = d.open(r.Context())
	if err != nil {
		slog.Error("failed to open session", "path", r.URL.Path, "error", err, "request_id", requestID)
		d.fail(w, r)
		return
	}

	err = h(w, r, handlers.Params{
		Path:  r.URL.Path,
		Query: r.URL.Query(),
		DB:    session,
	})
	if err != nil {
		slog.Error("handler failed", "path", r.URL.Path, "error", err, "request_id", requestID)
		d.fail(w, r)
	}
}

func (d *Dispatcher) fail(w *middleware.StatusWriter, r *http.Request) {
	if w.Written() {
		slog.Warn("response already started, not sending 500",
			"path", r.URL.Path,
			"status", w.Status(),
		)
		return
	}
	middleware.SendStatus(w, http.StatusInternalServerError)
}
