// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request IDs and Logging

Wrap handlers with request ids and request logging:

	handler := middleware.WithRequestID(middleware.WithLogging(next))

Logs request start (method, path, remote, request_id) and completion
(status, duration_ms). The id comes from X-Request-ID or a new UUID and is
echoed on the response.

# Response Helpers

Status-only and JSON responses:

	middleware.SendStatus(w, http.StatusNotFound)
	middleware.SendJSON(w, post)
	middleware.JSONResponse(w, http.StatusOK, posts)

Headers are always set before the status is written.

# Status Tracking

StatusWriter records the first status sent so callers can tell whether a
response is already underway:

	sw := middleware.WrapWriter(w)
	if !sw.Written() { ... }

# Metrics

Metrics keeps request counters and latency histograms on its own
Prometheus registry, plus database connection statistics:

	metrics := middleware.NewMetrics(client.DB())
	mux.Handle("GET /metrics", metrics.Handler())

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
