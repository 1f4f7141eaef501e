// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router dispatches API requests to the post handlers.

# Route Registration

NewRouter builds the dispatcher over the store client and wraps it with
request-id and logging middleware:

	handler := router.NewRouter(client, cfg, metrics)

# Endpoints

Paths match exactly; the HTTP method is ignored:

	/posts.get      - List posts
	/posts.getById  - Get one post
	/posts.post     - Create a post
	/posts.edit     - Edit a post's content
	/posts.delete   - Soft-delete a post
	/posts.restore  - Restore a deleted post
	/posts.like     - Add a like
	/posts.dislike  - Remove a like

Any other path is answered with 404 and an empty body.

# Sessions

For each matched request the dispatcher opens a store session, passes it
to the handler in handlers.Params and closes it once the handler returns,
panics or fails. Close errors are logged and never change the response.

A handler error or panic becomes 500 with an empty body, unless the
handler had already started its response.

# Timeouts

cfg.RequestTimeout bounds every request context, and with it every store
call the handler makes. Zero disables the bound.
*/
package router
