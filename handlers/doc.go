// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the endpoint handlers for the posts API.

# Handler Shape

Every handler is a Func. The router invokes it with the request's path,
its query parameters and the request's store session:

	func(w http.ResponseWriter, r *http.Request, p handlers.Params) error

Handlers never check the HTTP method.

# Endpoints

	/posts.get                   → List
	/posts.getById?id=           → GetByID
	/posts.post?content=         → Create
	/posts.edit?id=&content=     → Edit
	/posts.delete?id=            → Delete
	/posts.restore?id=           → Restore
	/posts.like?id=              → Like
	/posts.dislike?id=           → Dislike

# Validation

A missing parameter, or an id that does not parse as a number, is
answered with 400 and an empty body before the store is touched. Ids are
read as decimal numbers, so 1, 01, 1.0 and 1e0 all name post 1. A number
that is not whole or does not fit in int64 names no post and is answered
with 404, also without touching the store. Zero is a valid id.

# Responses

Success is 200 with the post (or the list of posts) as JSON. A post that
is absent, or not in the state the operation expects, is 404 with an
empty body. Any other failure is returned to the router, which answers
500 with an empty body.

Delete, Restore, Like and Dislike respond with the post as it was before
the change. Like and Dislike move the counter in a single store
statement, so concurrent calls on one post do not lose updates.
*/
package handlers
