// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain types for the API.

# Post

Post is the only entity. Its JSON shape is:

	{"id": 1, "content": "hello", "likes": 0, "created": "2025-01-02T15:04:05Z"}

Posts are soft-deleted through a removed flag held in the database. The
flag is not part of the JSON shape; removed posts are simply never
returned by list, get, edit, like or dislike.
*/
package models
