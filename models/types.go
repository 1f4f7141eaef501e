package models

import "time"

// Post is a row of the posts table as returned to clients.
// The removed flag is never serialized.
type Post struct {
	ID      int64     `json:"id"`
	Content string    `json:"content"`
	Likes   int64     `json:"likes"`
	Created time.Time `json:"created"`
}
