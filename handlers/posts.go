// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/social-posts/db"
	"github.com/danielhkuo/social-posts/middleware"
	"github.com/danielhkuo/social-posts/models"
)

// List handles /posts.get
func List(w http.ResponseWriter, r *http.Request, p Params) error {
	posts, err := p.DB.ListPosts(r.Context())
	if err != nil {
		return err
	}

	middleware.SendJSON(w, posts)
	return nil
}

// GetByID handles /posts.getById?id=
func GetByID(w http.ResponseWriter, r *http.Request, p Params) error {
	id, state := requireID(p.Query)
	if state != idValid {
		sendIDError(w, state)
		return nil
	}

	post, err := p.DB.GetPost(r.Context(), id)
	return sendPost(w, post, err)
}

// Create handles /posts.post?content=
func Create(w http.ResponseWriter, r *http.Request, p Params) error {
	content, ok := requireContent(p.Query)
	if !ok {
		middleware.SendStatus(w, http.StatusBadRequest)
		return nil
	}

	post, err := p.DB.CreatePost(r.Context(), content)
	if err != nil {
		return err
	}

	slog.Info("post created", "post_id", post.ID)
	middleware.SendJSON(w, post)
	return nil
}

// Edit handles /posts.edit?id=&content=
func Edit(w http.ResponseWriter, r *http.Request, p Params) error {
	id, state := requireID(p.Query)
	if state == idInvalid {
		sendIDError(w, state)
		return nil
	}
	content, ok := requireContent(p.Query)
	if !ok {
		middleware.SendStatus(w, http.StatusBadRequest)
		return nil
	}
	if state != idValid {
		sendIDError(w, state)
		return nil
	}

	post, err := p.DB.EditPost(r.Context(), id, content)
	return sendPost(w, post, err)
}

// Delete handles /posts.delete?id=
// The response is the post as it was before removal.
func Delete(w http.ResponseWriter, r *http.Request, p Params) error {
	id, state := requireID(p.Query)
	if state != idValid {
		sendIDError(w, state)
		return nil
	}

	post, err := p.DB.RemovePost(r.Context(), id)
	if err == nil {
		slog.Info("post removed", "post_id", id)
	}
	return sendPost(w, post, err)
}

// Restore handles /posts.restore?id=
// The response is the post as it was before restoring.
func Restore(w http.ResponseWriter, r *http.Request, p Params) error {
	id, state := requireID(p.Query)
	if state != idValid {
		sendIDError(w, state)
		return nil
	}

	post, err := p.DB.RestorePost(r.Context(), id)
	if err == nil {
		slog.Info("post restored", "post_id", id)
	}
	return sendPost(w, post, err)
}

// Like handles /posts.like?id=
func Like(w http.ResponseWriter, r *http.Request, p Params) error {
	return adjustLikes(w, r, p, 1)
}

// Dislike handles /posts.dislike?id=
func Dislike(w http.ResponseWriter, r *http.Request, p Params) error {
	return adjustLikes(w, r, p, -1)
}

// adjustLikes responds with the counter value from before the change.
func adjustLikes(w http.ResponseWriter, r *http.Request, p Params, delta int64) error {
	id, state := requireID(p.Query)
	if state != idValid {
		sendIDError(w, state)
		return nil
	}

	post, err := p.DB.AdjustLikes(r.Context(), id, delta)
	return sendPost(w, post, err)
}

// sendPost maps a single-post store result onto 200, 404 or a returned
// error for the dispatcher.
func sendPost(w http.ResponseWriter, post models.Post, err error) error {
	if errors.Is(err, db.ErrNotFound) {
		middleware.SendStatus(w, http.StatusNotFound)
		return nil
	}
	if err != nil {
		return err
	}

	middleware.SendJSON(w, post)
	return nil
}
