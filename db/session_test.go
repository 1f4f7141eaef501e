// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/social-posts/db"
	"github.com/danielhkuo/social-posts/testutil"
)

func TestCreatePostDefaults(t *testing.T) {
	client := testutil.SetupTestDB(t)
	ctx := context.Background()

	session := client.Session()
	defer session.Close()

	before := time.Now().Add(-time.Minute)
	post, err := session.CreatePost(ctx, "hello")
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	if post.ID == 0 {
		t.Error("Expected an assigned id")
	}
	if post.Content != "hello" {
		t.Errorf("Expected content 'hello', got %q", post.Content)
	}
	if post.Likes != 0 {
		t.Errorf("Expected 0 likes, got %d", post.Likes)
	}
	if post.Created.Before(before) {
		t.Errorf("Expected a fresh created timestamp, got %s", post.Created)
	}

	_, _, removed := testutil.LoadTestPost(t, client, post.ID)
	if removed {
		t.Error("New post should not be removed")
	}
}

func TestCreatePostAssignsIncreasingIDs(t *testing.T) {
	client := testutil.SetupTestDB(t)

	first := testutil.CreateTestPost(t, client, "first")
	second := testutil.CreateTestPost(t, client, "second")

	if second.ID <= first.ID {
		t.Errorf("Expected increasing ids, got %d then %d", first.ID, second.ID)
	}
}

func TestListPostsOrderAndFilter(t *testing.T) {
	client := testutil.SetupTestDB(t)
	ctx := context.Background()

	a := testutil.CreateTestPost(t, client, "a")
	b := testutil.CreateTestPost(t, client, "b")
	c := testutil.CreateTestPost(t, client, "c")
	testutil.RemoveTestPost(t, client, b.ID)

	session := client.Session()
	defer session.Close()

	posts, err := session.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}

	if len(posts) != 2 {
		t.Fatalf("Expected 2 posts, got %d", len(posts))
	}
	if posts[0].ID != c.ID || posts[1].ID != a.ID {
		t.Errorf("Expected ids [%d %d], got [%d %d]", c.ID, a.ID, posts[0].ID, posts[1].ID)
	}
}

func TestListPostsEmpty(t *testing.T) {
	client := testutil.SetupTestDB(t)

	session := client.Session()
	defer session.Close()

	posts, err := session.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if posts == nil || len(posts) != 0 {
		t.Errorf("Expected an empty, non-nil slice, got %#v", posts)
	}
}

func TestGetPostNotFound(t *testing.T) {
	client := testutil.SetupTestDB(t)
	ctx := context.Background()

	post := testutil.CreateTestPost(t, client, "gone")
	testutil.RemoveTestPost(t, client, post.ID)

	session := client.Session()
	defer session.Close()

	for _, id := range []int64{post.ID, post.ID + 100, 0, -1} {
		if _, err := session.GetPost(ctx, id); !errors.Is(err, db.ErrNotFound) {
			t.Errorf("GetPost(%d): expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestEditPost(t *testing.T) {
	client := testutil.SetupTestDB(t)
	ctx := context.Background()

	post := testutil.CreateTestPost(t, client, "draft")

	session := client.Session()
	defer session.Close()

	edited, err := session.EditPost(ctx, post.ID, "final")
	if err != nil {
		t.Fatalf("EditPost failed: %v", err)
	}
	if edited.Content != "final" || edited.ID != post.ID {
		t.Errorf("Unexpected edited post: %+v", edited)
	}

	testutil.RemoveTestPost(t, client, post.ID)
	if _, err := session.EditPost(ctx, post.ID, "again"); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected ErrNotFound editing a removed post, got %v", err)
	}

	_, content, _ := testutil.LoadTestPost(t, client, post.ID)
	if content != "final" {
		t.Errorf("Removed post should keep its content, got %q", content)
	}
}

func TestRemoveAndRestore(t *testing.T) {
	client := testutil.SetupTestDB(t)
	ctx := context.Background()

	post := testutil.CreateTestPost(t, client, "temporary")
	testutil.SetTestLikes(t, client, post.ID, 3)

	session := client.Session()
	defer session.Close()

	if _, err := session.RestorePost(ctx, post.ID); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Restoring a live post: expected ErrNotFound, got %v", err)
	}

	removed, err := session.RemovePost(ctx, post.ID)
	if err != nil {
		t.Fatalf("RemovePost failed: %v", err)
	}
	if removed.ID != post.ID || removed.Likes != 3 || removed.Content != "temporary" {
		t.Errorf("Expected the pre-removal snapshot, got %+v", removed)
	}

	if _, err := session.RemovePost(ctx, post.ID); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Second removal: expected ErrNotFound, got %v", err)
	}

	restored, err := session.RestorePost(ctx, post.ID)
	if err != nil {
		t.Fatalf("RestorePost failed: %v", err)
	}
	if restored.ID != post.ID || restored.Likes != 3 {
		t.Errorf("Expected the pre-restore snapshot, got %+v", restored)
	}

	if _, err := session.GetPost(ctx, post.ID); err != nil {
		t.Errorf("Restored post should be visible: %v", err)
	}
}

func TestAdjustLikesReturnsPreviousValue(t *testing.T) {
	client := testutil.SetupTestDB(t)
	ctx := context.Background()

	post := testutil.CreateTestPost(t, client, "likeable")

	session := client.Session()
	defer session.Close()

	first, err := session.AdjustLikes(ctx, post.ID, 1)
	if err != nil {
		t.Fatalf("AdjustLikes failed: %v", err)
	}
	if first.Likes != 0 {
		t.Errorf("Expected pre-increment value 0, got %d", first.Likes)
	}

	second, err := session.AdjustLikes(ctx, post.ID, 1)
	if err != nil {
		t.Fatalf("AdjustLikes failed: %v", err)
	}
	if second.Likes != 1 {
		t.Errorf("Expected pre-increment value 1, got %d", second.Likes)
	}

	down, err := session.AdjustLikes(ctx, post.ID, -1)
	if err != nil {
		t.Fatalf("AdjustLikes failed: %v", err)
	}
	if down.Likes != 2 {
		t.Errorf("Expected pre-decrement value 2, got %d", down.Likes)
	}

	likes, _, _ := testutil.LoadTestPost(t, client, post.ID)
	if likes != 1 {
		t.Errorf("Expected 1 persisted like, got %d", likes)
	}

	testutil.RemoveTestPost(t, client, post.ID)
	if _, err := session.AdjustLikes(ctx, post.ID, 1); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Liking a removed post: expected ErrNotFound, got %v", err)
	}
}

func TestAdjustLikesConcurrent(t *testing.T) {
	client := testutil.SetupTestDB(t)
	post := testutil.CreateTestPost(t, client, "popular")

	const likers = 20
	var wg sync.WaitGroup
	errs := make(chan error, likers)

	for i := 0; i < likers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session := client.Session()
			defer session.Close()

			if _, err := session.AdjustLikes(context.Background(), post.ID, 1); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("AdjustLikes failed: %v", err)
	}

	likes, _, _ := testutil.LoadTestPost(t, client, post.ID)
	if likes != likers {
		t.Errorf("Expected %d likes, got %d (lost update)", likers, likes)
	}
}

func TestSessionLifecycle(t *testing.T) {
	client := testutil.SetupTestDB(t)

	// An unused session holds no connection.
	idle := client.Session()
	if err := idle.Close(); err != nil {
		t.Errorf("Closing an unused session failed: %v", err)
	}

	session := client.Session()
	if _, err := session.ListPosts(context.Background()); err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if open := client.DB().Stats().InUse; open != 1 {
		t.Errorf("Expected 1 connection in use, got %d", open)
	}

	if err := session.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := session.Close(); err != nil {
		t.Errorf("Second Close should be a no-op, got %v", err)
	}

	stats := client.DB().Stats()
	if stats.InUse != 0 || stats.Idle != 0 {
		t.Errorf("Expected the connection to be closed, got in_use=%d idle=%d", stats.InUse, stats.Idle)
	}

	if _, err := session.ListPosts(context.Background()); err == nil {
		t.Error("Expected an error using a closed session")
	}
}
