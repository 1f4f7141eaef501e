// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/social-posts/cliparse"
	"github.com/danielhkuo/social-posts/db"
	"github.com/danielhkuo/social-posts/models"
)

// SetupTestDB creates a fresh SQLite database in a temp dir with the full schema.
// The client is closed when the test ends.
func SetupTestDB(t *testing.T) *db.Client {
	t.Helper()

	cfg := GetTestConfig(t)
	client, err := db.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	if err := db.CreateSchema(context.Background(), client); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return client
}

// GetTestConfig returns a standard test configuration backed by a temp file
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "posts.db")
	return cliparse.Config{
		Port:           9999,
		DatabaseURL:    "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
		DatabaseType:   cliparse.DatabaseSQLite,
		Schema:         "main",
		RequestTimeout: 5 * time.Second,
	}
}

// CreateTestPost inserts a post directly and returns it
func CreateTestPost(t *testing.T, client *db.Client, content string) models.Post {
	t.Helper()

	session := client.Session()
	defer session.Close()

	post, err := session.CreatePost(context.Background(), content)
	if err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}

	return post
}

// SetTestLikes overwrites the like counter of a post
func SetTestLikes(t *testing.T, client *db.Client, id, likes int64) {
	t.Helper()

	_, err := client.DB().Exec(
		fmt.Sprintf("UPDATE %s SET likes = $1 WHERE id = $2", client.Table()), likes, id)
	if err != nil {
		t.Fatalf("Failed to set likes: %v", err)
	}
}

// RemoveTestPost marks a post as removed directly in the table
func RemoveTestPost(t *testing.T, client *db.Client, id int64) {
	t.Helper()

	_, err := client.DB().Exec(
		fmt.Sprintf("UPDATE %s SET removed = TRUE WHERE id = $1", client.Table()), id)
	if err != nil {
		t.Fatalf("Failed to remove test post: %v", err)
	}
}

// LoadTestPost reads a post regardless of its removed flag
func LoadTestPost(t *testing.T, client *db.Client, id int64) (likes int64, content string, removed bool) {
	t.Helper()

	err := client.DB().QueryRow(
		fmt.Sprintf("SELECT likes, content, removed FROM %s WHERE id = $1", client.Table()), id).
		Scan(&likes, &content, &removed)
	if err != nil {
		t.Fatalf("Failed to load test post %d: %v", id, err)
	}

	return likes, content, removed
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertEmptyBody checks that nothing but a status was written
func AssertEmptyBody(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if w.Body.Len() != 0 {
		t.Errorf("Expected empty body, got %q", w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %q", ct)
	}
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
