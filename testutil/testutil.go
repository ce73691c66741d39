// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/secret-santa/auth"
	"github.com/danielhkuo/secret-santa/cliparse"
	"github.com/danielhkuo/secret-santa/db"
	"github.com/danielhkuo/secret-santa/draw"
)

// TestAdminKey is the admin key in GetTestConfig
const TestAdminKey = "test-admin-key"

// SetupTestDB creates a fresh on-disk SQLite database with the full schema.
// The file lives in t.TempDir and is removed with it.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", filepath.Join(t.TempDir(), "santa.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseURL:     "santa.db",
		DatabaseType:    "sqlite",
		AdminKey:        TestAdminKey,
		MaxDrawAttempts: draw.DefaultMaxAttempts,
		Topic:           "Secret Santa",
		Year:            2025,
	}
}

// CreateTestParticipant inserts a participant with one wish and returns
// its ID and token
func CreateTestParticipant(t *testing.T, db *sql.DB, characterName string) (participantID, token string) {
	t.Helper()

	participantID, _ = auth.GenerateID(16)
	token, _ = auth.GenerateParticipantToken()

	_, err := db.Exec(`
		INSERT INTO participant (id, character_name, first_name, last_name, email, token, comments, created_at)
		VALUES ($1, $2, 'Test', 'User', $3, $4, '', $5)
	`, participantID, characterName, participantID+"@example.com", token, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test participant: %v", err)
	}

	_, err = db.Exec(`
		INSERT INTO wish (participant_id, slot, description, link)
		VALUES ($1, 1, $2, '')
	`, participantID, "A gift for "+characterName)
	if err != nil {
		t.Fatalf("Failed to create test wish: %v", err)
	}

	return participantID, token
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
