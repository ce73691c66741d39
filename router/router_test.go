// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/secret-santa/cliparse"
	"github.com/danielhkuo/secret-santa/models"
	"github.com/danielhkuo/secret-santa/notify"
	"github.com/danielhkuo/secret-santa/testutil"
)

func newTestMux(t *testing.T, cfg cliparse.Config) *http.ServeMux {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { db.Close() })

	mux, err := NewRouter(db, cfg)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}
	return mux
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestMux(t, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestMux(t, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "secret-santa API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestMux(t, testutil.GetTestConfig())

	// 400, 401, 404 are all valid responses depending on handler logic
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"POST", "/participants"},
		{"GET", "/me"},
		{"PUT", "/me/wishes"},
		{"GET", "/me/secret-friend"},

		{"GET", "/admin/stats"},
		{"POST", "/admin/draw"},
		{"POST", "/admin/wishes/lock"},
		{"POST", "/admin/wishes/unlock"},
		{"GET", "/admin/assignments.csv"},
		{"POST", "/admin/notify"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestMux(t, testutil.GetTestConfig())

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"DELETE", "/admin/draw"},
		{"DELETE", "/me/wishes"},
		{"PUT", "/participants"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestNotifyDisabledWithoutSMTP(t *testing.T) {
	mux := newTestMux(t, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/admin/notify", nil, map[string]string{"X-Admin-Key": testutil.TestAdminKey})
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)
}

func TestNewRouter_WithSMTP(t *testing.T) {
	cfg := testutil.GetTestConfig()
	cfg.SMTP = notify.Config{
		Host:     "smtp.example.com",
		Port:     587,
		User:     "santa@example.com",
		Password: "secret",
		UseTLS:   true,
	}
	mux := newTestMux(t, cfg)

	// no assignments yet, so the notifier is reached but has nothing to send
	req := testutil.MakeRequest("POST", "/admin/notify", nil, map[string]string{"X-Admin-Key": testutil.TestAdminKey})
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusConflict)
}

// TestFullExchangeWorkflow runs registration, a draw and the reveal
// through the router.
func TestFullExchangeWorkflow(t *testing.T) {
	mux := newTestMux(t, testutil.GetTestConfig())
	admin := map[string]string{"X-Admin-Key": testutil.TestAdminKey}

	names := []string{"Dasher", "Dancer", "Prancer"}
	tokens := make([]string, 0, len(names))
	for _, name := range names {
		body := models.RegisterRequest{
			CharacterName: name,
			FirstName:     name + "-first",
			LastName:      name + "-last",
			Email:         name + "@example.com",
			Wishes:        []models.WishInput{{Description: "Carrots for " + name}},
		}
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.MakeRequest("POST", "/participants", body, nil))
		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.RegisterResponse
		testutil.AssertJSON(t, w, &resp)
		tokens = append(tokens, resp.ParticipantToken)
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/admin/draw", nil, admin))
	testutil.AssertStatus(t, w, http.StatusOK)

	recipients := map[string]bool{}
	for i, token := range tokens {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.MakeRequest("GET", "/me/secret-friend", nil, map[string]string{"X-Participant-Token": token}))
		testutil.AssertStatus(t, w, http.StatusOK)

		var friend models.SecretFriendResponse
		testutil.AssertJSON(t, w, &friend)
		if friend.CharacterName == names[i] {
			t.Errorf("%s drew themselves", names[i])
		}
		if len(friend.Wishes) != 1 || friend.Wishes[0].Description != "Carrots for "+friend.CharacterName {
			t.Errorf("unexpected wishes for %s: %+v", friend.CharacterName, friend.Wishes)
		}
		recipients[friend.CharacterName] = true
	}
	if len(recipients) != len(names) {
		t.Errorf("expected %d distinct recipients, got %v", len(names), recipients)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/admin/stats", nil, admin))
	testutil.AssertStatus(t, w, http.StatusOK)

	var stats models.Stats
	testutil.AssertJSON(t, w, &stats)
	if stats.TotalParticipants != 3 || stats.TotalAssignments != 3 || stats.LastDraw == nil {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
