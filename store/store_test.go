// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/secret-santa/db"
	"github.com/danielhkuo/secret-santa/draw"
	"github.com/danielhkuo/secret-santa/models"
)

func setupTestStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()

	conn, err := db.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return New(conn), conn
}

var baseTime = time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)

func addParticipant(t *testing.T, s *Store, n int, character string, wishes ...string) *models.Participant {
	t.Helper()

	p := &models.Participant{
		ID:            fmt.Sprintf("p%02d", n),
		CharacterName: character,
		FirstName:     fmt.Sprintf("First%d", n),
		LastName:      fmt.Sprintf("Last%d", n),
		Email:         fmt.Sprintf("p%d@example.com", n),
		Token:         fmt.Sprintf("token-%d", n),
		CreatedAt:     baseTime.Add(time.Duration(n) * time.Minute),
	}
	for _, w := range wishes {
		p.Wishes = append(p.Wishes, models.Wish{Description: w})
	}

	if err := s.CreateParticipant(context.Background(), p); err != nil {
		t.Fatalf("CreateParticipant(%s) error = %v", character, err)
	}
	return p
}

func testDraw(id string, count int) models.Draw {
	return models.Draw{ID: id, ParticipantCount: count, Attempts: 1, DrawnAt: baseTime}
}

func TestCreateParticipant(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	p := addParticipant(t, s, 1, "Rudolph", "Red nose polish", "Sleigh bells")

	got, err := s.ParticipantByToken(ctx, "token-1")
	if err != nil {
		t.Fatalf("ParticipantByToken() error = %v", err)
	}
	if got.ID != p.ID || got.CharacterName != "Rudolph" || got.Email != "p1@example.com" {
		t.Errorf("unexpected participant: %+v", got)
	}
	if len(got.Wishes) != 2 {
		t.Fatalf("expected 2 wishes, got %d", len(got.Wishes))
	}
	if got.Wishes[0].Slot != 1 || got.Wishes[1].Slot != 2 || got.Wishes[1].Description != "Sleigh bells" {
		t.Errorf("wishes not stored in order: %+v", got.Wishes)
	}

	if _, err := s.ParticipantByToken(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateParticipant_CharacterTaken(t *testing.T) {
	s, _ := setupTestStore(t)
	addParticipant(t, s, 1, "Rudolph")

	dup := &models.Participant{
		ID: "p99", CharacterName: "rudolph", FirstName: "x", LastName: "y",
		Email: "x@example.com", Token: "token-99", CreatedAt: baseTime,
	}
	err := s.CreateParticipant(context.Background(), dup)
	if !errors.Is(err, ErrCharacterTaken) {
		t.Fatalf("expected ErrCharacterTaken, got %v", err)
	}

	ids, _ := s.ParticipantIDs(context.Background())
	if len(ids) != 1 {
		t.Errorf("expected 1 participant, got %d", len(ids))
	}
}

func TestCreateParticipant_TooManyWishes(t *testing.T) {
	s, _ := setupTestStore(t)

	p := &models.Participant{ID: "p1", CharacterName: "Elf", Token: "t", CreatedAt: baseTime}
	for i := 0; i <= models.MaxWishes; i++ {
		p.Wishes = append(p.Wishes, models.Wish{Description: "thing"})
	}

	if err := s.CreateParticipant(context.Background(), p); !errors.Is(err, ErrTooManyWishes) {
		t.Errorf("expected ErrTooManyWishes, got %v", err)
	}
}

func TestParticipantIDs_Order(t *testing.T) {
	s, _ := setupTestStore(t)

	ids, err := s.ParticipantIDs(context.Background())
	if err != nil {
		t.Fatalf("ParticipantIDs() error = %v", err)
	}
	if ids == nil || len(ids) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", ids)
	}

	addParticipant(t, s, 3, "Comet")
	addParticipant(t, s, 1, "Dasher")
	addParticipant(t, s, 2, "Dancer")

	ids, err = s.ParticipantIDs(context.Background())
	if err != nil {
		t.Fatalf("ParticipantIDs() error = %v", err)
	}
	want := []string{"p01", "p02", "p03"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ParticipantIDs() = %v, want %v", ids, want)
		}
	}
}

func TestUpdateWishes(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	p := addParticipant(t, s, 1, "Vixen", "old wish")

	err := s.UpdateWishes(ctx, p.ID, []models.Wish{
		{Description: "Scarf", Link: "https://example.com/scarf"},
		{Description: "Gloves"},
	}, "size M")
	if err != nil {
		t.Fatalf("UpdateWishes() error = %v", err)
	}

	got, _ := s.ParticipantByID(ctx, p.ID)
	if got.Comments != "size M" {
		t.Errorf("Comments = %q", got.Comments)
	}
	if len(got.Wishes) != 2 || got.Wishes[0].Link != "https://example.com/scarf" {
		t.Errorf("unexpected wishes: %+v", got.Wishes)
	}

	if err := s.UpdateWishes(ctx, "missing", nil, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateWishes_Locked(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	p := addParticipant(t, s, 1, "Cupid", "Arrows")

	locked, err := s.WishesLocked(ctx)
	if err != nil || locked {
		t.Fatalf("WishesLocked() = %v, %v, want false", locked, err)
	}

	if err := s.SetWishesLocked(ctx, true); err != nil {
		t.Fatalf("SetWishesLocked() error = %v", err)
	}
	if locked, _ := s.WishesLocked(ctx); !locked {
		t.Fatal("expected wishes to be locked")
	}

	err = s.UpdateWishes(ctx, p.ID, []models.Wish{{Description: "Bow"}}, "")
	if !errors.Is(err, ErrWishesLocked) {
		t.Fatalf("expected ErrWishesLocked, got %v", err)
	}

	got, _ := s.ParticipantByID(ctx, p.ID)
	if len(got.Wishes) != 1 || got.Wishes[0].Description != "Arrows" {
		t.Errorf("locked update changed wishes: %+v", got.Wishes)
	}

	if err := s.SetWishesLocked(ctx, false); err != nil {
		t.Fatalf("SetWishesLocked(false) error = %v", err)
	}
	if err := s.UpdateWishes(ctx, p.ID, []models.Wish{{Description: "Bow"}}, ""); err != nil {
		t.Errorf("UpdateWishes() after unlock error = %v", err)
	}
}

func TestReplaceAssignments(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	a := addParticipant(t, s, 1, "Blitzen")
	b := addParticipant(t, s, 2, "Donner", "Thunder")
	c := addParticipant(t, s, 3, "Prancer")

	first := []draw.Pair[string]{{Giver: a.ID, Recipient: b.ID}, {Giver: b.ID, Recipient: c.ID}, {Giver: c.ID, Recipient: a.ID}}
	if err := s.ReplaceAssignments(ctx, testDraw("d1", 3), first); err != nil {
		t.Fatalf("ReplaceAssignments() error = %v", err)
	}

	second := []draw.Pair[string]{{Giver: a.ID, Recipient: c.ID}, {Giver: c.ID, Recipient: b.ID}, {Giver: b.ID, Recipient: a.ID}}
	if err := s.ReplaceAssignments(ctx, testDraw("d2", 3), second); err != nil {
		t.Fatalf("ReplaceAssignments() second error = %v", err)
	}

	got, err := s.Assignments(ctx)
	if err != nil {
		t.Fatalf("Assignments() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected only the second draw's 3 pairs, got %v", got)
	}
	for _, p := range second {
		if got[p.Giver] != p.Recipient {
			t.Errorf("giver %s -> %s, want %s", p.Giver, got[p.Giver], p.Recipient)
		}
	}

	recipient, err := s.RecipientOf(ctx, a.ID)
	if err != nil {
		t.Fatalf("RecipientOf() error = %v", err)
	}
	if recipient.ID != c.ID {
		t.Errorf("RecipientOf(%s) = %s, want %s", a.ID, recipient.ID, c.ID)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalParticipants != 3 || stats.TotalAssignments != 3 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.LastDraw == nil || stats.LastDraw.ID != "d2" {
		t.Errorf("LastDraw = %+v, want d2", stats.LastDraw)
	}
}

func TestReplaceAssignments_RollbackKeepsPreviousSet(t *testing.T) {
	tests := []struct {
		name  string
		pairs func(a, b, c string) []draw.Pair[string]
	}{
		{
			name: "unknown participant",
			pairs: func(a, b, c string) []draw.Pair[string] {
				return []draw.Pair[string]{{Giver: a, Recipient: "ghost"}, {Giver: "ghost", Recipient: a}}
			},
		},
		{
			name: "self assignment",
			pairs: func(a, b, c string) []draw.Pair[string] {
				return []draw.Pair[string]{{Giver: a, Recipient: b}, {Giver: c, Recipient: c}}
			},
		},
		{
			name: "recipient twice",
			pairs: func(a, b, c string) []draw.Pair[string] {
				return []draw.Pair[string]{{Giver: a, Recipient: b}, {Giver: c, Recipient: b}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := setupTestStore(t)
			ctx := context.Background()
			a := addParticipant(t, s, 1, "Blitzen")
			b := addParticipant(t, s, 2, "Donner")
			c := addParticipant(t, s, 3, "Prancer")

			valid := []draw.Pair[string]{{Giver: a.ID, Recipient: b.ID}, {Giver: b.ID, Recipient: c.ID}, {Giver: c.ID, Recipient: a.ID}}
			if err := s.ReplaceAssignments(ctx, testDraw("d1", 3), valid); err != nil {
				t.Fatalf("ReplaceAssignments() error = %v", err)
			}

			if err := s.ReplaceAssignments(ctx, testDraw("d2", 3), tt.pairs(a.ID, b.ID, c.ID)); err == nil {
				t.Fatal("expected the replacement to fail")
			}

			got, err := s.Assignments(ctx)
			if err != nil {
				t.Fatalf("Assignments() error = %v", err)
			}
			if len(got) != 3 || got[a.ID] != b.ID || got[b.ID] != c.ID || got[c.ID] != a.ID {
				t.Errorf("previous set not preserved: %v", got)
			}

			stats, _ := s.Stats(ctx)
			if stats.LastDraw == nil || stats.LastDraw.ID != "d1" {
				t.Errorf("LastDraw = %+v, want d1", stats.LastDraw)
			}
		})
	}
}

func TestReplaceAssignments_Empty(t *testing.T) {
	s, _ := setupTestStore(t)

	err := s.ReplaceAssignments(context.Background(), testDraw("d1", 0), nil)
	if !errors.Is(err, ErrEmptyAssignment) {
		t.Errorf("expected ErrEmptyAssignment, got %v", err)
	}
}

func TestRecipientOf_NoAssignment(t *testing.T) {
	s, _ := setupTestStore(t)
	p := addParticipant(t, s, 1, "Olive")

	if _, err := s.RecipientOf(context.Background(), p.ID); !errors.Is(err, ErrNoAssignment) {
		t.Errorf("expected ErrNoAssignment, got %v", err)
	}
}

func TestStats_Empty(t *testing.T) {
	s, _ := setupTestStore(t)

	stats, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalParticipants != 0 || stats.TotalAssignments != 0 || stats.LastDraw != nil || stats.WishesLocked {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestLettersAndRows(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	a := addParticipant(t, s, 1, "Alpha", "Book")
	b := addParticipant(t, s, 2, "Bravo", "Tea", "Socks")

	if err := s.UpdateWishes(ctx, b.ID, []models.Wish{{Description: "Tea"}, {Description: "Socks"}}, "no glitter"); err != nil {
		t.Fatal(err)
	}

	pairs := []draw.Pair[string]{{Giver: a.ID, Recipient: b.ID}, {Giver: b.ID, Recipient: a.ID}}
	if err := s.ReplaceAssignments(ctx, testDraw("d1", 2), pairs); err != nil {
		t.Fatal(err)
	}

	letters, err := s.Letters(ctx)
	if err != nil {
		t.Fatalf("Letters() error = %v", err)
	}
	if len(letters) != 2 {
		t.Fatalf("expected 2 letters, got %d", len(letters))
	}

	alpha := letters[0]
	if alpha.GiverID != a.ID || alpha.GiverEmail != a.Email || alpha.RecipientCharacter != "Bravo" {
		t.Errorf("unexpected letter: %+v", alpha)
	}
	if alpha.RecipientComments != "no glitter" || len(alpha.Wishes) != 2 || alpha.Wishes[1].Description != "Socks" {
		t.Errorf("letter should carry the recipient's wishes: %+v", alpha)
	}

	rows, err := s.AssignmentRows(ctx)
	if err != nil {
		t.Fatalf("AssignmentRows() error = %v", err)
	}
	if len(rows) != 2 || rows[0].GiverCharacter != "Alpha" || rows[0].RecipientCharacter != "Bravo" || rows[0].DrawID != "d1" {
		t.Errorf("unexpected rows: %+v", rows)
	}
}
