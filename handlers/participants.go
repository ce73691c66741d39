// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/secret-santa/auth"
	"github.com/danielhkuo/secret-santa/cliparse"
	"github.com/danielhkuo/secret-santa/middleware"
	"github.com/danielhkuo/secret-santa/models"
	"github.com/danielhkuo/secret-santa/store"
)

type ParticipantHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewParticipantHandler(st *store.Store, cfg cliparse.Config) *ParticipantHandler {
	return &ParticipantHandler{store: st, cfg: cfg}
}

// Register handles POST /participants
func (h *ParticipantHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.CharacterName = strings.TrimSpace(req.CharacterName)
	switch {
	case req.CharacterName == "":
		middleware.ErrorResponse(w, http.StatusBadRequest, "character_name is required")
		return
	case strings.TrimSpace(req.FirstName) == "":
		middleware.ErrorResponse(w, http.StatusBadRequest, "first_name is required")
		return
	case strings.TrimSpace(req.LastName) == "":
		middleware.ErrorResponse(w, http.StatusBadRequest, "last_name is required")
		return
	case strings.TrimSpace(req.Email) == "":
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	wishes, msg := toWishes(req.Wishes)
	if msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	participantID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate participant ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	token, err := auth.GenerateParticipantToken()
	if err != nil {
		slog.Error("failed to generate participant token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	p := &models.Participant{
		ID:            participantID,
		CharacterName: req.CharacterName,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         strings.TrimSpace(req.Email),
		Token:         token,
		Comments:      req.Comments,
		Wishes:        wishes,
		CreatedAt:     time.Now().UTC(),
	}

	err = h.store.CreateParticipant(r.Context(), p)
	if errors.Is(err, store.ErrCharacterTaken) {
		middleware.ErrorResponse(w, http.StatusConflict, "Character name already taken")
		return
	}
	if err != nil {
		slog.Error("failed to create participant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("participant registered", "participant_id", participantID, "character", p.CharacterName)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		ParticipantID:    participantID,
		ParticipantToken: token,
	})
}

// GetMe handles GET /me
func (h *ParticipantHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	p, ok := h.currentParticipant(w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, p)
}

// UpdateWishes handles PUT /me/wishes
func (h *ParticipantHandler) UpdateWishes(w http.ResponseWriter, r *http.Request) {
	p, ok := h.currentParticipant(w, r)
	if !ok {
		return
	}

	var req models.UpdateWishesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	wishes, msg := toWishes(req.Wishes)
	if msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	err := h.store.UpdateWishes(r.Context(), p.ID, wishes, req.Comments)
	switch {
	case errors.Is(err, store.ErrWishesLocked):
		middleware.ErrorResponse(w, http.StatusLocked, "Wishes are locked")
		return
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Participant not found")
		return
	case err != nil:
		slog.Error("failed to update wishes", "participant_id", p.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update wishes")
		return
	}

	updated, err := h.store.ParticipantByID(r.Context(), p.ID)
	if err != nil {
		slog.Error("failed to reload participant", "participant_id", p.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, updated)
}

// GetSecretFriend handles GET /me/secret-friend
func (h *ParticipantHandler) GetSecretFriend(w http.ResponseWriter, r *http.Request) {
	p, ok := h.currentParticipant(w, r)
	if !ok {
		return
	}

	recipient, err := h.store.RecipientOf(r.Context(), p.ID)
	if errors.Is(err, store.ErrNoAssignment) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No secret friend assigned yet")
		return
	}
	if err != nil {
		slog.Error("failed to query secret friend", "participant_id", p.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SecretFriendResponse{
		CharacterName: recipient.CharacterName,
		Wishes:        recipient.Wishes,
		Comments:      recipient.Comments,
	})
}

// currentParticipant resolves X-Participant-Token and writes the error
// response itself when it can't.
func (h *ParticipantHandler) currentParticipant(w http.ResponseWriter, r *http.Request) (*models.Participant, bool) {
	token := r.Header.Get("X-Participant-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Participant-Token header required")
		return nil, false
	}

	p, err := h.store.ParticipantByToken(r.Context(), token)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid participant token")
		return nil, false
	}
	if err != nil {
		slog.Error("failed to look up participant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, false
	}

	return p, true
}

// toWishes validates wish input and returns a client message on failure.
func toWishes(in []models.WishInput) ([]models.Wish, string) {
	if len(in) > models.MaxWishes {
		return nil, "at most 3 wishes are allowed"
	}

	wishes := make([]models.Wish, 0, len(in))
	for i, wi := range in {
		desc := strings.TrimSpace(wi.Description)
		if desc == "" {
			return nil, "wish description is required"
		}
		wishes = append(wishes, models.Wish{
			Slot:        i + 1,
			Description: desc,
			Link:        strings.TrimSpace(wi.Link),
		})
	}
	return wishes, ""
}
