// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gocarina/gocsv"

	"github.com/danielhkuo/secret-santa/auth"
	"github.com/danielhkuo/secret-santa/cliparse"
	"github.com/danielhkuo/secret-santa/draw"
	"github.com/danielhkuo/secret-santa/middleware"
	"github.com/danielhkuo/secret-santa/models"
	"github.com/danielhkuo/secret-santa/notify"
	"github.com/danielhkuo/secret-santa/store"
)

type AdminHandler struct {
	store    *store.Store
	assigner *draw.Assigner
	notifier *notify.Notifier // nil when SMTP is not configured
	cfg      cliparse.Config
}

func NewAdminHandler(st *store.Store, assigner *draw.Assigner, notifier *notify.Notifier, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{store: st, assigner: assigner, notifier: notifier, cfg: cfg}
}

// authorize checks X-Admin-Key and writes a 401 when it doesn't match.
func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey)
	if errors.Is(err, auth.ErrAdminKeyDisabled) {
		slog.Warn("admin request refused, no admin key configured", "path", r.URL.Path)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Admin access is disabled")
		return false
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// GetStats handles GET /admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	stats, err := h.store.Stats(r.Context())
	if err != nil {
		slog.Error("failed to compute stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	stats.Topic = h.cfg.Topic
	stats.Year = h.cfg.Year

	middleware.JSONResponse(w, http.StatusOK, stats)
}

// RunDraw handles POST /admin/draw
func (h *AdminHandler) RunDraw(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	outcome, err := h.assigner.Run(r.Context())
	if err != nil {
		slog.Error("draw failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Draw failed; previous assignments are unchanged")
		return
	}

	if !outcome.Performed {
		middleware.JSONResponse(w, http.StatusConflict, models.DrawResponse{
			Performed:        false,
			ParticipantCount: outcome.ParticipantCount,
			Message:          "insufficient participants: at least 2 are required",
		})
		return
	}

	drawnAt := outcome.Draw.DrawnAt
	middleware.JSONResponse(w, http.StatusOK, models.DrawResponse{
		Performed:        true,
		DrawID:           outcome.Draw.ID,
		ParticipantCount: outcome.ParticipantCount,
		Attempts:         outcome.Draw.Attempts,
		DrawnAt:          &drawnAt,
		Message:          "assignments replaced",
	})
}

// LockWishes handles POST /admin/wishes/lock
func (h *AdminHandler) LockWishes(w http.ResponseWriter, r *http.Request) {
	h.setWishesLocked(w, r, true)
}

// UnlockWishes handles POST /admin/wishes/unlock
func (h *AdminHandler) UnlockWishes(w http.ResponseWriter, r *http.Request) {
	h.setWishesLocked(w, r, false)
}

func (h *AdminHandler) setWishesLocked(w http.ResponseWriter, r *http.Request, locked bool) {
	if !h.authorize(w, r) {
		return
	}

	if err := h.store.SetWishesLocked(r.Context(), locked); err != nil {
		slog.Error("failed to set wishes lock", "locked", locked, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("wishes lock changed", "locked", locked)
	middleware.JSONResponse(w, http.StatusOK, models.WishesLockResponse{WishesLocked: locked})
}

// ExportAssignments handles GET /admin/assignments.csv
func (h *AdminHandler) ExportAssignments(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	rows, err := h.store.AssignmentRows(r.Context())
	if err != nil {
		slog.Error("failed to load assignments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		slog.Error("failed to encode assignments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export assignments")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="assignments.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// NotifyAssignments handles POST /admin/notify
func (h *AdminHandler) NotifyAssignments(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	if h.notifier == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Email delivery is not configured")
		return
	}

	letters, err := h.store.Letters(r.Context())
	if err != nil {
		slog.Error("failed to load letters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if len(letters) == 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "No assignments to notify; run a draw first")
		return
	}

	sent, err := h.notifier.SendAll(r.Context(), letters)
	if err != nil {
		slog.Error("some letters were not delivered", "sent", sent, "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, models.NotifyResponse{
		Sent:   sent,
		Failed: len(letters) - sent,
	})
}
