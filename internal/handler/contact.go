package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aria-creative/vitrine/internal/mailer"
	"github.com/aria-creative/vitrine/internal/model"
	"github.com/aria-creative/vitrine/internal/store"
)

// ContactHandler covers the public contact form and the admin triage
// endpoints.
type ContactHandler struct {
	store  *store.Store
	mailer mailer.Mailer
	logger *slog.Logger
	dev    bool
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(st *store.Store, m mailer.Mailer, logger *slog.Logger, dev bool) *ContactHandler {
	return &ContactHandler{store: st, mailer: m, logger: logger, dev: dev}
}

// Submit accepts a visitor message. The message is persisted first; the two
// notification emails go out afterwards in the background and are never
// allowed to fail the request.
// POST /api/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.ContactRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}

	if errs := req.Validate(); errs != nil {
		writeValidationError(w, errs)
		return
	}

	msg := &model.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   req.Email,
		Company: strings.TrimSpace(req.Company),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}

	if err := h.store.CreateMessage(r.Context(), msg); err != nil {
		writeInternal(w, h.logger, h.dev, "create message", err)
		return
	}

	h.logger.Info("contact message received", "message_id", msg.ID, "email", msg.Email, "subject", msg.Subject)

	// Fire-and-forget: persistence is the source of truth, email is
	// best-effort. Detached context so the client disconnecting doesn't
	// cancel the send.
	go func(msg *model.ContactMessage) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := h.mailer.NotifyContact(ctx, msg); err != nil {
			h.logger.Error("contact notification dispatch failed", "message_id", msg.ID, "error", err)
		}
	}(msg)

	writeSuccess(w, http.StatusOK,
		"Message envoyé avec succès ! Nous vous recontacterons bientôt.",
		map[string]string{"id": msg.ID})
}

// List returns a newest-first page of messages, optionally filtered by
// triage status.
// GET /api/contact/admin?status=&page=&limit=
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	status := model.MessageStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, "Statut invalide")
		return
	}

	page := queryInt(r, "page", 1)
	limit := clampInt(queryInt(r, "limit", 10), 1, 100)

	messages, total, err := h.store.ListMessages(r.Context(), status, page, limit)
	if err != nil {
		writeInternal(w, h.logger, h.dev, "list messages", err)
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	writeSuccess(w, http.StatusOK, "", model.MessagePage{
		Messages: messages,
		Pagination: model.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// Get returns one message.
// GET /api/contact/admin/{id}
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	msg, err := h.store.GetMessage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Message non trouvé")
			return
		}
		writeInternal(w, h.logger, h.dev, "get message", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", msg)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// SetStatus moves a message to another triage status. Any enumerated status
// may follow any other; there is no ordering constraint.
// PUT /api/contact/admin/{id}/status
func (h *ContactHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusUpdateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}

	status := model.MessageStatus(req.Status)
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "Statut invalide")
		return
	}

	msg, err := h.store.SetMessageStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Message non trouvé")
			return
		}
		writeInternal(w, h.logger, h.dev, "update message status", err)
		return
	}

	h.logger.Info("message status updated", "message_id", msg.ID, "status", status)
	writeSuccess(w, http.StatusOK, "Statut mis à jour avec succès", msg)
}

// Delete removes a message permanently.
// DELETE /api/contact/admin/{id}
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteMessage(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Message non trouvé")
			return
		}
		writeInternal(w, h.logger, h.dev, "delete message", err)
		return
	}

	h.logger.Info("message deleted", "message_id", id)
	writeSuccess(w, http.StatusOK, "Message supprimé avec succès", nil)
}

// Stats returns the total and per-status message counts.
// GET /api/contact/admin/stats
func (h *ContactHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.MessageStats(r.Context())
	if err != nil {
		writeInternal(w, h.logger, h.dev, "message stats", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", stats)
}

// MailTest verifies the SMTP configuration without sending anything.
// GET /api/contact/admin/mail-test
func (h *ContactHandler) MailTest(w http.ResponseWriter, r *http.Request) {
	if err := h.mailer.Verify(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Erreur de configuration email", err.Error())
		return
	}
	writeSuccess(w, http.StatusOK, "Configuration email OK", nil)
}
