package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"ayyam/internal/auth"
	"ayyam/internal/jobs"
	"ayyam/internal/mailer"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmailHandler accepts an outbound email, persists it as a log row and
// enqueues dispatch for the worker. The route itself never talks SMTP.
type EmailHandler struct {
	DB         *gorm.DB
	Jobs       *jobs.Repo
	Configured bool
	Log        *slog.Logger
}

type sendEmailReq struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

func (h *EmailHandler) Send(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	if !h.Configured {
		writeError(w, http.StatusInternalServerError, "SMTP is not configured")
		return
	}

	var req sendEmailReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	req.To = strings.TrimSpace(req.To)
	if req.To == "" || req.Subject == "" || req.HTML == "" {
		writeError(w, http.StatusBadRequest, "missing required fields: to, subject, html")
		return
	}
	if !mailer.ValidAddress(req.To) {
		writeError(w, http.StatusBadRequest, "invalid email address")
		return
	}

	email := mailer.EmailLog{
		ID:             uuid.New(),
		UserID:         uid,
		RecipientEmail: req.To,
		Subject:        req.Subject,
		Body:           req.HTML,
		Status:         mailer.StatusQueued,
	}

	err := h.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&email).Error; err != nil {
			return err
		}
		return h.Jobs.EnqueueEmail(tx, uid, email.ID)
	})
	if err != nil {
		h.Log.Error("email enqueue failed", "user_id", uid, "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"queued": true,
		"id":     email.ID,
	})
}
