package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"ayyam/internal/auth"
	"ayyam/internal/media"
)

// GenerationLogStore records generation attempts and answers the hourly
// rate-limit question.
type GenerationLogStore interface {
	AllowGeneration(ctx context.Context, userID uint64, now time.Time) (bool, error)
	Record(ctx context.Context, userID uint64, prompt, status string, errMsg *string) error
}

type MediaHandler struct {
	Images *media.ImageClient // nil when no API key is configured
	Logs   GenerationLogStore
	Log    *slog.Logger
}

type generateImageReq struct {
	Prompt string `json:"prompt"`
}

func (h *MediaHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	if h.Images == nil {
		writeError(w, http.StatusInternalServerError, "OpenAI API key not configured")
		return
	}

	var req generateImageReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}
	if utf8.RuneCountInString(req.Prompt) > media.MaxPromptLen {
		writeError(w, http.StatusBadRequest, "prompt too long (max 1000 characters)")
		return
	}

	allowed, err := h.Logs.AllowGeneration(r.Context(), uid, time.Now())
	if err != nil {
		h.Log.Error("generation rate check failed", "user_id", uid, "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if !allowed {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded: maximum 5 image generations per hour")
		return
	}

	imageURL, err := h.Images.Generate(r.Context(), req.Prompt)
	if err != nil {
		msg := "Failed to generate image"
		status := http.StatusBadGateway
		var apiErr *media.APIError
		if errors.As(err, &apiErr) {
			msg = apiErr.Message
			status = apiErr.Status
		}
		h.Log.Warn("image generation failed", "user_id", uid, "status", status, "err", err)
		_ = h.Logs.Record(r.Context(), uid, req.Prompt, "failed", &msg)
		writeError(w, status, msg)
		return
	}

	if err := h.Logs.Record(r.Context(), uid, req.Prompt, "success", nil); err != nil {
		h.Log.Error("generation log write failed", "user_id", uid, "err", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"imageUrl": imageURL,
	})
}

// UploadImage converts a multipart image into a data URI the client can store
// on an event. Nothing is written to disk.
func (h *MediaHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, media.MaxUploadBytes+4096)

	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	dataURL, err := media.EncodeUpload(file)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrUploadTooLarge):
			writeError(w, http.StatusBadRequest, "image size must be less than 2MB")
		case errors.Is(err, media.ErrNotAnImage):
			writeError(w, http.StatusBadRequest, "file must be an image")
		default:
			writeError(w, http.StatusBadRequest, "could not read image")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"dataUrl": dataURL})
}
