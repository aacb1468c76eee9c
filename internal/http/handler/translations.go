package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"ayyam/internal/i18n"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TranslationHandler struct {
	DB  *gorm.DB
	Log *slog.Logger
}

// List is public: every client hydrates its i18n layer from here.
func (h *TranslationHandler) List(w http.ResponseWriter, r *http.Request) {
	var rows []i18n.Translation
	err := h.DB.WithContext(r.Context()).
		Order("namespace, key").
		Find(&rows).Error
	if err != nil {
		h.Log.Error("list translations failed", "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// Dictionary returns the nested key/value map for one language. Clients call
// it again to refresh; the server keeps no dictionary state.
func (h *TranslationHandler) Dictionary(w http.ResponseWriter, r *http.Request) {
	lang, ok := i18n.ParseLanguage(strings.TrimSpace(r.URL.Query().Get("lang")))
	if !ok {
		writeError(w, http.StatusBadRequest, "lang must be ar or en")
		return
	}

	// Ordered by key so a flat key always precedes its dotted children and
	// the built dictionary is the same on every request.
	var rows []i18n.Translation
	if err := h.DB.WithContext(r.Context()).Order("key").Find(&rows).Error; err != nil {
		h.Log.Error("load translations failed", "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, i18n.BuildDictionary(rows, lang))
}

type translationReq struct {
	Key         *string `json:"key"`
	Namespace   *string `json:"namespace"`
	ArabicText  *string `json:"arabic_text"`
	EnglishText *string `json:"english_text"`
	Description *string `json:"description"`
}

func (h *TranslationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req translationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Key == nil || strings.TrimSpace(*req.Key) == "" ||
		req.ArabicText == nil || *req.ArabicText == "" ||
		req.EnglishText == nil || *req.EnglishText == "" {
		writeError(w, http.StatusBadRequest, "key, arabic text and english text are required")
		return
	}

	tr := i18n.Translation{
		ID:          uuid.New(),
		Key:         strings.TrimSpace(*req.Key),
		Namespace:   "common",
		ArabicText:  *req.ArabicText,
		EnglishText: *req.EnglishText,
		Description: req.Description,
	}
	if req.Namespace != nil && strings.TrimSpace(*req.Namespace) != "" {
		tr.Namespace = strings.TrimSpace(*req.Namespace)
	}

	if err := h.DB.WithContext(r.Context()).Create(&tr).Error; err != nil {
		writeError(w, http.StatusConflict, "translation key already exists")
		return
	}

	writeJSON(w, http.StatusCreated, tr)
}

func (h *TranslationHandler) Update(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req translationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	changes := map[string]any{"updated_at": time.Now()}
	if req.Namespace != nil {
		changes["namespace"] = *req.Namespace
	}
	if req.ArabicText != nil {
		changes["arabic_text"] = *req.ArabicText
	}
	if req.EnglishText != nil {
		changes["english_text"] = *req.EnglishText
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}

	res := h.DB.WithContext(r.Context()).Model(&i18n.Translation{}).
		Where("key = ?", key).
		Updates(changes)
	if res.Error != nil {
		h.Log.Error("update translation failed", "key", key, "err", res.Error)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if res.RowsAffected == 0 {
		writeError(w, http.StatusNotFound, "translation not found")
		return
	}

	var tr i18n.Translation
	if err := h.DB.WithContext(r.Context()).Where("key = ?", key).First(&tr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "translation not found")
			return
		}
		h.Log.Error("reload translation failed", "key", key, "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, tr)
}

func (h *TranslationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	res := h.DB.WithContext(r.Context()).Where("key = ?", key).Delete(&i18n.Translation{})
	if res.Error != nil {
		h.Log.Error("delete translation failed", "key", key, "err", res.Error)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if res.RowsAffected == 0 {
		writeError(w, http.StatusNotFound, "translation not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
