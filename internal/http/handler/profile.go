package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"ayyam/internal/auth"
	"ayyam/internal/profile"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileHandler struct {
	DB  *gorm.DB
	Log *slog.Logger
}

type profileReq struct {
	Username    *string `json:"username"`
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatar_url"`
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var p profile.Profile
	err := h.DB.WithContext(r.Context()).Where("user_id = ?", uid).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		h.Log.Error("get profile failed", "user_id", uid, "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req profileReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	p := profile.Profile{
		ID:          uuid.New(),
		UserID:      uid,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
	}
	if err := h.DB.WithContext(r.Context()).Create(&p).Error; err != nil {
		// user_id and username are unique; a second insert is a conflict
		writeError(w, http.StatusConflict, "profile already exists")
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req profileReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	changes := map[string]any{"updated_at": time.Now()}
	if req.Username != nil {
		changes["username"] = *req.Username
	}
	if req.DisplayName != nil {
		changes["display_name"] = *req.DisplayName
	}
	if req.Bio != nil {
		changes["bio"] = *req.Bio
	}
	if req.AvatarURL != nil {
		changes["avatar_url"] = *req.AvatarURL
	}

	res := h.DB.WithContext(r.Context()).Model(&profile.Profile{}).
		Where("user_id = ?", uid).
		Updates(changes)
	if res.Error != nil {
		h.Log.Error("update profile failed", "user_id", uid, "err", res.Error)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if res.RowsAffected == 0 {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}

	var p profile.Profile
	if err := h.DB.WithContext(r.Context()).Where("user_id = ?", uid).First(&p).Error; err != nil {
		h.Log.Error("reload profile failed", "user_id", uid, "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, p)
}
