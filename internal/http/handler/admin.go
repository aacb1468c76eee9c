package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"ayyam/internal/auth"
	"ayyam/internal/role"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type AdminHandler struct {
	DB    *gorm.DB
	Roles *role.Service
	Log   *slog.Logger
}

type adminUserDTO struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	Role      *string   `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var out []adminUserDTO
	err := h.DB.WithContext(r.Context()).Raw(`
		select u.id, u.email, ur.role, u.created_at
		from users u
		left join user_roles ur on ur.user_id = u.id
		order by u.created_at desc
	`).Scan(&out).Error
	if err != nil {
		h.Log.Error("list users failed", "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if out == nil {
		out = []adminUserDTO{}
	}

	writeJSON(w, http.StatusOK, out)
}

type assignRoleReq struct {
	Role string `json:"role"`
}

// AssignRole replaces a user's role, or clears it when the role is empty.
func (h *AdminHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	targetID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var u auth.User
	if err := h.DB.WithContext(r.Context()).Where("id = ?", targetID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("load user failed", "user_id", targetID, "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	var req assignRoleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	if req.Role == "" {
		if err := h.Roles.Clear(r.Context(), targetID); err != nil {
			h.Log.Error("clear role failed", "user_id", targetID, "err", err)
			writeError(w, http.StatusInternalServerError, "server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
		return
	}

	ur, err := h.Roles.Assign(r.Context(), targetID, role.Role(req.Role))
	if err != nil {
		if errors.Is(err, role.ErrInvalidRole) {
			writeError(w, http.StatusBadRequest, "invalid role")
			return
		}
		h.Log.Error("assign role failed", "user_id", targetID, "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, ur)
}
