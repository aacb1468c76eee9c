package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"ayyam/internal/auth"
	"ayyam/internal/role"
)

type RoleHandler struct {
	Roles *role.Service
	Log   *slog.Logger
}

// Current returns the caller's role, or null when none is assigned.
func (h *RoleHandler) Current(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	ur, err := h.Roles.Get(r.Context(), uid)
	if err != nil {
		h.Log.Error("get role failed", "user_id", uid, "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, ur)
}

type roleCheckReq struct {
	Role string `json:"role"`
}

func (h *RoleHandler) Check(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req roleCheckReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if !role.Role(req.Role).Valid() {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}

	has, err := h.Roles.HasRole(r.Context(), uid, req.Role)
	if err != nil {
		h.Log.Error("role check failed", "user_id", uid, "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"hasRole": has})
}
