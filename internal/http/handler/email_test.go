package handler

import (
	"net/http"
	"testing"

	"ayyam/internal/auth"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func newEmailRouter(h *EmailHandler) http.Handler {
	r := chi.NewRouter()
	r.With(auth.RequireAuth(testJWT)).Post("/api/send-email", h.Send)
	return r
}

func TestSendEmailValidation(t *testing.T) {
	h := &EmailHandler{Configured: true, Log: testLogger}
	r := newEmailRouter(h)

	tests := []struct {
		name string
		body map[string]string
		want int
	}{
		{"missing to", map[string]string{"subject": "s", "html": "<p>x</p>"}, http.StatusBadRequest},
		{"missing subject", map[string]string{"to": "a@b.com", "html": "<p>x</p>"}, http.StatusBadRequest},
		{"missing html", map[string]string{"to": "a@b.com", "subject": "s"}, http.StatusBadRequest},
		{"malformed address", map[string]string{"to": "not-an-email", "subject": "s", "html": "x"}, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, r, http.MethodPost, "/api/send-email", 1, tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestSendEmailUnconfigured(t *testing.T) {
	h := &EmailHandler{Configured: false, Log: testLogger}
	r := newEmailRouter(h)

	rec := doJSON(t, r, http.MethodPost, "/api/send-email", 1, map[string]string{
		"to": "a@b.com", "subject": "s", "html": "x",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
