package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ayyam/internal/auth"
	"ayyam/internal/media"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenLogs struct {
	allow   bool
	records []string // "<status>:<prompt>"
}

func (f *fakeGenLogs) AllowGeneration(context.Context, uint64, time.Time) (bool, error) {
	return f.allow, nil
}

func (f *fakeGenLogs) Record(_ context.Context, _ uint64, prompt, status string, _ *string) error {
	f.records = append(f.records, status+":"+prompt)
	return nil
}

func newMediaRouter(h *MediaHandler) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(testJWT))
		r.Post("/api/generate-image", h.GenerateImage)
		r.Post("/api/upload-image", h.UploadImage)
	})
	return r
}

func newOpenAIStub(t *testing.T, status int, url string) *media.ImageClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"url": url}},
		})
	}))
	t.Cleanup(srv.Close)

	c := media.NewImageClient("key")
	c.BaseURL = srv.URL
	return c
}

func TestGenerateImageSuccess(t *testing.T) {
	logs := &fakeGenLogs{allow: true}
	h := &MediaHandler{
		Images: newOpenAIStub(t, http.StatusOK, "https://img.example/out.png"),
		Logs:   logs,
		Log:    testLogger,
	}
	r := newMediaRouter(h)

	rec := doJSON(t, r, http.MethodPost, "/api/generate-image", 1, map[string]string{"prompt": "minarets at dusk"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"success":true,"imageUrl":"https://img.example/out.png"}`, rec.Body.String())
	assert.Equal(t, []string{"success:minarets at dusk"}, logs.records)
}

// A 600-character Arabic prompt is well within the 1000-character limit even
// though it is 1200 bytes; the handler must not reject it.
func TestGenerateImageArabicPromptWithinLimit(t *testing.T) {
	logs := &fakeGenLogs{allow: true}
	h := &MediaHandler{
		Images: newOpenAIStub(t, http.StatusOK, "https://img.example/out.png"),
		Logs:   logs,
		Log:    testLogger,
	}
	r := newMediaRouter(h)

	prompt := strings.Repeat("ع", 600)
	rec := doJSON(t, r, http.MethodPost, "/api/generate-image", 1, map[string]string{"prompt": prompt})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"success:" + prompt}, logs.records)

	rec = doJSON(t, r, http.MethodPost, "/api/generate-image", 1, map[string]string{"prompt": strings.Repeat("ع", 1001)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateImageRateLimited(t *testing.T) {
	h := &MediaHandler{
		Images: newOpenAIStub(t, http.StatusOK, "unused"),
		Logs:   &fakeGenLogs{allow: false},
		Log:    testLogger,
	}
	r := newMediaRouter(h)

	rec := doJSON(t, r, http.MethodPost, "/api/generate-image", 1, map[string]string{"prompt": "p"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestGenerateImageUpstreamStatusPassthrough(t *testing.T) {
	tests := []struct {
		upstream int
		message  string
	}{
		{http.StatusUnauthorized, "Invalid OpenAI API key"},
		{http.StatusTooManyRequests, "OpenAI API quota exceeded"},
		{http.StatusBadRequest, "Invalid request to OpenAI API"},
	}

	for _, tc := range tests {
		logs := &fakeGenLogs{allow: true}
		h := &MediaHandler{Images: newOpenAIStub(t, tc.upstream, ""), Logs: logs, Log: testLogger}
		r := newMediaRouter(h)

		rec := doJSON(t, r, http.MethodPost, "/api/generate-image", 1, map[string]string{"prompt": "p"})
		assert.Equal(t, tc.upstream, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tc.message, body["error"])
		// Failures are recorded too.
		require.Len(t, logs.records, 1)
		assert.Equal(t, "failed:p", logs.records[0])
	}
}

func TestGenerateImageNotConfigured(t *testing.T) {
	h := &MediaHandler{Images: nil, Logs: &fakeGenLogs{allow: true}, Log: testLogger}
	r := newMediaRouter(h)

	rec := doJSON(t, r, http.MethodPost, "/api/generate-image", 1, map[string]string{"prompt": "p"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUploadImage(t *testing.T) {
	h := &MediaHandler{Logs: &fakeGenLogs{}, Log: testLogger}
	r := newMediaRouter(h)

	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "bg.png")
	require.NoError(t, err)
	_, err = fw.Write(png)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	token, err := testJWT.Sign(1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/upload-image", &buf)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["dataUrl"], "data:image/png;base64,")
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	h := &MediaHandler{Logs: &fakeGenLogs{}, Log: testLogger}
	r := newMediaRouter(h)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "notes.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("just some text, clearly not pixels"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	token, err := testJWT.Sign(1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/upload-image", &buf)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
