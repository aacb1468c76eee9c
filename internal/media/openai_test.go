package media

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *ImageClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewImageClient("test-key")
	c.BaseURL = srv.URL
	return c
}

func TestGenerateSuccess(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/generations", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "dall-e-3", req["model"])
		assert.Equal(t, "1024x1024", req["size"])
		assert.Equal(t, float64(1), req["n"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"url": "https://img.example/1.png"}},
		})
	})

	url, err := c.Generate(context.Background(), "a crescent moon over a city")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/1.png", url)
}

func TestGenerateStatusMapping(t *testing.T) {
	tests := []struct {
		upstream int
		message  string
	}{
		{http.StatusUnauthorized, "Invalid OpenAI API key"},
		{http.StatusTooManyRequests, "OpenAI API quota exceeded"},
		{http.StatusBadRequest, "Invalid request to OpenAI API"},
		{http.StatusInternalServerError, "Failed to generate image"},
	}

	for _, tc := range tests {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.upstream)
		})

		_, err := c.Generate(context.Background(), "prompt")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr, "status %d", tc.upstream)
		assert.Equal(t, tc.upstream, apiErr.Status)
		assert.Equal(t, tc.message, apiErr.Message)
	}
}

func TestGenerateValidatesPrompt(t *testing.T) {
	c := NewImageClient("key")

	_, err := c.Generate(context.Background(), "")
	assert.Error(t, err)

	_, err = c.Generate(context.Background(), strings.Repeat("x", MaxPromptLen+1))
	assert.ErrorIs(t, err, ErrPromptTooLong)
}

// The prompt limit counts characters, not bytes. An Arabic prompt well under
// 1000 runes is several thousand bytes and must still go through.
func TestGeneratePromptLimitCountsRunes(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"url": "https://img.example/ar.png"}},
		})
	})

	url, err := c.Generate(context.Background(), strings.Repeat("ع", 600))
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/ar.png", url)

	url, err = c.Generate(context.Background(), strings.Repeat("ع", MaxPromptLen))
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/ar.png", url)

	_, err = c.Generate(context.Background(), strings.Repeat("ع", MaxPromptLen+1))
	assert.ErrorIs(t, err, ErrPromptTooLong)
}

func TestGenerateEmptyData(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	})

	_, err := c.Generate(context.Background(), "prompt")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}
