package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	MaxPromptLen   = 1000
)

// APIError is a sanitized upstream failure. Status mirrors the OpenAI HTTP
// status so the route layer can pass it through.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openai: %s (status %d)", e.Message, e.Status)
}

var ErrPromptTooLong = errors.New("prompt too long")

// ImageClient calls the OpenAI image generation endpoint.
type ImageClient struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

func NewImageClient(apiKey string) *ImageClient {
	return &ImageClient{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

type generateRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
}

type generateResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Generate requests one 1024x1024 image for the prompt and returns its URL.
// Upstream failures come back as *APIError with a user-readable message.
func (c *ImageClient) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", errors.New("prompt required")
	}
	// Counted in runes so Arabic prompts get the same allowance as Latin ones.
	if utf8.RuneCountInString(prompt) > MaxPromptLen {
		return "", ErrPromptTooLong
	}

	body, err := json.Marshal(generateRequest{
		Model:   "dall-e-3",
		Prompt:  prompt,
		N:       1,
		Size:    "1024x1024",
		Quality: "standard",
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", &APIError{Status: http.StatusBadGateway, Message: "Failed to generate image"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Status: resp.StatusCode, Message: upstreamMessage(resp.StatusCode)}
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &APIError{Status: http.StatusBadGateway, Message: "Failed to generate image"}
	}
	if len(out.Data) == 0 || out.Data[0].URL == "" {
		return "", &APIError{Status: http.StatusBadGateway, Message: "Failed to generate image"}
	}
	return out.Data[0].URL, nil
}

func upstreamMessage(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "Invalid OpenAI API key"
	case http.StatusTooManyRequests:
		return "OpenAI API quota exceeded"
	case http.StatusBadRequest:
		return "Invalid request to OpenAI API"
	}
	return "Failed to generate image"
}
