package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// GeminiClient is a minimal client for the Google Generative Language API
type GeminiClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGeminiClient creates a Gemini client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGeminiClient(cfg *config.GeminiConfig) *GeminiClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("GEMINI_API_URL")
		if base == "" {
			base = "https://generativelanguage.googleapis.com"
		}
	}

	model := "gemini-2.0-flash"
	if cfg != nil && cfg.Model != "" {
		model = cfg.Model
	}

	return &GeminiClient{
		apiKey:  apiKey,
		baseURL: base,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// GenerateRequest is the shape for generateContent requests
type GenerateRequest struct {
	Contents []Content `json:"contents"`
}

// Content is a single prompt turn
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is a text fragment of a turn
type Part struct {
	Text string `json:"text"`
}

// GenerateResponse is a minimal response shape
type GenerateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []Part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateContent sends the prompt to Gemini and returns the reply text.
// The reply is free text; structure recovery is the caller's concern.
func (g *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	reqBody := GenerateRequest{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var gr GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", err
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}
