// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/product-autogpt/internal/httputil"
)

// anthropicAPIURL is the Messages API endpoint. Package-level var for test
// substitution; AnthropicBackend.BaseURL overrides it per backend.
var anthropicAPIURL = "https://api.anthropic.com/v1/messages"

const anthropicVersion = "2023-06-01"

// AnthropicBackend calls the Anthropic Messages API with a single user turn.
type AnthropicBackend struct {
	APIKey    string
	Model     string
	MaxTokens int
	BaseURL   string
	Client    *http.Client
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Complete sends prompt as one user message and returns the concatenated
// text blocks of the reply.
func (b *AnthropicBackend) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	maxTokens := b.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	bodyBytes, err := json.Marshal(anthropicRequest{
		Model:       b.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages:    []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := anthropicAPIURL
	if b.BaseURL != "" {
		endpoint = strings.TrimRight(b.BaseURL, "/") + "/v1/messages"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", b.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := httputil.Do(ctx, b.Client, req)
	if err != nil {
		return "", fmt.Errorf("calling Anthropic API: %w", err)
	}
	defer resp.Body.Close()

	var aResp anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&aResp); err != nil {
		return "", fmt.Errorf("decoding Anthropic response: %w", err)
	}

	var sb strings.Builder
	found := false
	for _, block := range aResp.Content {
		if block.Type != "text" {
			continue
		}
		found = true
		sb.WriteString(block.Text)
	}
	if !found {
		return "", fmt.Errorf("no text content in Anthropic response")
	}
	return strings.TrimSpace(sb.String()), nil
}
