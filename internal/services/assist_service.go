package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/notehq/note-api/internal/config"
)

// ErrAssistDisabled is returned when no AI endpoint is configured.
var ErrAssistDisabled = errors.New("assist is not configured")

// AssistClient relays editor prompts to an OpenAI-compatible
// chat-completions endpoint.
type AssistClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewAssistClient builds the relay client from configuration.
func NewAssistClient(cfg *config.Config) *AssistClient {
	return &AssistClient{
		baseURL: cfg.AIAPIURL,
		apiKey:  cfg.AIAPIKey,
		model:   cfg.AIModel,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Enabled reports whether an upstream endpoint is configured.
func (a *AssistClient) Enabled() bool {
	return a.baseURL != ""
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt upstream and returns the completion text.
func (a *AssistClient) Complete(ctx context.Context, prompt string) (string, error) {
	if !a.Enabled() {
		return "", ErrAssistDisabled
	}

	payload, err := json.Marshal(chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("assist: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("assist: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("assist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assist: upstream status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("assist: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("assist: empty completion")
	}

	return out.Choices[0].Message.Content, nil
}
