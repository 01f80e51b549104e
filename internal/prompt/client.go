// Package prompt translates free-text descriptions into sanitized generation
// configurations using an external language model.
package prompt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Client is the interface for language model providers.
type Client interface {
	Complete(ctx context.Context, system string, messages []Message) (string, error)
}

const anthropicEndpoint = "https://api.anthropic.com/v1/messages"

// AnthropicClient calls the Anthropic messages API.
type AnthropicClient struct {
	key   string
	model string
	http  *http.Client
}

// NewAnthropicClient creates a client for the given API key and model name.
func NewAnthropicClient(key, model string) *AnthropicClient {
	return &AnthropicClient{
		key:   key,
		model: model,
		http:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *AnthropicClient) Complete(ctx context.Context, system string, messages []Message) (string, error) {
	body := map[string]any{
		"model":      c.model,
		"max_tokens": 2048,
		"system":     system,
		"messages":   messages,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicEndpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.key)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("LLM request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}
	if len(result.Content) == 0 {
		return "", fmt.Errorf("empty response")
	}
	return result.Content[0].Text, nil
}

// LocalClient calls an OpenAI-compatible local endpoint (e.g. LM Studio).
type LocalClient struct {
	endpoint string
	http     *http.Client
}

// NewLocalClient creates a client for a local completion server. An empty
// endpoint defaults to http://localhost:1234/v1/chat/completions.
func NewLocalClient(endpoint string) *LocalClient {
	if endpoint == "" {
		endpoint = "http://localhost:1234/v1/chat/completions"
	}
	return &LocalClient{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 300 * time.Second},
	}
}

func (c *LocalClient) Complete(ctx context.Context, system string, messages []Message) (string, error) {
	msgs := []Message{{Role: "system", Content: system}}
	msgs = append(msgs, messages...)

	body := map[string]any{
		"messages":   msgs,
		"max_tokens": 2048,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("local LLM connection failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty response")
	}
	return result.Choices[0].Message.Content, nil
}
