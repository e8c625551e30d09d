package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ddebortoli/darwin-ia-challenge/config"
)

// ErrBackendUnavailable reports that the chat-completion backend could not
// be reached or did not answer in time.
var ErrBackendUnavailable = errors.New("llm backend unavailable")

// Chat is the narrow seam over the chat-completion backend. Each call is
// stateless; no conversation memory is carried between calls.
type Chat interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Choice struct {
	Message Message `json:"message"`
}

type ChatResponse struct {
	Choices []Choice `json:"choices"`
}

// Client talks to an OpenAI-compatible chat completions endpoint (Ollama
// exposes one at /v1/chat/completions).
type Client struct {
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewClient builds a client from the given model configuration.
func NewClient(cfg config.LLMConfig) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Complete sends one system+user exchange and returns the model's reply.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	reqBody := ChatRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status code %d", ErrBackendUnavailable, resp.StatusCode)
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrBackendUnavailable)
	}
	return chatResp.Choices[0].Message.Content, nil
}
