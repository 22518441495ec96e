package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/faqforge/faqforge/config"
	"github.com/faqforge/faqforge/models"
)

// CompatProvider is a lightweight OpenAI-compatible chat client over plain
// net/http — no SDK needed. Useful for self-hosted or compatible gateways
// where pulling in the full SDK buys nothing.
type CompatProvider struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

// NewCompatProvider builds the provider from LLM configuration.
func NewCompatProvider(cfg config.LLMConfig) *CompatProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &CompatProvider{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// chatRequest is the OpenAI chat completion request body.
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float32         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// chatResponse is the minimal chat completion response we need.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chatErrorResponse captures an API error from the provider.
type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Submit sends the prompt and returns the raw assistant text.
func (p *CompatProvider) Submit(ctx context.Context, prompt string, params Params) (string, error) {
	reqBody := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	}
	if params.JSONMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", &models.UpstreamError{Retriable: false, Detail: "marshal request", Err: err}
	}

	endpoint := p.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", &models.UpstreamError{Retriable: false, Detail: "create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", &models.UpstreamError{Retriable: true, Detail: "provider request failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &models.UpstreamError{Retriable: true, Detail: "read provider response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		msg := "provider API error"
		var errResp chatErrorResponse
		if jsonErr := json.Unmarshal(respBody, &errResp); jsonErr == nil && errResp.Error.Message != "" {
			msg = errResp.Error.Message
		}
		return "", statusToUpstream(resp.StatusCode, fmt.Sprintf("provider returned %d: %s", resp.StatusCode, msg), nil)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", &models.UpstreamError{Retriable: true, Detail: "decode provider response", Err: err}
	}
	if len(chatResp.Choices) == 0 {
		return "", &models.UpstreamError{Retriable: true, Detail: "provider returned no choices"}
	}
	return chatResp.Choices[0].Message.Content, nil
}
