package llm

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/faqforge/faqforge/config"
	"github.com/faqforge/faqforge/models"
)

// OpenAIProvider is the default backend, built on the go-openai SDK. A custom
// BaseURL points it at any OpenAI-compatible endpoint.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider builds the provider from LLM configuration.
func NewOpenAIProvider(cfg config.LLMConfig) *OpenAIProvider {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

// Submit sends the prompt as a single user message and returns the raw
// assistant text. Provider failures come back as *models.UpstreamError.
func (p *OpenAIProvider) Submit(ctx context.Context, prompt string, params Params) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
		N:           1,
	}
	if params.JSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &models.UpstreamError{Retriable: true, Detail: "provider returned no choices"}
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyOpenAIError splits SDK failures into retriable (rate limits,
// server errors, transport problems) and non-retriable (credentials,
// malformed requests) upstream errors.
func classifyOpenAIError(err error) *models.UpstreamError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return statusToUpstream(apiErr.HTTPStatusCode, apiErr.Message, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return statusToUpstream(reqErr.HTTPStatusCode, reqErr.Error(), err)
	}
	// No HTTP status at all: transport-level failure, worth retrying.
	return &models.UpstreamError{Retriable: true, Detail: "provider request failed", Err: err}
}

func statusToUpstream(status int, message string, err error) *models.UpstreamError {
	retriable := status == http.StatusTooManyRequests || status >= 500 || status == 0
	return &models.UpstreamError{
		Retriable:  retriable,
		StatusCode: status,
		Detail:     message,
		Err:        err,
	}
}
