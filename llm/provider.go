package llm

import (
	"context"

	"github.com/faqforge/faqforge/config"
)

// Params are per-request generation parameters.
type Params struct {
	// Temperature allows phrasing variety without drifting off-content.
	Temperature float32

	// MaxTokens is the output-token ceiling.
	MaxTokens int

	// JSONMode requests the provider's structured-output constraint where
	// supported, forcing a JSON response body.
	JSONMode bool
}

// Provider is the single capability the synthesizer needs from a generator
// backend: submit a prompt, get raw text back. Keeping the surface this
// small lets prompt construction, parsing, validation and retry live in one
// place and be shared across providers.
//
// Implementations classify their failures into *models.UpstreamError with
// the Retriable flag set, so the caller's retry policy needs no knowledge of
// provider wire formats.
type Provider interface {
	Submit(ctx context.Context, prompt string, params Params) (string, error)
}

// NewProvider selects a backend from configuration.
func NewProvider(cfg config.LLMConfig) Provider {
	switch cfg.Provider {
	case "compat":
		return NewCompatProvider(cfg)
	default:
		return NewOpenAIProvider(cfg)
	}
}
