package synthesizer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/faqforge/faqforge/config"
	"github.com/faqforge/faqforge/llm"
	"github.com/faqforge/faqforge/models"
)

// Count bounds. Requests outside the range are clamped, never rejected.
const (
	MinCount     = 5
	MaxCount     = 10
	DefaultCount = 5
)

// maxRetries is the number of extra attempts after the initial one, taken
// only for retriable upstream failures.
const maxRetries = 2

// Generation parameters: moderate creativity for phrasing variety without
// drifting off-content, and a generous output ceiling.
const (
	generationTemperature = 0.7
	maxOutputTokens       = 4096
)

// Synthesizer coerces a non-deterministic text generator into a
// strictly-validated, exact-count FAQ list. It depends only on text input —
// never on the extractor — and holds no mutable state across calls, so
// concurrent generations for different inputs are safe.
type Synthesizer struct {
	provider   llm.Provider
	configured bool

	// backoff returns the sleep before retry attempt n (1-based). It is a
	// field so tests can collapse the delays.
	backoff func(attempt int) time.Duration
}

// New builds a Synthesizer. The credential is validated once here, not read
// ad hoc mid-call.
func New(provider llm.Provider, cfg config.LLMConfig) *Synthesizer {
	return &Synthesizer{
		provider:   provider,
		configured: strings.TrimSpace(cfg.APIKey) != "",
		backoff:    defaultBackoff,
	}
}

// defaultBackoff yields 1s, 2s for attempts 1 and 2.
func defaultBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * time.Second
}

// ClampCount constrains a requested count into [MinCount, MaxCount].
// Non-positive or otherwise unusable values fall back to DefaultCount
// (which the lower clamp also enforces).
func ClampCount(requested int) int {
	if requested <= 0 {
		return DefaultCount
	}
	if requested < MinCount {
		return MinCount
	}
	if requested > MaxCount {
		return MaxCount
	}
	return requested
}

// Generate produces exactly ClampCount(requestedCount) question/answer pairs
// from the given text, or fails: no partial results are ever returned.
//
// Failure modes: *models.InputError (empty text, missing credential),
// *models.UpstreamError (provider failure after contained retries),
// *models.ParseError (undecodable or structurally invalid output), and
// *models.CountError (provider under-delivered).
func (s *Synthesizer) Generate(ctx context.Context, text string, requestedCount int) ([]models.FAQPair, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &models.InputError{Message: "input text is empty"}
	}
	if !s.configured {
		return nil, &models.InputError{Message: "generator API credential is not configured"}
	}

	count := ClampCount(requestedCount)
	prompt := buildPrompt(truncateText(text), count)

	raw, err := s.submitWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	pairs, err := parseFAQs(raw)
	if err != nil {
		return nil, err
	}

	// Count reconciliation is asymmetric: over-generation is silently
	// corrected, under-generation breaks the exact-count contract.
	if len(pairs) > count {
		pairs = pairs[:count]
	}
	if len(pairs) < count {
		return nil, &models.CountError{Requested: count, Got: len(pairs)}
	}
	return pairs, nil
}

// submitWithRetry runs the generator call with up to maxRetries extra
// attempts under exponential backoff. Only retriable upstream failures are
// retried; the backoff sleep is cancellable through ctx so a caller deadline
// is honored.
func (s *Synthesizer) submitWithRetry(ctx context.Context, prompt string) (string, error) {
	params := llm.Params{
		Temperature: generationTemperature,
		MaxTokens:   maxOutputTokens,
		JSONMode:    true,
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(s.backoff(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", &models.UpstreamError{
					Retriable: true,
					Detail:    "cancelled while waiting to retry",
					Err:       ctx.Err(),
				}
			case <-timer.C:
			}
		}

		raw, err := s.provider.Submit(ctx, prompt, params)
		if err == nil {
			return raw, nil
		}

		var upstream *models.UpstreamError
		if errors.As(err, &upstream) && upstream.Retriable && attempt < maxRetries {
			lastErr = err
			continue
		}
		return "", err
	}
	return "", lastErr
}
