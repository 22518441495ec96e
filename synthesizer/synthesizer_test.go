package synthesizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/faqforge/faqforge/config"
	"github.com/faqforge/faqforge/llm"
	"github.com/faqforge/faqforge/models"
)

// fakeProvider scripts a sequence of responses; each call consumes one.
type fakeProvider struct {
	calls      int
	responses  []fakeResponse
	lastParams llm.Params
}

type fakeResponse struct {
	text string
	err  error
}

func (f *fakeProvider) Submit(ctx context.Context, prompt string, params llm.Params) (string, error) {
	f.lastParams = params
	if f.calls >= len(f.responses) {
		return "", errors.New("fakeProvider: no scripted response left")
	}
	r := f.responses[f.calls]
	f.calls++
	return r.text, r.err
}

// faqJSON builds a valid wrapped response with n items.
func faqJSON(n int) string {
	type item struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	items := make([]item, n)
	for i := range items {
		items[i] = item{
			Question: fmt.Sprintf("Question %d?", i+1),
			Answer:   fmt.Sprintf("Answer %d with enough substance to look real.", i+1),
		}
	}
	out, _ := json.Marshal(map[string][]item{"faqs": items})
	return string(out)
}

func newTestSynthesizer(p llm.Provider) *Synthesizer {
	s := New(p, config.LLMConfig{APIKey: "test-key"})
	s.backoff = func(int) time.Duration { return 0 }
	return s
}

func TestClampCount(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-3, DefaultCount},
		{0, DefaultCount},
		{1, MinCount},
		{4, MinCount},
		{5, 5},
		{7, 7},
		{10, 10},
		{11, MaxCount},
		{100, MaxCount},
	}
	for _, tt := range tests {
		if got := ClampCount(tt.in); got != tt.want {
			t.Errorf("ClampCount(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestGenerate_ExactCount(t *testing.T) {
	p := &fakeProvider{responses: []fakeResponse{{text: faqJSON(7)}}}
	s := newTestSynthesizer(p)

	pairs, err := s.Generate(context.Background(), "page content", 7)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(pairs) != 7 {
		t.Errorf("got %d pairs, want 7", len(pairs))
	}
	if !p.lastParams.JSONMode {
		t.Error("JSON mode should be requested")
	}
	if p.lastParams.Temperature != generationTemperature {
		t.Errorf("temperature = %v, want %v", p.lastParams.Temperature, generationTemperature)
	}
}

func TestGenerate_TrimsExcess(t *testing.T) {
	p := &fakeProvider{responses: []fakeResponse{{text: faqJSON(9)}}}
	s := newTestSynthesizer(p)

	pairs, err := s.Generate(context.Background(), "page content", 7)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(pairs) != 7 {
		t.Fatalf("got %d pairs, want 7", len(pairs))
	}
	// The first seven in generator order survive.
	if pairs[0].Question != "Question 1?" || pairs[6].Question != "Question 7?" {
		t.Errorf("trim changed ordering: first=%q last=%q", pairs[0].Question, pairs[6].Question)
	}
}

func TestGenerate_Shortfall(t *testing.T) {
	p := &fakeProvider{responses: []fakeResponse{{text: faqJSON(4)}}}
	s := newTestSynthesizer(p)

	_, err := s.Generate(context.Background(), "page content", 7)

	var countErr *models.CountError
	if !errors.As(err, &countErr) {
		t.Fatalf("error type = %T, want *models.CountError", err)
	}
	if countErr.Requested != 7 || countErr.Got != 4 {
		t.Errorf("count error = %+v", countErr)
	}
}

func TestGenerate_RetriesRetriableFailures(t *testing.T) {
	upstream := &models.UpstreamError{Retriable: true, StatusCode: 500, Detail: "server error"}
	p := &fakeProvider{responses: []fakeResponse{
		{err: upstream},
		{err: upstream},
		{text: faqJSON(5)},
	}}
	s := newTestSynthesizer(p)

	pairs, err := s.Generate(context.Background(), "page content", 5)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(pairs) != 5 {
		t.Errorf("got %d pairs, want 5", len(pairs))
	}
	if p.calls != 3 {
		t.Errorf("provider called %d times, want 3", p.calls)
	}
}

func TestGenerate_ExhaustsRetries(t *testing.T) {
	upstream := &models.UpstreamError{Retriable: true, StatusCode: 503, Detail: "unavailable"}
	p := &fakeProvider{responses: []fakeResponse{
		{err: upstream}, {err: upstream}, {err: upstream},
	}}
	s := newTestSynthesizer(p)

	_, err := s.Generate(context.Background(), "page content", 5)

	var got *models.UpstreamError
	if !errors.As(err, &got) {
		t.Fatalf("error type = %T, want *models.UpstreamError", err)
	}
	// Initial attempt plus maxRetries, no more.
	if p.calls != maxRetries+1 {
		t.Errorf("provider called %d times, want %d", p.calls, maxRetries+1)
	}
}

func TestGenerate_NoRetryForNonRetriable(t *testing.T) {
	upstream := &models.UpstreamError{Retriable: false, StatusCode: 401, Detail: "bad key"}
	p := &fakeProvider{responses: []fakeResponse{{err: upstream}}}
	s := newTestSynthesizer(p)

	_, err := s.Generate(context.Background(), "page content", 5)
	if err == nil {
		t.Fatal("expected error")
	}
	if p.calls != 1 {
		t.Errorf("provider called %d times, want exactly 1", p.calls)
	}
}

func TestGenerate_EmptyText(t *testing.T) {
	p := &fakeProvider{}
	s := newTestSynthesizer(p)

	_, err := s.Generate(context.Background(), "   \n ", 5)

	var inputErr *models.InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("error type = %T, want *models.InputError", err)
	}
	if p.calls != 0 {
		t.Error("provider should not be called for empty input")
	}
}

func TestGenerate_MissingCredential(t *testing.T) {
	s := New(&fakeProvider{}, config.LLMConfig{APIKey: "  "})

	_, err := s.Generate(context.Background(), "page content", 5)

	var inputErr *models.InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("error type = %T, want *models.InputError", err)
	}
}

func TestGenerate_CancelledDuringBackoff(t *testing.T) {
	upstream := &models.UpstreamError{Retriable: true, StatusCode: 500}
	p := &fakeProvider{responses: []fakeResponse{{err: upstream}}}
	s := New(p, config.LLMConfig{APIKey: "test-key"})
	s.backoff = func(int) time.Duration { return time.Hour }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := s.Generate(ctx, "page content", 5)
		done <- err
	}()

	// Let the first attempt fail, then cancel mid-backoff.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		var got *models.UpstreamError
		if !errors.As(err, &got) {
			t.Fatalf("error type = %T, want *models.UpstreamError", err)
		}
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error chain should contain context.Canceled: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Generate did not return after cancellation")
	}
}
