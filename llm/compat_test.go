package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/faqforge/faqforge/config"
	"github.com/faqforge/faqforge/models"
)

func compatServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *CompatProvider) {
	t.Helper()
	srv := httptest.NewServer(handler)
	p := NewCompatProvider(config.LLMConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "test-model",
		Timeout: 5 * time.Second,
	})
	return srv, p
}

func TestCompatSubmit_Success(t *testing.T) {
	srv, p := compatServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}

		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "test-model" {
			t.Errorf("model = %q", req.Model)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Errorf("response format = %+v", req.ResponseFormat)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{"faqs":[]}`}},
			},
		})
	})
	defer srv.Close()

	got, err := p.Submit(context.Background(), "prompt", Params{JSONMode: true, Temperature: 0.7})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if got != `{"faqs":[]}` {
		t.Errorf("content = %q", got)
	}
}

func TestCompatSubmit_StatusClassification(t *testing.T) {
	tests := []struct {
		status        int
		wantRetriable bool
	}{
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusServiceUnavailable, true},
		{http.StatusUnauthorized, false},
		{http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv, p := compatServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"error": map[string]string{"message": "nope"},
				})
			})
			defer srv.Close()

			_, err := p.Submit(context.Background(), "prompt", Params{})

			var upstream *models.UpstreamError
			if !errors.As(err, &upstream) {
				t.Fatalf("error type = %T, want *models.UpstreamError", err)
			}
			if upstream.Retriable != tt.wantRetriable {
				t.Errorf("retriable = %v, want %v", upstream.Retriable, tt.wantRetriable)
			}
			if upstream.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", upstream.StatusCode, tt.status)
			}
		})
	}
}

func TestCompatSubmit_NoChoices(t *testing.T) {
	srv, p := compatServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	})
	defer srv.Close()

	_, err := p.Submit(context.Background(), "prompt", Params{})

	var upstream *models.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error type = %T, want *models.UpstreamError", err)
	}
	if !upstream.Retriable {
		t.Error("empty choices should be retriable")
	}
}

func TestNewProvider_Selection(t *testing.T) {
	if _, ok := NewProvider(config.LLMConfig{Provider: "compat"}).(*CompatProvider); !ok {
		t.Error("provider 'compat' should select CompatProvider")
	}
	if _, ok := NewProvider(config.LLMConfig{Provider: "openai"}).(*OpenAIProvider); !ok {
		t.Error("provider 'openai' should select OpenAIProvider")
	}
}
