package extractor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/faqforge/faqforge/config"
	"github.com/faqforge/faqforge/models"
)

func testFetcher(timeout time.Duration, maxRedirects int) *Fetcher {
	return NewFetcher(config.FetchConfig{Timeout: timeout, MaxRedirects: maxRedirects})
}

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("request sent without a User-Agent")
		}
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	body, status, err := testFetcher(5*time.Second, 0).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if string(body) != "<html><body>ok</body></html>" {
		t.Errorf("body = %q", body)
	}
}

func TestFetch_StatusClassification(t *testing.T) {
	tests := []struct {
		status int
		want   models.FetchKind
	}{
		{http.StatusForbidden, models.FetchForbidden},
		{http.StatusNotFound, models.FetchNotFound},
		{http.StatusTooManyRequests, models.FetchRateLimited},
		{http.StatusInternalServerError, models.FetchServerError},
		{http.StatusBadGateway, models.FetchServerError},
		{http.StatusGone, models.FetchOtherHTTP},
		{http.StatusTeapot, models.FetchOtherHTTP},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var requests atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, status, err := testFetcher(5*time.Second, 0).Fetch(context.Background(), srv.URL)
			if status != tt.status {
				t.Errorf("status = %d, want %d", status, tt.status)
			}

			var fetchErr *models.FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("error type = %T, want *models.FetchError", err)
			}
			if fetchErr.Kind != tt.want {
				t.Errorf("kind = %q, want %q", fetchErr.Kind, tt.want)
			}
			if fetchErr.StatusCode != tt.status {
				t.Errorf("error status = %d, want %d", fetchErr.StatusCode, tt.status)
			}
			// Blocked fetches must not be retried.
			if n := requests.Load(); n != 1 {
				t.Errorf("server saw %d requests, want exactly 1", n)
			}
		})
	}
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	_, _, err := testFetcher(50*time.Millisecond, 0).Fetch(context.Background(), srv.URL)

	var fetchErr *models.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error type = %T, want *models.FetchError", err)
	}
	if fetchErr.Kind != models.FetchTimeout {
		t.Errorf("kind = %q, want %q", fetchErr.Kind, models.FetchTimeout)
	}
}

func TestFetch_ConnectionRefused(t *testing.T) {
	// Grab an ephemeral port and close it so nothing is listening.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	_, _, err := testFetcher(5*time.Second, 0).Fetch(context.Background(), addr)

	var fetchErr *models.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error type = %T, want *models.FetchError", err)
	}
	if fetchErr.Kind != models.FetchConnectionRefused {
		t.Errorf("kind = %q, want %q", fetchErr.Kind, models.FetchConnectionRefused)
	}
}

func TestFetch_RedirectLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/again", http.StatusFound)
	}))
	defer srv.Close()

	_, _, err := testFetcher(5*time.Second, 3).Fetch(context.Background(), srv.URL)

	var fetchErr *models.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error type = %T, want *models.FetchError", err)
	}
	if !errors.Is(err, errTooManyRedirects) {
		t.Errorf("error chain should contain errTooManyRedirects, got %v", err)
	}
}

func TestFetch_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("landed"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	body, _, err := testFetcher(5*time.Second, 5).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if string(body) != "landed" {
		t.Errorf("body = %q, want %q", body, "landed")
	}
}
