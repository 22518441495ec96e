package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/faqforge/faqforge/models"
	"github.com/faqforge/faqforge/store"
)

// --- fakes ---

type fakeExtractor struct {
	doc   *models.ExtractedDocument
	err   error
	calls int
}

func (f *fakeExtractor) Extract(ctx context.Context, url string) (*models.ExtractedDocument, error) {
	f.calls++
	return f.doc, f.err
}

func (f *fakeExtractor) ExtractReadability(ctx context.Context, url string) (*models.ExtractedDocument, error) {
	return f.doc, f.err
}

func (f *fakeExtractor) ExtractSelection(ctx context.Context, url, selector string) (*models.ExtractedDocument, error) {
	return f.doc, f.err
}

func (f *fakeExtractor) Markdown(ctx context.Context, url string) (string, error) {
	return "", f.err
}

type fakeSynth struct {
	pairs []models.FAQPair
	err   error
	calls int
}

func (f *fakeSynth) Generate(ctx context.Context, text string, requestedCount int) ([]models.FAQPair, error) {
	f.calls++
	return f.pairs, f.err
}

type fakeStore struct {
	upserts  []models.CrawledPage
	inserted []models.FAQItem
}

func (f *fakeStore) UpsertPage(ctx context.Context, page models.CrawledPage) error {
	f.upserts = append(f.upserts, page)
	return nil
}

func (f *fakeStore) FindPageByURL(ctx context.Context, url string) (*models.CrawledPage, error) {
	return nil, nil
}

func (f *fakeStore) ListPages(ctx context.Context, limit int64) ([]models.CrawledPage, error) {
	return nil, nil
}

func (f *fakeStore) InsertFAQs(ctx context.Context, pairs []models.FAQPair, sourceURL string) ([]models.FAQItem, error) {
	items := make([]models.FAQItem, len(pairs))
	for i, p := range pairs {
		items[i] = models.FAQItem{
			ID:        "id",
			Question:  p.Question,
			Answer:    p.Answer,
			SourceURL: sourceURL,
			Status:    models.FAQStatusDraft,
		}
	}
	f.inserted = append(f.inserted, items...)
	return items, nil
}

func (f *fakeStore) GetFAQ(ctx context.Context, id string) (*models.FAQItem, error) { return nil, nil }
func (f *fakeStore) ListFAQs(ctx context.Context, filter store.FAQFilter) ([]models.FAQItem, error) {
	return nil, nil
}
func (f *fakeStore) UpdateFAQ(ctx context.Context, id string, req models.UpdateFAQRequest) (*models.FAQItem, error) {
	return nil, nil
}
func (f *fakeStore) PublishFAQ(ctx context.Context, id string) (*models.FAQItem, error) {
	return nil, nil
}
func (f *fakeStore) DeleteFAQ(ctx context.Context, id string) (bool, error) { return false, nil }
func (f *fakeStore) Ping(ctx context.Context) error                         { return nil }

type fakeCache struct {
	entries map[string]*models.ExtractedDocument
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*models.ExtractedDocument{}}
}

func (f *fakeCache) Get(url string) (*models.ExtractedDocument, bool) {
	doc, ok := f.entries[url]
	return doc, ok
}

func (f *fakeCache) Set(url string, doc *models.ExtractedDocument) { f.entries[url] = doc }
func (f *fakeCache) Invalidate(url string)                         { delete(f.entries, url) }

// --- helpers ---

func longDoc(url string) *models.ExtractedDocument {
	return &models.ExtractedDocument{
		URL:         url,
		Title:       "Shipping policy",
		CleanedText: strings.Repeat("Orders ship within two business days. ", 10),
	}
}

func fivePairs() []models.FAQPair {
	pairs := make([]models.FAQPair, 5)
	for i := range pairs {
		pairs[i] = models.FAQPair{Question: "Q?", Answer: "A."}
	}
	return pairs
}

func postGenerate(t *testing.T, h gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/generate", h)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// --- tests ---

func TestGenerate_Success(t *testing.T) {
	ex := &fakeExtractor{doc: longDoc("https://shop.example/shipping")}
	syn := &fakeSynth{pairs: fivePairs()}
	st := &fakeStore{}

	w := postGenerate(t, Generate(ex, syn, st, newFakeCache(), ""), `{"url":"https://shop.example/shipping"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp models.GenerateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Count != 5 || len(resp.Items) != 5 {
		t.Errorf("response = %+v", resp)
	}
	if resp.CacheStatus != "miss" {
		t.Errorf("cache status = %q, want miss", resp.CacheStatus)
	}
	if len(st.upserts) != 1 {
		t.Errorf("page upserts = %d, want 1", len(st.upserts))
	}
	if len(st.inserted) != 5 {
		t.Errorf("inserted items = %d, want 5", len(st.inserted))
	}
}

func TestGenerate_CacheHitSkipsFetch(t *testing.T) {
	ex := &fakeExtractor{doc: longDoc("https://shop.example/shipping")}
	syn := &fakeSynth{pairs: fivePairs()}
	cc := newFakeCache()
	cc.Set("https://shop.example/shipping", longDoc("https://shop.example/shipping"))

	w := postGenerate(t, Generate(ex, syn, &fakeStore{}, cc, ""), `{"url":"https://shop.example/shipping"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ex.calls != 0 {
		t.Errorf("extractor called %d times on cache hit, want 0", ex.calls)
	}

	var resp models.GenerateResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.CacheStatus != "hit" {
		t.Errorf("cache status = %q, want hit", resp.CacheStatus)
	}
}

func TestGenerate_RefreshBypassesCache(t *testing.T) {
	ex := &fakeExtractor{doc: longDoc("https://shop.example/shipping")}
	syn := &fakeSynth{pairs: fivePairs()}
	cc := newFakeCache()
	cc.Set("https://shop.example/shipping", longDoc("https://shop.example/shipping"))

	w := postGenerate(t, Generate(ex, syn, &fakeStore{}, cc, ""),
		`{"url":"https://shop.example/shipping","refresh":true}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ex.calls != 1 {
		t.Errorf("extractor called %d times on refresh, want 1", ex.calls)
	}
}

func TestGenerate_ContentTooShort(t *testing.T) {
	ex := &fakeExtractor{doc: &models.ExtractedDocument{
		URL:         "https://shop.example/p",
		CleanedText: "too short",
	}}
	syn := &fakeSynth{}

	w := postGenerate(t, Generate(ex, syn, &fakeStore{}, newFakeCache(), ""), `{"url":"https://shop.example/p"}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	if syn.calls != 0 {
		t.Error("synthesizer should not run on short content")
	}

	var resp models.ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error == nil || resp.Error.Code != models.ErrCodeContentTooShort {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestGenerate_FetchForbidden(t *testing.T) {
	ex := &fakeExtractor{err: &models.FetchError{
		Kind: models.FetchForbidden, URL: "https://shop.example/p", StatusCode: 403,
	}}

	w := postGenerate(t, Generate(ex, &fakeSynth{}, &fakeStore{}, newFakeCache(), ""), `{"url":"https://shop.example/p"}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	var resp models.ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error == nil || resp.Error.Code != models.ErrCodeSourceForbidden {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestGenerate_GeneratorShortfall(t *testing.T) {
	ex := &fakeExtractor{doc: longDoc("https://shop.example/p")}
	syn := &fakeSynth{err: &models.CountError{Requested: 7, Got: 3}}
	st := &fakeStore{}

	w := postGenerate(t, Generate(ex, syn, st, newFakeCache(), ""), `{"url":"https://shop.example/p","count":7}`)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	// Nothing gets persisted on failure.
	if len(st.upserts) != 0 || len(st.inserted) != 0 {
		t.Error("failed generation should not persist anything")
	}
}

func TestGenerate_InvalidBody(t *testing.T) {
	w := postGenerate(t, Generate(&fakeExtractor{}, &fakeSynth{}, &fakeStore{}, newFakeCache(), ""), `{"count":5}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
