package handler

import (
	"context"

	"github.com/faqforge/faqforge/models"
	"github.com/faqforge/faqforge/store"
)

// Extractor is the page-extraction capability the handlers depend on.
type Extractor interface {
	Extract(ctx context.Context, url string) (*models.ExtractedDocument, error)
	ExtractReadability(ctx context.Context, url string) (*models.ExtractedDocument, error)
	ExtractSelection(ctx context.Context, url, selector string) (*models.ExtractedDocument, error)
	Markdown(ctx context.Context, url string) (string, error)
}

// Synthesizer is the FAQ-generation capability the handlers depend on.
type Synthesizer interface {
	Generate(ctx context.Context, text string, requestedCount int) ([]models.FAQPair, error)
}

// Store is the persistence surface the handlers depend on.
type Store interface {
	UpsertPage(ctx context.Context, page models.CrawledPage) error
	FindPageByURL(ctx context.Context, url string) (*models.CrawledPage, error)
	ListPages(ctx context.Context, limit int64) ([]models.CrawledPage, error)

	InsertFAQs(ctx context.Context, pairs []models.FAQPair, sourceURL string) ([]models.FAQItem, error)
	GetFAQ(ctx context.Context, id string) (*models.FAQItem, error)
	ListFAQs(ctx context.Context, filter store.FAQFilter) ([]models.FAQItem, error)
	UpdateFAQ(ctx context.Context, id string, req models.UpdateFAQRequest) (*models.FAQItem, error)
	PublishFAQ(ctx context.Context, id string) (*models.FAQItem, error)
	DeleteFAQ(ctx context.Context, id string) (bool, error)

	Ping(ctx context.Context) error
}

// DocCache is the extracted-document cache surface.
type DocCache interface {
	Get(url string) (*models.ExtractedDocument, bool)
	Set(url string, doc *models.ExtractedDocument)
	Invalidate(url string)
}
