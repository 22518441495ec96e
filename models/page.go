package models

import (
	"time"

	"github.com/faqforge/faqforge/simhash"
)

// CrawledPage is the persisted snapshot of an extraction, keyed by
// normalized URL for deduplication and audit. It mirrors the parts of an
// ExtractedDocument worth keeping between requests.
type CrawledPage struct {
	URL            string    `json:"url" bson:"_id"`
	Title          string    `json:"title" bson:"title"`
	Description    string    `json:"description,omitempty" bson:"description,omitempty"`
	SiteName       string    `json:"site_name,omitempty" bson:"site_name,omitempty"`
	Language       string    `json:"language,omitempty" bson:"language,omitempty"`
	CleanedText    string    `json:"cleaned_text" bson:"cleaned_text"`
	HeadingCount   int       `json:"heading_count" bson:"heading_count"`
	ParagraphCount int       `json:"paragraph_count" bson:"paragraph_count"`
	TokenEstimate  int       `json:"token_estimate" bson:"token_estimate"`

	// Fingerprint is a SimHash of CleanedText, used to detect whether a
	// re-crawl actually changed the content. Stored as int64 because BSON
	// has no unsigned 64-bit type.
	Fingerprint int64 `json:"fingerprint" bson:"fingerprint"`

	FirstCrawled   time.Time `json:"first_crawled" bson:"first_crawled"`
	LastCrawled    time.Time `json:"last_crawled" bson:"last_crawled"`
	CrawlCount     int       `json:"crawl_count" bson:"crawl_count"`
}

// FromDocument builds a CrawledPage snapshot from an extraction result.
func FromDocument(doc *ExtractedDocument, now time.Time) CrawledPage {
	return CrawledPage{
		URL:            doc.URL,
		Title:          doc.Title,
		Description:    doc.Description,
		SiteName:       doc.SiteName,
		Language:       doc.Language,
		CleanedText:    doc.CleanedText,
		HeadingCount:   doc.Metadata.HeadingCount,
		ParagraphCount: doc.Metadata.ParagraphCount,
		TokenEstimate:  doc.Metadata.TokenEstimate,
		Fingerprint:    int64(simhash.Fingerprint(doc.CleanedText)),
		FirstCrawled:   now,
		LastCrawled:    now,
		CrawlCount:     1,
	}
}
