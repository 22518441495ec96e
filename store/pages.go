package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/faqforge/faqforge/models"
)

// UpsertPage stores a page snapshot, deduplicated by URL. Repeated crawls of
// the same URL refresh the snapshot, bump the crawl counter, and keep the
// original first-crawled timestamp.
func (s *Store) UpsertPage(ctx context.Context, page models.CrawledPage) error {
	update := bson.M{
		"$set": bson.M{
			"title":           page.Title,
			"description":     page.Description,
			"site_name":       page.SiteName,
			"language":        page.Language,
			"cleaned_text":    page.CleanedText,
			"heading_count":   page.HeadingCount,
			"paragraph_count": page.ParagraphCount,
			"token_estimate":  page.TokenEstimate,
			"fingerprint":     page.Fingerprint,
			"last_crawled":    page.LastCrawled,
		},
		"$setOnInsert": bson.M{"first_crawled": page.FirstCrawled},
		"$inc":         bson.M{"crawl_count": 1},
	}
	_, err := s.pages.UpdateOne(ctx, bson.M{"_id": page.URL}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert page %s: %w", page.URL, err)
	}
	return nil
}

// FindPageByURL returns the stored snapshot, or nil when the URL has never
// been crawled.
func (s *Store) FindPageByURL(ctx context.Context, url string) (*models.CrawledPage, error) {
	var page models.CrawledPage
	err := s.pages.FindOne(ctx, bson.M{"_id": url}).Decode(&page)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page %s: %w", url, err)
	}
	return &page, nil
}

// ListPages returns snapshots ordered by recency.
func (s *Store) ListPages(ctx context.Context, limit int64) ([]models.CrawledPage, error) {
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "last_crawled", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.pages.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer cursor.Close(ctx)

	pages := []models.CrawledPage{}
	if err := cursor.All(ctx, &pages); err != nil {
		return nil, fmt.Errorf("decode pages: %w", err)
	}
	return pages, nil
}
