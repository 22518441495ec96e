package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/faqforge/faqforge/models"
)

// FAQFilter narrows ListFAQs results. Zero values match everything.
type FAQFilter struct {
	SourceURL string
	Status    string
	Limit     int64
}

// InsertFAQs persists synthesized pairs as draft records for the given
// source URL and returns the stored items with their generated identifiers.
func (s *Store) InsertFAQs(ctx context.Context, pairs []models.FAQPair, sourceURL string) ([]models.FAQItem, error) {
	now := time.Now().UTC()
	items := make([]models.FAQItem, 0, len(pairs))
	docs := make([]interface{}, 0, len(pairs))
	for _, pair := range pairs {
		item := models.FAQItem{
			ID:        uuid.NewString(),
			Question:  pair.Question,
			Answer:    pair.Answer,
			SourceURL: sourceURL,
			Status:    models.FAQStatusDraft,
			CreatedAt: now,
			UpdatedAt: now,
		}
		items = append(items, item)
		docs = append(docs, item)
	}

	if _, err := s.faqs.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("insert %d faqs: %w", len(docs), err)
	}
	return items, nil
}

// GetFAQ returns one record, or nil when the id is unknown.
func (s *Store) GetFAQ(ctx context.Context, id string) (*models.FAQItem, error) {
	var item models.FAQItem
	err := s.faqs.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find faq %s: %w", id, err)
	}
	return &item, nil
}

// ListFAQs returns records matching the filter, newest first.
func (s *Store) ListFAQs(ctx context.Context, filter FAQFilter) ([]models.FAQItem, error) {
	query := bson.M{}
	if filter.SourceURL != "" {
		query["source_url"] = filter.SourceURL
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.faqs.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list faqs: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.FAQItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode faqs: %w", err)
	}
	return items, nil
}

// UpdateFAQ applies a partial edit and returns the updated record, or nil
// when the id is unknown.
func (s *Store) UpdateFAQ(ctx context.Context, id string, req models.UpdateFAQRequest) (*models.FAQItem, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if req.Question != nil {
		set["question"] = *req.Question
	}
	if req.Answer != nil {
		set["answer"] = *req.Answer
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var item models.FAQItem
	err := s.faqs.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update faq %s: %w", id, err)
	}
	return &item, nil
}

// PublishFAQ moves a draft record to published and returns it, or nil when
// the id is unknown.
func (s *Store) PublishFAQ(ctx context.Context, id string) (*models.FAQItem, error) {
	set := bson.M{
		"status":     models.FAQStatusPublished,
		"updated_at": time.Now().UTC(),
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var item models.FAQItem
	err := s.faqs.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("publish faq %s: %w", id, err)
	}
	return &item, nil
}

// DeleteFAQ removes a record, reporting whether anything was deleted.
func (s *Store) DeleteFAQ(ctx context.Context, id string) (bool, error) {
	res, err := s.faqs.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete faq %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}
