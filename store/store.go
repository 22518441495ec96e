// Package store is the persistence collaborator: a MongoDB document store
// holding two record kinds — crawled-page snapshots keyed by URL and FAQ
// records keyed by generated identifier. The pipeline core never touches
// this package; callers persist the core's outputs.
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/faqforge/faqforge/config"
)

const (
	pagesCollection = "crawled_pages"
	faqsCollection  = "faqs"
)

// Store wraps the MongoDB client and the two collections.
type Store struct {
	client *mongo.Client
	pages  *mongo.Collection
	faqs   *mongo.Collection
}

// New connects to MongoDB, verifies the connection, and ensures indexes.
func New(ctx context.Context, cfg config.StoreConfig) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)
	s := &Store{
		client: client,
		pages:  db.Collection(pagesCollection),
		faqs:   db.Collection(faqsCollection),
	}
	if err := s.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("create indexes: %w", err)
	}
	return s, nil
}

func (s *Store) createIndexes(ctx context.Context) error {
	indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Pages are keyed by URL through _id, so only the recency sort needs
	// an index.
	_, err := s.pages.Indexes().CreateOne(indexCtx, mongo.IndexModel{
		Keys: bson.D{{Key: "last_crawled", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = s.faqs.Indexes().CreateOne(indexCtx, mongo.IndexModel{
		Keys: bson.D{{Key: "source_url", Value: 1}, {Key: "status", Value: 1}},
	})
	return err
}

// Ping reports whether the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(pingCtx, nil)
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
