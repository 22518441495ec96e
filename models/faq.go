package models

import "time"

// FAQ lifecycle statuses. Items are always created as draft and move to
// published only through an explicit publish operation.
const (
	FAQStatusDraft     = "draft"
	FAQStatusPublished = "published"
)

// FAQPair is the synthesizer's output unit: a trimmed, non-empty
// question/answer pair with no persistence concerns attached.
type FAQPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQItem is the persisted record. SourceURL and Status are set by the
// caller at persistence time; the synthesizer never mutates or revisits
// stored items.
type FAQItem struct {
	ID        string    `json:"id" bson:"_id"`
	Question  string    `json:"question" bson:"question"`
	Answer    string    `json:"answer" bson:"answer"`
	SourceURL string    `json:"source_url" bson:"source_url"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
