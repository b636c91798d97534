package models

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request types a chat can be linked to.
const (
	RequestTypeJobApplication     = "job_application"
	RequestTypeHireRequest        = "hire_request"
	RequestTypeContractorHire     = "contractor_hire_request"
	RequestTypeContractorJobApply = "contractor_job_application"
)

// RelatedRequest points a chat at the interaction that created (or most
// recently reused) it.
type RelatedRequest struct {
	RequestType string `json:"request_type" bson:"request_type"`
	RequestID   string `json:"request_id" bson:"request_id"`
}

type MessagePreview struct {
	Text      string    `json:"text" bson:"text"`
	SenderID  string    `json:"senderid" bson:"senderid"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

type Chat struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Participants   []string           `json:"participants" bson:"participants"`
	PairKey        string             `json:"-" bson:"pairkey"`
	RelatedRequest RelatedRequest     `json:"related_request" bson:"related_request"`
	UnreadCount    map[string]int     `json:"unread_count" bson:"unread_count"`
	LastMessage    *MessagePreview    `json:"last_message,omitempty" bson:"last_message,omitempty"`
	Active         bool               `json:"active" bson:"active"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// PairKeyFor returns the canonical key for an unordered participant pair. A
// unique index on this field keeps concurrent first-acceptances from creating
// two chats for the same pair.
func PairKeyFor(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return ids[0] + "|" + ids[1]
}

type Message struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ChatID    string             `json:"chatid" bson:"chatid"`
	SenderID  string             `json:"senderid" bson:"senderid"`
	Text      string             `json:"text" bson:"text"`
	Edited    bool               `json:"edited,omitempty" bson:"edited,omitempty"`
	Deleted   bool               `json:"deleted,omitempty" bson:"deleted,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	EditedAt  time.Time          `json:"edited_at,omitempty" bson:"edited_at,omitempty"`
}
