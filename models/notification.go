package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification kinds.
const (
	NotifBroadcast           = "broadcast"
	NotifApplicationAccepted = "application_accepted"
	NotifApplicationRejected = "application_rejected"
	NotifHireRequest         = "hire_request"
	NotifHireAccepted        = "hire_accepted"
	NotifHireDeclined        = "hire_declined"
	NotifVerification        = "verification"
)

type Notification struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    string             `json:"userid" bson:"userid"`
	Role      string             `json:"role" bson:"role"`
	Kind      string             `json:"kind" bson:"kind"`
	Title     string             `json:"title" bson:"title"`
	Body      string             `json:"body" bson:"body"`
	EntityID  string             `json:"entityid,omitempty" bson:"entityid,omitempty"`
	IsRead    bool               `json:"is_read" bson:"is_read"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Index represents an autocomplete-indexing event emitted over the mq
// channel.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	Title      string `json:"title,omitempty"`
}
