package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hire request statuses. pending is the only non-terminal state.
const (
	HirePending  = "pending"
	HireAccepted = "accepted"
	HireDeclined = "declined"
)

// Requester identifies who initiated a hire request. Users and contractors
// can both hire labour, so the requester is tagged with its role.
type Requester struct {
	ID   string `json:"id" bson:"id"`
	Role string `json:"role" bson:"role"`
	Name string `json:"name,omitempty" bson:"name,omitempty"`
}

// HireRequest targets a labour profile.
type HireRequest struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Requester Requester          `json:"requester" bson:"requester"`
	LabourID  string             `json:"labourid" bson:"labourid"`
	TargetID  string             `json:"targetid" bson:"targetid"` // labour's userid
	Message   string             `json:"message,omitempty" bson:"message,omitempty"`
	Status    string             `json:"status" bson:"status"`
	ChatID    string             `json:"chatid,omitempty" bson:"chatid,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	DecidedAt time.Time          `json:"decided_at,omitempty" bson:"decided_at,omitempty"`
}

// ContractorHireRequest targets a contractor profile.
type ContractorHireRequest struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Requester    Requester          `json:"requester" bson:"requester"`
	ContractorID string             `json:"contractorid" bson:"contractorid"`
	TargetID     string             `json:"targetid" bson:"targetid"` // contractor's userid
	Message      string             `json:"message,omitempty" bson:"message,omitempty"`
	Status       string             `json:"status" bson:"status"`
	ChatID       string             `json:"chatid,omitempty" bson:"chatid,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	DecidedAt    time.Time          `json:"decided_at,omitempty" bson:"decided_at,omitempty"`
}

// IsTerminal reports whether a hire-request status can no longer change.
func IsTerminal(status string) bool {
	return status == HireAccepted || status == HireDeclined
}
