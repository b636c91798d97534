package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Admin struct {
	AdminID      string    `json:"adminid" bson:"adminid"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Name         string    `json:"name,omitempty" bson:"name,omitempty"`
	IsSuper      bool      `json:"is_super" bson:"is_super"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	LastLogin    time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
}

// Broadcast audiences.
const (
	AudienceAll        = "ALL"
	AudienceUser       = "USER"
	AudienceLabour     = "LABOUR"
	AudienceContractor = "CONTRACTOR"
)

type Broadcast struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title          string             `json:"title" bson:"title"`
	Body           string             `json:"body" bson:"body"`
	TargetAudience string             `json:"target_audience" bson:"target_audience"`
	SentBy         string             `json:"sent_by" bson:"sent_by"`
	SentCount      int                `json:"sent_count" bson:"sent_count"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
}

type VerificationRequest struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	LabourID   string             `json:"labourid" bson:"labourid"`
	UserID     string             `json:"userid" bson:"userid"`
	CardID     string             `json:"cardid" bson:"cardid"`
	Status     string             `json:"status" bson:"status"` // pending / approved / rejected
	Remark     string             `json:"remark,omitempty" bson:"remark,omitempty"`
	ReviewedBy string             `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	ReviewedAt time.Time          `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
}

type LabourCategory struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Slug      string             `json:"slug" bson:"slug"`
	Icon      string             `json:"icon,omitempty" bson:"icon,omitempty"`
	IsActive  bool               `json:"is_active" bson:"is_active"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

type CMSContent struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Key       string             `json:"key" bson:"key"`
	Title     string             `json:"title" bson:"title"`
	Body      string             `json:"body" bson:"body"`
	UpdatedBy string             `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

type Feedback struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    string             `json:"userid" bson:"userid"`
	Role      string             `json:"role" bson:"role"`
	Rating    int                `json:"rating,omitempty" bson:"rating,omitempty"`
	Message   string             `json:"message" bson:"message"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
