package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Job statuses.
const (
	JobOpen   = "Open"
	JobClosed = "Closed"
	JobFilled = "Filled"
)

// Application statuses.
const (
	ApplicationPending  = "Pending"
	ApplicationAccepted = "Accepted"
	ApplicationRejected = "Rejected"
)

// Application is an embedded sub-document on Job / ContractorJob.
type Application struct {
	ApplicationID string    `json:"applicationid" bson:"applicationid"`
	ApplicantID   string    `json:"applicantid" bson:"applicantid"`
	ApplicantName string    `json:"applicant_name,omitempty" bson:"applicant_name,omitempty"`
	Message       string    `json:"message,omitempty" bson:"message,omitempty"`
	Status        string    `json:"status" bson:"status"`
	ChatID        string    `json:"chatid,omitempty" bson:"chatid,omitempty"`
	AppliedAt     time.Time `json:"applied_at" bson:"applied_at"`
	DecidedAt     time.Time `json:"decided_at,omitempty" bson:"decided_at,omitempty"`
}

type Job struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID      string             `json:"ownerid" bson:"ownerid"`
	Title        string             `json:"title" bson:"title"`
	Description  string             `json:"description" bson:"description"`
	Category     string             `json:"category" bson:"category"`
	Location     string             `json:"location" bson:"location"`
	Wage         string             `json:"wage" bson:"wage"`
	WorkHours    string             `json:"work_hours,omitempty" bson:"work_hours,omitempty"`
	Requirements string             `json:"requirements,omitempty" bson:"requirements,omitempty"`
	WorkersCount int                `json:"workers_count,omitempty" bson:"workers_count,omitempty"`
	Status       string             `json:"status" bson:"status"`
	Applications []Application      `json:"applications" bson:"applications"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// ContractorJob mirrors Job but is posted by a contractor and applied to by
// labour.
type ContractorJob struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ContractorID string             `json:"contractorid" bson:"contractorid"`
	OwnerID      string             `json:"ownerid" bson:"ownerid"`
	Title        string             `json:"title" bson:"title"`
	Description  string             `json:"description" bson:"description"`
	Category     string             `json:"category" bson:"category"`
	Location     string             `json:"location" bson:"location"`
	Wage         string             `json:"wage" bson:"wage"`
	WorkHours    string             `json:"work_hours,omitempty" bson:"work_hours,omitempty"`
	Requirements string             `json:"requirements,omitempty" bson:"requirements,omitempty"`
	WorkersCount int                `json:"workers_count,omitempty" bson:"workers_count,omitempty"`
	Status       string             `json:"status" bson:"status"`
	Applications []Application      `json:"applications" bson:"applications"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
