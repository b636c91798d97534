package models

import "time"

// Labour card / verification states.
const (
	CardStateNone     = "none"
	CardStatePending  = "pending"
	CardStateApproved = "approved"
	CardStateRejected = "rejected"
)

type LabourCard struct {
	CardID      string    `json:"cardid" bson:"cardid"`
	FullName    string    `json:"full_name" bson:"full_name"`
	FatherName  string    `json:"father_name,omitempty" bson:"father_name,omitempty"`
	DateOfBirth string    `json:"dob,omitempty" bson:"dob,omitempty"`
	Aadhaar     string    `json:"aadhaar,omitempty" bson:"aadhaar,omitempty"`
	Photo       string    `json:"photo,omitempty" bson:"photo,omitempty"`
	State       string    `json:"state" bson:"state"`
	IssuedAt    time.Time `json:"issued_at,omitempty" bson:"issued_at,omitempty"`
}

type Labour struct {
	LabourID     string      `json:"labourid" bson:"labourid"`
	UserID       string      `json:"userid" bson:"userid"`
	Name         string      `json:"name" bson:"name"`
	Phone        string      `json:"phone" bson:"phone"`
	SkillType    string      `json:"skill_type" bson:"skill_type"`
	Category     string      `json:"category" bson:"category"`
	Location     string      `json:"address" bson:"address"`
	ExpectedWage string      `json:"expected_wage,omitempty" bson:"expected_wage,omitempty"`
	Experience   string      `json:"experience,omitempty" bson:"experience,omitempty"`
	Languages    string      `json:"languages,omitempty" bson:"languages,omitempty"`
	Availability string      `json:"availability,omitempty" bson:"availability,omitempty"`
	Bio          string      `json:"bio,omitempty" bson:"bio,omitempty"`
	Photo        string      `json:"photo,omitempty" bson:"photo,omitempty"`
	Verified     bool        `json:"verified" bson:"verified"`
	Card         *LabourCard `json:"card,omitempty" bson:"card,omitempty"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

type Contractor struct {
	ContractorID string    `json:"contractorid" bson:"contractorid"`
	UserID       string    `json:"userid" bson:"userid"`
	Name         string    `json:"name" bson:"name"`
	Phone        string    `json:"phone" bson:"phone"`
	BusinessName string    `json:"business_name" bson:"business_name"`
	BusinessType string    `json:"business_type" bson:"business_type"`
	Location     string    `json:"address" bson:"address"`
	TeamSize     int       `json:"team_size,omitempty" bson:"team_size,omitempty"`
	Bio          string    `json:"bio,omitempty" bson:"bio,omitempty"`
	Photo        string    `json:"photo,omitempty" bson:"photo,omitempty"`
	Verified     bool      `json:"verified" bson:"verified"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
