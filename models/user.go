package models

import "time"

// Account roles.
const (
	RoleUser       = "user"
	RoleLabour     = "labour"
	RoleContractor = "contractor"
)

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Phone         string    `json:"phone" bson:"phone"`
	Role          string    `json:"role" bson:"role"`
	Name          string    `json:"name,omitempty" bson:"name,omitempty"`
	Email         string    `json:"email,omitempty" bson:"email,omitempty"`
	Address       string    `json:"address,omitempty" bson:"address,omitempty"`
	Avatar        string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Bio           string    `json:"bio,omitempty" bson:"bio,omitempty"`
	IsBlocked     bool      `json:"is_blocked" bson:"is_blocked"`
	IsVerified    bool      `json:"is_verified" bson:"is_verified"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
	LastLogin     time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
	RefreshToken  string    `json:"-" bson:"refreshtoken,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refreshexp,omitempty"`
}

// UserProfileResponse is the public shape returned for profile lookups.
type UserProfileResponse struct {
	UserID     string    `json:"userid" bson:"userid"`
	Phone      string    `json:"phone" bson:"phone"`
	Role       string    `json:"role" bson:"role"`
	Name       string    `json:"name,omitempty" bson:"name,omitempty"`
	Address    string    `json:"address,omitempty" bson:"address,omitempty"`
	Avatar     string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Bio        string    `json:"bio,omitempty" bson:"bio,omitempty"`
	IsVerified bool      `json:"is_verified" bson:"is_verified"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
