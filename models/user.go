package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the local record for an externally authenticated identity.
// Rows are provisioned on first authenticated request and are never
// mutated or deleted by this service.
type User struct {
	ID         string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	ExternalID string    `json:"-" gorm:"size:255;uniqueIndex;not null"` // identity provider subject
	Email      string    `json:"email" gorm:"size:255;not null"`
	Username   string    `json:"username" gorm:"size:100;not null"`
	FirstName  string    `json:"first_name" gorm:"size:100"`
	LastName   string    `json:"last_name" gorm:"size:100"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Moods []Mood `json:"moods,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that assigns an ID before inserting
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserSummary is the flattened owner identity embedded in feed entries
type UserSummary struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Summary returns the minimal identity exposed on the public feed
func (u *User) Summary() UserSummary {
	return UserSummary{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
