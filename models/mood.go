package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mood represents a single journal entry. Entries are append-only: there
// is no edit or delete path, and an entry always belongs to exactly one
// user (cascade-deleted with its owner by the store).
type Mood struct {
	ID      string  `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID  string  `json:"user_id" gorm:"type:varchar(36);not null;index"`
	User    User    `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Emoji   string  `json:"emoji" gorm:"size:16;not null"`
	Rating  int     `json:"rating" gorm:"type:int;not null;check:rating >= 1 AND rating <= 5"`
	Comment *string `json:"comment" gorm:"type:text"`
	Tech    *string `json:"tech" gorm:"size:100"`
	// Date is the moment the mood was logged and drives feed ordering.
	Date      time.Time `json:"date" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the Mood model
func (Mood) TableName() string {
	return "moods"
}

// BeforeCreate is a GORM hook that assigns defaults before inserting
func (m *Mood) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Date.IsZero() {
		m.Date = time.Now().UTC()
	}
	return nil
}

// MoodCreate represents the request body for logging a new mood
type MoodCreate struct {
	Emoji   string `json:"emoji" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
	Tech    string `json:"tech"`
}

// MoodResponse is the wire shape of a feed entry: owner identity is
// flattened inline and the timestamp is serialized as ISO-8601.
type MoodResponse struct {
	ID      string      `json:"id"`
	Emoji   string      `json:"emoji"`
	Rating  int         `json:"rating"`
	Comment *string     `json:"comment"`
	Tech    *string     `json:"tech"`
	Date    string      `json:"date"`
	User    UserSummary `json:"user"`
}

// ToResponse converts a Mood (with its User preloaded) to the wire shape
func (m *Mood) ToResponse() MoodResponse {
	return MoodResponse{
		ID:      m.ID,
		Emoji:   m.Emoji,
		Rating:  m.Rating,
		Comment: m.Comment,
		Tech:    m.Tech,
		Date:    m.Date.UTC().Format(time.RFC3339),
		User:    m.User.Summary(),
	}
}
