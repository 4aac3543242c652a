package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxMessageLen is the upper bound on message text length.
const MaxMessageLen = 140

// Message is a short text post owned by exactly one user.
type Message struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Text      string         `gorm:"size:140;not null" json:"text"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"-" json:"likes_count"`
}
