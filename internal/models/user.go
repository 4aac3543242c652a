// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultImageURL is the profile image applied when a user signs up without one.
const DefaultImageURL = "/static/images/default-pic.png"

// User represents an account in the Warbler application.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	ImageURL  string         `json:"image_url"`
	Bio       string         `json:"bio"`
	Location  string         `json:"location"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Messages  []Message      `gorm:"foreignKey:UserID" json:"messages,omitempty"`
}

// NewUser builds an uncommitted User record. The password must already be
// hashed; callers persist the record themselves (two-phase
// construct-then-commit).
func NewUser(username, email, hashedPassword, imageURL string) *User {
	if imageURL == "" {
		imageURL = DefaultImageURL
	}
	return &User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		ImageURL: imageURL,
	}
}
