// Package seed provides helpers to create demo and development data.
package seed

import (
	"fmt"
	"math/rand"

	"warbler/internal/middleware"
	"warbler/internal/models"

	"gorm.io/gorm"
)

// Options controls how much demo data Run generates.
type Options struct {
	Users           int
	MessagesPerUser int
	FollowsPerUser  int
	LikesPerUser    int
}

// DefaultOptions is a small but connected demo data set.
var DefaultOptions = Options{
	Users:           25,
	MessagesPerUser: 8,
	FollowsPerUser:  5,
	LikesPerUser:    10,
}

// Run populates the database with fake users, messages, follow edges and
// likes. Intended for development and demos only.
func Run(db *gorm.DB, opts Options) error {
	f := NewFactory(db)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	var messages []*models.Message
	for _, user := range users {
		n := 1 + rand.Intn(opts.MessagesPerUser)
		for i := 0; i < n; i++ {
			message, err := f.CreateMessage(user)
			if err != nil {
				return fmt.Errorf("seed message: %w", err)
			}
			messages = append(messages, message)
		}
	}

	for _, user := range users {
		for _, target := range pickUsers(users, opts.FollowsPerUser) {
			if target.ID == user.ID {
				continue
			}
			if err := f.Follow(user, target); err != nil {
				return fmt.Errorf("seed follow: %w", err)
			}
		}
		for _, message := range pickMessages(messages, opts.LikesPerUser) {
			if message.UserID == user.ID {
				continue
			}
			if err := f.Like(user, message); err != nil {
				return fmt.Errorf("seed like: %w", err)
			}
		}
	}

	middleware.Logger.Info("seed complete",
		"users", len(users),
		"messages", len(messages),
	)
	return nil
}

func pickUsers(users []*models.User, n int) []*models.User {
	if n >= len(users) {
		return users
	}
	picked := make([]*models.User, 0, n)
	for _, i := range rand.Perm(len(users))[:n] {
		picked = append(picked, users[i])
	}
	return picked
}

func pickMessages(messages []*models.Message, n int) []*models.Message {
	if n >= len(messages) {
		return messages
	}
	picked := make([]*models.Message, 0, n)
	for _, i := range rand.Perm(len(messages))[:n] {
		picked = append(picked, messages[i])
	}
	return picked
}
