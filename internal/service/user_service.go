package service

import (
	"context"

	"warbler/internal/cache"
	"warbler/internal/models"
	"warbler/internal/repository"
)

// ProfileStats holds the profile page counters. Field order matches the
// rendered order: messages, followers, following, likes.
type ProfileStats struct {
	Messages  int64 `json:"messages"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
	Likes     int64 `json:"likes"`
}

// Profile is the view model for a user's profile page.
type Profile struct {
	User     *models.User     `json:"user"`
	Stats    ProfileStats     `json:"stats"`
	Messages []models.Message `json:"messages"`
}

// UpdateProfileInput carries optional profile fields; empty values are left
// unchanged.
type UpdateProfileInput struct {
	UserID   uint
	Bio      string
	Location string
	ImageURL string
}

// UserService implements user queries and profile maintenance.
type UserService struct {
	users    repository.UserRepository
	messages repository.MessageRepository
	follows  repository.FollowRepository
	likes    repository.LikeRepository
}

// NewUserService returns a new UserService.
func NewUserService(
	users repository.UserRepository,
	messages repository.MessageRepository,
	follows repository.FollowRepository,
	likes repository.LikeRepository,
) *UserService {
	return &UserService{users: users, messages: messages, follows: follows, likes: likes}
}

// SearchUsers lists users whose username contains query; empty query lists all.
func (s *UserService) SearchUsers(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	return s.users.Search(ctx, query, limit, offset)
}

// GetProfile returns the user with counters and their latest messages. The
// assembled view is cached briefly, so counters may lag a write by up to the
// TTL; profile edits invalidate the entry immediately.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*Profile, error) {
	var profile Profile

	err := cache.Aside(ctx, cache.ProfileKey(id), &profile, cache.ProfileTTL, func() error {
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			return err
		}

		var stats ProfileStats
		if stats.Messages, err = s.messages.CountByUser(ctx, id); err != nil {
			return err
		}
		if stats.Followers, err = s.follows.CountFollowers(ctx, id); err != nil {
			return err
		}
		if stats.Following, err = s.follows.CountFollowing(ctx, id); err != nil {
			return err
		}
		if stats.Likes, err = s.likes.CountByUser(ctx, id); err != nil {
			return err
		}

		messages, err := s.messages.ListByUser(ctx, id, 100, 0)
		if err != nil {
			return err
		}

		profile = Profile{User: user, Stats: stats, Messages: messages}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// IsFollowing reports whether user a follows user b.
func (s *UserService) IsFollowing(ctx context.Context, a, b uint) (bool, error) {
	return s.follows.Exists(ctx, a, b)
}

// IsFollowedBy reports whether user a is followed by user b.
func (s *UserService) IsFollowedBy(ctx context.Context, a, b uint) (bool, error) {
	return s.follows.Exists(ctx, b, a)
}

// UpdateProfile applies non-empty fields to the user's profile.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	const maxLocationLen = 100

	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.Location != "" {
		if len(in.Location) > maxLocationLen {
			return nil, models.NewValidationError("Location too long (max 100 characters)")
		}
		user.Location = in.Location
	}
	if in.ImageURL != "" {
		user.ImageURL = in.ImageURL
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
