package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
)

// FollowService implements follow/unfollow and follower queries.
type FollowService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(follows repository.FollowRepository, users repository.UserRepository) *FollowService {
	return &FollowService{follows: follows, users: users}
}

// Follow adds the actor → target edge. Self-follow and duplicate follow are
// rejected; the unique index on the pair is the backstop for races past the
// pre-check.
func (s *FollowService) Follow(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return models.NewValidationError("Cannot follow yourself")
	}

	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return err
	}

	exists, err := s.follows.Exists(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if exists {
		return models.NewConflictError("Already following this user", nil)
	}

	return s.follows.Create(ctx, actorID, targetID)
}

// Unfollow removes the actor → target edge. Removing an absent edge succeeds.
func (s *FollowService) Unfollow(ctx context.Context, actorID, targetID uint) error {
	return s.follows.Delete(ctx, actorID, targetID)
}

// Followers returns the users following userID.
func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.follows.Followers(ctx, userID)
}

// Following returns the users userID follows.
func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.follows.Following(ctx, userID)
}
