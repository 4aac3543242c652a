package service

import (
	"context"

	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/repository"
)

// LikeService implements like toggling and liked-message queries.
type LikeService struct {
	likes    repository.LikeRepository
	messages repository.MessageRepository
}

// NewLikeService returns a new LikeService.
func NewLikeService(likes repository.LikeRepository, messages repository.MessageRepository) *LikeService {
	return &LikeService{likes: likes, messages: messages}
}

// ToggleLike flips the (actor, message) like edge: a new like is created, an
// existing one removed. Liking your own message is rejected.
func (s *LikeService) ToggleLike(ctx context.Context, actorID, messageID uint) (bool, error) {
	message, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return false, err
	}

	if message.UserID == actorID {
		return false, models.NewValidationError("Cannot like your own message")
	}

	liked, err := s.likes.Toggle(ctx, actorID, messageID)
	if err != nil {
		return false, err
	}

	state := "unliked"
	if liked {
		state = "liked"
	}
	middleware.LikesToggled.WithLabelValues(state).Inc()

	return liked, nil
}

// HasLiked reports whether userID has liked messageID.
func (s *LikeService) HasLiked(ctx context.Context, userID, messageID uint) (bool, error) {
	return s.likes.Exists(ctx, userID, messageID)
}

// LikedMessages returns the messages userID has liked, newest like first.
func (s *LikeService) LikedMessages(ctx context.Context, userID uint) ([]models.Message, error) {
	return s.likes.MessagesLikedBy(ctx, userID)
}
