package service

import (
	"context"
	"strings"

	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/repository"
)

// MessageService implements message creation, lookup and owner-gated deletion.
type MessageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	follows  repository.FollowRepository
	likes    repository.LikeRepository
}

// NewMessageService returns a new MessageService.
func NewMessageService(
	messages repository.MessageRepository,
	users repository.UserRepository,
	follows repository.FollowRepository,
	likes repository.LikeRepository,
) *MessageService {
	return &MessageService{messages: messages, users: users, follows: follows, likes: likes}
}

// CreateMessage persists a new message for the given author.
func (s *MessageService) CreateMessage(ctx context.Context, userID uint, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(text) > models.MaxMessageLen {
		return nil, models.NewValidationError("Text too long (max 140 characters)")
	}

	// The author must exist; the session layer normally guarantees this, but
	// bearer-token callers reach here too.
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	message := &models.Message{Text: text, UserID: userID}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	middleware.MessagesCreated.Inc()
	return message, nil
}

// GetMessage returns the message with its like count, or a not-found error.
func (s *MessageService) GetMessage(ctx context.Context, id uint) (*models.Message, error) {
	message, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	likeCount, err := s.likes.CountByMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	message.LikesCount = int(likeCount)

	return message, nil
}

// DeleteMessage removes the message if actorID owns it. Anyone else gets an
// authorization error and the message is left untouched.
func (s *MessageService) DeleteMessage(ctx context.Context, actorID, messageID uint) error {
	message, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	if message.UserID != actorID {
		return models.NewUnauthorizedError("Access unauthorized")
	}

	return s.messages.Delete(ctx, messageID)
}

// ListUserMessages returns a user's messages, newest first.
func (s *MessageService) ListUserMessages(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.messages.ListByUser(ctx, userID, limit, offset)
}

// HomeFeed returns the newest messages from the users userID follows,
// including their own.
func (s *MessageService) HomeFeed(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	ids, err := s.follows.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids = append(ids, userID)
	return s.messages.ListByUsers(ctx, ids, limit)
}
