package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"warbler/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	// all seeded accounts share one hash; hashing per user makes big seeds slow
	passwordHash string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	return &Factory{db: db, passwordHash: string(hash)}
}

// CreateUser persists a fake user with a unique username and email.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	username := strings.ToLower(gofakeit.Username())
	user := models.NewUser(
		fmt.Sprintf("%s_%d", username, gofakeit.Number(1, 9999)),
		gofakeit.Email(),
		f.passwordHash,
		fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
	)
	user.Bio = gofakeit.Sentence(8)
	user.Location = gofakeit.City()

	for _, o := range overrides {
		o(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateMessage persists a fake message for the user with a realistic
// created_at spread over the last 90 days.
func (f *Factory) CreateMessage(user *models.User, overrides ...func(*models.Message)) (*models.Message, error) {
	text := gofakeit.Sentence(gofakeit.Number(3, 12))
	if len(text) > models.MaxMessageLen {
		text = text[:models.MaxMessageLen]
	}

	message := &models.Message{
		Text:      text,
		UserID:    user.ID,
		CreatedAt: time.Now().Add(-time.Duration(rand.Intn(90*24)) * time.Hour),
	}

	for _, o := range overrides {
		o(message)
	}

	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// Follow creates the follower → followee edge, ignoring duplicates.
func (f *Factory) Follow(follower, followee *models.User) error {
	edge := models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}
	err := f.db.Create(&edge).Error
	if err != nil && isDuplicate(err) {
		return nil
	}
	return err
}

// Like creates the user → message edge, ignoring duplicates.
func (f *Factory) Like(user *models.User, message *models.Message) error {
	edge := models.Like{UserID: user.ID, MessageID: message.ID}
	err := f.db.Create(&edge).Error
	if err != nil && isDuplicate(err) {
		return nil
	}
	return err
}

func isDuplicate(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
