package service

import (
	"context"
	"testing"

	"warbler/internal/cache"
	"warbler/internal/database"
	"warbler/internal/models"
	"warbler/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupCache backs the cache package with a miniredis instance. The client is
// process-global, so tests using this must not run in parallel.
func setupCache(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })
}

type testEnv struct {
	db       *gorm.DB
	users    repository.UserRepository
	messages repository.MessageRepository
	follows  repository.FollowRepository
	likes    repository.LikeRepository
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	return &testEnv{
		db:       db,
		users:    repository.NewUserRepository(db),
		messages: repository.NewMessageRepository(db),
		follows:  repository.NewFollowRepository(db),
		likes:    repository.NewLikeRepository(db),
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := models.NewUser(username, username+"@test.com", "hash", "")
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func (e *testEnv) createMessage(t *testing.T, userID uint, text string) *models.Message {
	t.Helper()
	msg := &models.Message{Text: text, UserID: userID}
	require.NoError(t, e.messages.Create(context.Background(), msg))
	return msg
}
