package repository

import (
	"context"
	"testing"

	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryCreateAndGet(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := models.NewUser("test", "test@test.com", "hash", "")
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "test", got.Username)
	assert.Equal(t, models.DefaultImageURL, got.ImageURL)

	byName, err := repo.GetByUsername(ctx, "test")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := repo.GetByEmail(ctx, "test@test.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserRepositoryMissingLookups(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 999999)
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	user, err := repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = repo.GetByEmail(ctx, "nobody@test.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepositoryUniqueConstraints(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.NewUser("test", "test@test.com", "hash", "")))

	err := repo.Create(ctx, models.NewUser("test", "other@test.com", "hash", ""))
	assert.True(t, models.IsCode(err, models.CodeConflict), "duplicate username must conflict, got %v", err)

	err = repo.Create(ctx, models.NewUser("other", "test@test.com", "hash", ""))
	assert.True(t, models.IsCode(err, models.CodeConflict), "duplicate email must conflict, got %v", err)

	// The failed writes rolled back; only the first user exists.
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUserRepositorySearch(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for _, name := range []string{"alice", "malice", "bob"} {
		require.NoError(t, repo.Create(ctx, models.NewUser(name, name+"@test.com", "hash", "")))
	}

	users, err := repo.Search(ctx, "lice", 10, 0)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "malice", users[1].Username)

	all, err := repo.Search(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := repo.Search(ctx, "zzz", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
