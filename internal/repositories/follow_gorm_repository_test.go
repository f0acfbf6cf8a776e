package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/GraceInCode/odin-book/internal/apperrors"
	"github.com/GraceInCode/odin-book/internal/models"
	"github.com/GraceInCode/odin-book/internal/repositories"
)

// setupTestDB opens a per-test in-memory SQLite database with the full
// schema. TranslateError is on, matching production, so unique-index
// violations surface as gorm.ErrDuplicatedKey.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
	))
	return db
}

// seedUser inserts a user and returns its ID.
func seedUser(t *testing.T, db *gorm.DB, username string) string {
	t.Helper()
	u := &models.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(u).Error)
	return u.ID
}

func TestFollowRepository_CreateDuplicatePair(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMFollowRepository(db)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")

	require.NoError(t, repo.Create(ctx, a, b))

	// Second edge for the same pair trips the composite unique index.
	err := repo.Create(ctx, a, b)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// The reverse direction is a distinct pair.
	assert.NoError(t, repo.Create(ctx, b, a))

	var cnt int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&cnt).Error)
	assert.Equal(t, int64(2), cnt)
}

func TestFollowRepository_ResolveIsConditional(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMFollowRepository(db)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")

	// Resolving before any request exists mutates nothing.
	err := repo.UpdateStatusIfPending(ctx, a, b, models.FollowStatusAccepted)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, repo.Create(ctx, a, b))
	require.NoError(t, repo.UpdateStatusIfPending(ctx, a, b, models.FollowStatusAccepted))

	var edge models.Follow
	require.NoError(t, db.First(&edge, "follower_id = ? AND followed_id = ?", a, b).Error)
	assert.Equal(t, models.FollowStatusAccepted, edge.Status)

	// ACCEPTED is terminal: a second resolve finds no pending edge and
	// leaves the status untouched.
	err = repo.UpdateStatusIfPending(ctx, a, b, models.FollowStatusRejected)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	require.NoError(t, db.First(&edge, "follower_id = ? AND followed_id = ?", a, b).Error)
	assert.Equal(t, models.FollowStatusAccepted, edge.Status)
}

func TestFollowRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMFollowRepository(db)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")

	require.NoError(t, repo.Create(ctx, a, b))
	require.NoError(t, repo.Delete(ctx, a, b))

	// The pair is free again after deletion.
	assert.NoError(t, repo.Create(ctx, a, b))
	require.NoError(t, repo.Delete(ctx, a, b))

	assert.ErrorIs(t, repo.Delete(ctx, a, b), apperrors.ErrNotFound)
}

func TestFollowRepository_Listings(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMFollowRepository(db)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")
	c := seedUser(t, db, "carol")

	// alice -> bob accepted, carol -> bob pending, alice -> carol pending.
	require.NoError(t, repo.Create(ctx, a, b))
	require.NoError(t, repo.UpdateStatusIfPending(ctx, a, b, models.FollowStatusAccepted))
	require.NoError(t, repo.Create(ctx, c, b))
	require.NoError(t, repo.Create(ctx, a, c))

	pending, err := repo.ListPending(ctx, b)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, c, pending[0].FollowerID)
	require.NotNil(t, pending[0].Follower)
	assert.Equal(t, "carol", pending[0].Follower.Username)

	ids, err := repo.ListAcceptedFollowingIDs(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []string{b}, ids)

	followers, err := repo.ListAcceptedFollowers(ctx, b)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, a, followers[0].FollowerID)

	outgoing, err := repo.ListByFollower(ctx, a)
	require.NoError(t, err)
	assert.Len(t, outgoing, 2)
}
