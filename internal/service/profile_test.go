package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/types"
)

func TestGetProfileCountsActivity(t *testing.T) {
	db := setupTestDB(t)
	profiles := NewProfileService(db)
	recipes := NewRecipeService(db)

	user := createTestUser(t, db)
	other := createTestUser(t, db)

	mine := createTestRecipe(t, db, user.ID, "Pancakes", []string{"flour"})
	createTestRecipe(t, db, user.ID, "Omelette", []string{"eggs"})
	theirs := createTestRecipe(t, db, other.ID, "Stew", []string{"beef"})

	require.NoError(t, recipes.LikeRecipe(testCtx, user.ID, theirs.ID))
	require.NoError(t, recipes.BookmarkRecipe(testCtx, user.ID, theirs.ID))
	require.NoError(t, recipes.BookmarkRecipe(testCtx, user.ID, mine.ID))

	got, stats, err := profiles.GetProfile(testCtx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, int64(2), stats.Recipes)
	assert.Equal(t, int64(1), stats.Likes)
	assert.Equal(t, int64(2), stats.Bookmarks)

	// The other user's counts are unaffected.
	_, otherStats, err := profiles.GetProfile(testCtx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), otherStats.Recipes)
	assert.Equal(t, int64(0), otherStats.Likes)
	assert.Equal(t, int64(0), otherStats.Bookmarks)
}

func TestGetProfileUnknownUser(t *testing.T) {
	profiles := NewProfileService(setupTestDB(t))

	_, _, err := profiles.GetProfile(testCtx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	profiles := NewProfileService(db)
	user := createTestUser(t, db)

	updated, err := profiles.UpdateProfile(testCtx, user.ID, &types.UpdateProfileRequest{Name: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, user.Email, updated.Email)

	updated, err = profiles.UpdateProfile(testCtx, user.ID, &types.UpdateProfileRequest{Email: "fresh@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "fresh@example.com", updated.Email)
}

func TestUpdateProfileRejectsTakenEmail(t *testing.T) {
	db := setupTestDB(t)
	profiles := NewProfileService(db)
	user := createTestUser(t, db)
	other := createTestUser(t, db)

	_, err := profiles.UpdateProfile(testCtx, user.ID, &types.UpdateProfileRequest{Email: other.Email})
	assert.ErrorIs(t, err, ErrValidation)

	// Re-submitting your own email is a no-op, not a conflict.
	updated, err := profiles.UpdateProfile(testCtx, user.ID, &types.UpdateProfileRequest{Email: user.Email})
	require.NoError(t, err)
	assert.Equal(t, user.Email, updated.Email)
}

func TestUpdateProfileRequiresAField(t *testing.T) {
	db := setupTestDB(t)
	profiles := NewProfileService(db)
	user := createTestUser(t, db)

	_, err := profiles.UpdateProfile(testCtx, user.ID, &types.UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}
