package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/models"
)

func TestCreateAndGetRecipe(t *testing.T) {
	recipes, db := newTestRecipeService(t)
	user := createTestUser(t, db)

	created, err := recipes.CreateRecipe(testCtx, &models.Recipe{
		Title:        "Omelette",
		Description:  "Quick breakfast",
		Ingredients:  []string{"3 eggs", "butter"},
		Instructions: []string{"Whisk", "Fry"},
		AuthorID:     user.ID,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	found, err := recipes.GetRecipe(testCtx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Omelette", found.Title)
	assert.Equal(t, models.StringList{"3 eggs", "butter"}, found.Ingredients)

	_, err = recipes.GetRecipe(testCtx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRecipeValidation(t *testing.T) {
	recipes, db := newTestRecipeService(t)
	user := createTestUser(t, db)

	_, err := recipes.CreateRecipe(testCtx, &models.Recipe{
		Ingredients:  []string{"3 eggs"},
		Instructions: []string{"Fry"},
		AuthorID:     user.ID,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = recipes.CreateRecipe(testCtx, &models.Recipe{
		Title:        "No ingredients",
		Instructions: []string{"Fry"},
		AuthorID:     user.ID,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListRecentAndPopular(t *testing.T) {
	recipes, db := newTestRecipeService(t)
	user := createTestUser(t, db)

	a := createTestRecipe(t, db, user.ID, "A", []string{"x"})
	b := createTestRecipe(t, db, user.ID, "B", []string{"y"})

	require.NoError(t, db.Model(&models.Recipe{}).Where("id = ?", a.ID).UpdateColumn("likes", 5).Error)

	popular, err := recipes.ListPopular(testCtx, 10)
	require.NoError(t, err)
	require.NotEmpty(t, popular)
	assert.Equal(t, a.ID, popular[0].ID)

	recent, err := recipes.ListRecent(testCtx, 1, 0)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	_ = b
}

func TestSearchRecipesKeywordFallback(t *testing.T) {
	recipes, db := newTestRecipeService(t)
	user := createTestUser(t, db)

	createTestRecipe(t, db, user.ID, "Garlic Bread", []string{"bread", "garlic"})
	createTestRecipe(t, db, user.ID, "Fruit Salad", []string{"apple"})

	found, err := recipes.SearchRecipes(testCtx, "garlic", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Garlic Bread", found[0].Title)
}

func TestLikeAndUnlikeRecipe(t *testing.T) {
	recipes, db := newTestRecipeService(t)
	user := createTestUser(t, db)
	recipe := createTestRecipe(t, db, user.ID, "Tart", []string{"pastry"})

	require.NoError(t, recipes.LikeRecipe(testCtx, user.ID, recipe.ID))

	found, err := recipes.GetRecipe(testCtx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.Likes)

	// Double like is rejected and the counter stays put.
	err = recipes.LikeRecipe(testCtx, user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrValidation)

	found, err = recipes.GetRecipe(testCtx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.Likes)

	require.NoError(t, recipes.UnlikeRecipe(testCtx, user.ID, recipe.ID))

	found, err = recipes.GetRecipe(testCtx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, found.Likes)

	assert.ErrorIs(t, recipes.UnlikeRecipe(testCtx, user.ID, recipe.ID), ErrNotFound)
}

func TestBookmarkLifecycle(t *testing.T) {
	recipes, db := newTestRecipeService(t)
	user := createTestUser(t, db)
	recipe := createTestRecipe(t, db, user.ID, "Pie", []string{"apples"})

	require.NoError(t, recipes.BookmarkRecipe(testCtx, user.ID, recipe.ID))
	assert.ErrorIs(t, recipes.BookmarkRecipe(testCtx, user.ID, recipe.ID), ErrValidation)

	bookmarks, err := recipes.ListBookmarks(testCtx, user.ID)
	require.NoError(t, err)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, "Pie", bookmarks[0].Recipe.Title)

	require.NoError(t, recipes.UnbookmarkRecipe(testCtx, user.ID, recipe.ID))

	bookmarks, err = recipes.ListBookmarks(testCtx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, bookmarks)
}

func TestListBookmarksSkipsDeletedRecipes(t *testing.T) {
	recipes, db := newTestRecipeService(t)
	user := createTestUser(t, db)
	recipe := createTestRecipe(t, db, user.ID, "Ephemeral", []string{"ice"})

	require.NoError(t, recipes.BookmarkRecipe(testCtx, user.ID, recipe.ID))
	require.NoError(t, recipes.DeleteRecipe(testCtx, recipe.ID, user.ID))

	bookmarks, err := recipes.ListBookmarks(testCtx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, bookmarks)
}

func TestDeleteRecipeOwnership(t *testing.T) {
	recipes, db := newTestRecipeService(t)
	author := createTestUser(t, db)
	stranger := createTestUser(t, db)
	recipe := createTestRecipe(t, db, author.ID, "Private", []string{"secret sauce"})

	assert.ErrorIs(t, recipes.DeleteRecipe(testCtx, recipe.ID, stranger.ID), ErrForbidden)

	// Still there.
	_, err := recipes.GetRecipe(testCtx, recipe.ID)
	require.NoError(t, err)

	require.NoError(t, recipes.DeleteRecipe(testCtx, recipe.ID, author.ID))
	_, err = recipes.GetRecipe(testCtx, recipe.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecommendFallsBackToPopular(t *testing.T) {
	recipes, db := newTestRecipeService(t)
	user := createTestUser(t, db)

	a := createTestRecipe(t, db, user.ID, "Hit", []string{"x"})
	createTestRecipe(t, db, user.ID, "Miss", []string{"y"})
	require.NoError(t, db.Model(&models.Recipe{}).Where("id = ?", a.ID).UpdateColumn("likes", 9).Error)

	// SQLite has no vector ordering, so recommendations degrade to popularity.
	recommended, err := recipes.Recommend(testCtx, user.ID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, recommended)
	assert.Equal(t, "Hit", recommended[0].Title)
}
