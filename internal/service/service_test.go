package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/plateful/backend/internal/models"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.RecipeLike{},
		&models.RecipeBookmark{},
		&models.MealSlot{},
	))

	return db
}

// createTestUser inserts a user and returns it.
func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := models.User{
		Name:         "Test User",
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// createTestRecipe inserts a recipe owned by the given user.
func createTestRecipe(t *testing.T, db *gorm.DB, authorID uuid.UUID, title string, ingredients []string) *models.Recipe {
	t.Helper()

	recipe := models.Recipe{
		Title:        title,
		Description:  "test recipe",
		Ingredients:  ingredients,
		Instructions: []string{"step 1"},
		AuthorID:     authorID,
	}
	recipe.Embedding = GenerateEmbedding(recipe.Title + " " + recipe.Description)
	require.NoError(t, db.Create(&recipe).Error)
	return &recipe
}

func newTestRecipeService(t *testing.T) (*RecipeService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewRecipeService(db), db
}

var testCtx = context.Background()
