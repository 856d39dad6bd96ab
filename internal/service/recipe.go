package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plateful/backend/internal/models"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe persists a new recipe. Ingredient and instruction lists are
// already normalized by the model layer; the embedding is derived here so
// every creation path gets one.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if recipe.Title == "" || len(recipe.Ingredients) == 0 || len(recipe.Instructions) == 0 {
		return nil, fmt.Errorf("%w: title, ingredients and instructions are required", ErrValidation)
	}
	recipe.Embedding = GenerateEmbedding(recipe.Title + " " + recipe.Description)
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe", ErrNotFound)
		}
		return nil, err
	}
	return &recipe, nil
}

// ListRecent returns recipes ordered by creation time, newest first.
func (s *RecipeService) ListRecent(ctx context.Context, limit, offset int) ([]*models.Recipe, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return asPointers(recipes), nil
}

// ListPopular returns recipes ordered by like count.
func (s *RecipeService) ListPopular(ctx context.Context, limit int) ([]*models.Recipe, error) {
	if limit <= 0 {
		limit = 10
	}

	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Order("likes DESC").
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return asPointers(recipes), nil
}

// SearchRecipes orders results by embedding distance to the query on
// PostgreSQL, falling back to keyword matching elsewhere.
func (s *RecipeService) SearchRecipes(ctx context.Context, query string, limit int) ([]*models.Recipe, error) {
	if limit <= 0 {
		limit = 20
	}

	dbQuery := s.db.WithContext(ctx)
	if query != "" {
		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(query)
			dbQuery = dbQuery.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
			})
		} else {
			like := "%" + strings.ToLower(query) + "%"
			dbQuery = dbQuery.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
		}
	}

	var recipes []models.Recipe
	if err := dbQuery.Limit(limit).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return asPointers(recipes), nil
}

// Recommend returns recipes closest to the user's recent tastes: ordered by
// embedding distance to the user's latest bookmarked recipe on PostgreSQL,
// with a popularity fallback when no signal exists.
func (s *RecipeService) Recommend(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Recipe, error) {
	if limit <= 0 {
		limit = 10
	}

	if s.db.Dialector.Name() == "postgres" {
		var bookmark models.RecipeBookmark
		err := s.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("created_at DESC").
			First(&bookmark).Error
		if err == nil {
			var seed models.Recipe
			if err := s.db.WithContext(ctx).First(&seed, "id = ?", bookmark.RecipeID).Error; err == nil {
				var recipes []models.Recipe
				err := s.db.WithContext(ctx).
					Where("id <> ?", seed.ID).
					Clauses(clause.OrderBy{
						Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{seed.Embedding}},
					}).
					Limit(limit).
					Find(&recipes).Error
				if err != nil {
					return nil, err
				}
				return asPointers(recipes), nil
			}
		}
	}

	return s.ListPopular(ctx, limit)
}

// DeleteRecipe removes a recipe. Only the author may delete it.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, userID uuid.UUID) error {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	if recipe.AuthorID != userID {
		return fmt.Errorf("%w: recipe belongs to another user", ErrForbidden)
	}
	return s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id).Error
}

// LikeRecipe records a like and bumps the denormalized counter. Liking the
// same recipe twice is a validation error, mirroring the unique index.
func (s *RecipeService) LikeRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	if _, err := s.GetRecipe(ctx, recipeID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.RecipeLike{}).
			Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: recipe already liked", ErrValidation)
		}

		if err := tx.Create(&models.RecipeLike{UserID: userID, RecipeID: recipeID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Recipe{}).
			Where("id = ?", recipeID).
			UpdateColumn("likes", gorm.Expr("likes + 1")).Error
	})
}

// UnlikeRecipe removes a like and decrements the counter.
func (s *RecipeService) UnlikeRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.RecipeLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: like", ErrNotFound)
		}
		return tx.Model(&models.Recipe{}).
			Where("id = ? AND likes > 0", recipeID).
			UpdateColumn("likes", gorm.Expr("likes - 1")).Error
	})
}

// BookmarkRecipe saves a recipe to the user's collection and bumps the counter.
func (s *RecipeService) BookmarkRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	if _, err := s.GetRecipe(ctx, recipeID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.RecipeBookmark{}).
			Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: recipe already bookmarked", ErrValidation)
		}

		if err := tx.Create(&models.RecipeBookmark{UserID: userID, RecipeID: recipeID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Recipe{}).
			Where("id = ?", recipeID).
			UpdateColumn("bookmarks", gorm.Expr("bookmarks + 1")).Error
	})
}

// UnbookmarkRecipe removes a bookmark and decrements the counter.
func (s *RecipeService) UnbookmarkRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.RecipeBookmark{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: bookmark", ErrNotFound)
		}
		return tx.Model(&models.Recipe{}).
			Where("id = ? AND bookmarks > 0", recipeID).
			UpdateColumn("bookmarks", gorm.Expr("bookmarks - 1")).Error
	})
}

// BookmarkedRecipe pairs a bookmark with its resolved recipe.
type BookmarkedRecipe struct {
	ID           uuid.UUID      `json:"id"`
	Recipe       *models.Recipe `json:"recipe"`
	BookmarkedAt string         `json:"bookmarked_at"`
}

// ListBookmarks returns the user's bookmarks joined to their recipes,
// newest first. Bookmarks whose recipe has been deleted are skipped.
func (s *RecipeService) ListBookmarks(ctx context.Context, userID uuid.UUID) ([]*BookmarkedRecipe, error) {
	var bookmarks []models.RecipeBookmark
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, err
	}

	result := make([]*BookmarkedRecipe, 0, len(bookmarks))
	for _, b := range bookmarks {
		recipe, err := s.GetRecipe(ctx, b.RecipeID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		result = append(result, &BookmarkedRecipe{
			ID:           b.ID,
			Recipe:       recipe,
			BookmarkedAt: b.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return result, nil
}

func asPointers(recipes []models.Recipe) []*models.Recipe {
	result := make([]*models.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result
}
