package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
)

// MealPlanService handles weekly planner slot operations.
type MealPlanService struct {
	db      *gorm.DB
	recipes *RecipeService
}

// NewMealPlanService creates a new MealPlanService instance
func NewMealPlanService(db *gorm.DB, recipes *RecipeService) *MealPlanService {
	return &MealPlanService{
		db:      db,
		recipes: recipes,
	}
}

// PlannedMeal pairs a slot with its resolved recipe for display.
type PlannedMeal struct {
	models.MealSlot
	Recipe *models.Recipe `json:"recipe"`
}

// CreateSlot assigns a recipe to a planner slot. All fields are required and
// the recipe must exist. At most one slot may occupy a given
// (user, week, day, mealType) tuple: assigning to an occupied slot overwrites
// the recipe in place instead of creating a duplicate.
func (s *MealPlanService) CreateSlot(ctx context.Context, userID uuid.UUID, day, mealType string, recipeID uuid.UUID, plannedFor time.Time) (*models.MealSlot, error) {
	if day == "" || mealType == "" || recipeID == uuid.Nil || plannedFor.IsZero() {
		return nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if !models.ValidDay(day) {
		return nil, fmt.Errorf("%w: unrecognized day %q", ErrValidation, day)
	}
	if !models.ValidMealType(mealType) {
		return nil, fmt.Errorf("%w: unrecognized meal type %q", ErrValidation, mealType)
	}

	if _, err := s.recipes.GetRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	plannedFor = TruncateToDate(plannedFor)
	weekStart, weekEnd := ResolveWeek(plannedFor)

	// Upsert by composite key: one slot per (user, week, day, mealType).
	var existing models.MealSlot
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND day = ? AND meal_type = ?", userID, day, mealType).
		Where("planned_for BETWEEN ? AND ?", weekStart, weekEnd).
		First(&existing).Error
	if err == nil {
		existing.RecipeID = recipeID
		existing.PlannedFor = plannedFor
		if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	slot := models.MealSlot{
		UserID:     userID,
		Day:        day,
		MealType:   mealType,
		RecipeID:   recipeID,
		PlannedFor: plannedFor,
	}
	if err := s.db.WithContext(ctx).Create(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// ListRange returns all of the user's slots whose plannedFor date falls in
// [start, end] inclusive. Dates are compared as dates, not strings.
func (s *MealPlanService) ListRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.MealSlot, error) {
	var slots []models.MealSlot
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("planned_for BETWEEN ? AND ?", TruncateToDate(start), TruncateToDate(end)).
		Order("planned_for, created_at").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// ListRangeWithRecipes returns the slots in range joined to their recipes.
// Slots whose recipe no longer exists are dropped rather than failing the
// listing.
func (s *MealPlanService) ListRangeWithRecipes(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]PlannedMeal, error) {
	slots, err := s.ListRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	meals := make([]PlannedMeal, 0, len(slots))
	for _, slot := range slots {
		recipe, err := s.recipes.GetRecipe(ctx, slot.RecipeID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		meals = append(meals, PlannedMeal{MealSlot: slot, Recipe: recipe})
	}
	return meals, nil
}

// DeleteSlot removes a slot permanently. The slot must exist and belong to
// the requesting user.
func (s *MealPlanService) DeleteSlot(ctx context.Context, id, userID uuid.UUID) error {
	var slot models.MealSlot
	if err := s.db.WithContext(ctx).First(&slot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: meal slot", ErrNotFound)
		}
		return err
	}

	if slot.UserID != userID {
		return fmt.Errorf("%w: meal slot belongs to another user", ErrForbidden)
	}

	return s.db.WithContext(ctx).Delete(&models.MealSlot{}, "id = ?", id).Error
}
