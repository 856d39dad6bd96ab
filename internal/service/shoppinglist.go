package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ShoppingListItem is one checklist line derived from a planned meal. Items
// are computed fresh on every request and never persisted; the checked state
// lives only in the client.
type ShoppingListItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Quantity   string    `json:"quantity"`
	Checked    bool      `json:"checked"`
	Category   string    `json:"category"`
	RecipeID   uuid.UUID `json:"recipe_id"`
	RecipeName string    `json:"recipe_name"`
}

// Ingredient quantities are not parsed out of the line text and no
// content-based categorization is performed; every item lands in one bucket.
const (
	defaultQuantity = "1"
	defaultCategory = "Other"
)

// ShoppingListService derives the weekly ingredient checklist from the
// planner.
type ShoppingListService struct {
	plans   *MealPlanService
	recipes *RecipeService
}

// NewShoppingListService creates a new ShoppingListService instance
func NewShoppingListService(plans *MealPlanService, recipes *RecipeService) *ShoppingListService {
	return &ShoppingListService{
		plans:   plans,
		recipes: recipes,
	}
}

// Generate flattens the ingredients of every meal planned in the week
// containing reference into a single checklist. The reference date is an
// explicit parameter so callers decide which week the list reflects; the
// HTTP handler defaults it to "now".
//
// Slots whose recipe has been deleted contribute nothing rather than failing
// the whole list. The operation is read-only and idempotent: only the
// initial slot listing can fail it.
func (s *ShoppingListService) Generate(ctx context.Context, userID uuid.UUID, reference time.Time) ([]ShoppingListItem, error) {
	start, end := ResolveWeek(reference)

	slots, err := s.plans.ListRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal slots: %w", err)
	}

	items := make([]ShoppingListItem, 0, len(slots)*4)
	for _, slot := range slots {
		recipe, err := s.recipes.GetRecipe(ctx, slot.RecipeID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}

		// Ingredients arrive normalized as a list; blanks are already
		// filtered at the model boundary.
		for i, line := range recipe.Ingredients {
			items = append(items, ShoppingListItem{
				ID:         fmt.Sprintf("%s-%d", slot.ID, i),
				Name:       line,
				Quantity:   defaultQuantity,
				Checked:    false,
				Category:   defaultCategory,
				RecipeID:   recipe.ID,
				RecipeName: recipe.Title,
			})
		}
	}

	return items, nil
}
