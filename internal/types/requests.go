package types

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries the editable account fields. Blank fields are
// left untouched.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

// CreateMealSlotRequest assigns a recipe to a slot in the weekly planner.
// PlannedFor is an ISO-8601 date or timestamp; only the calendar date is kept.
type CreateMealSlotRequest struct {
	Day        string `json:"day"`
	MealType   string `json:"mealType"`
	RecipeID   string `json:"recipeId"`
	PlannedFor string `json:"plannedFor"`
}

// GenerateRecipeRequest carries the constraints forwarded to the AI endpoint.
type GenerateRecipeRequest struct {
	Ingredients         string `json:"ingredients" binding:"required"`
	Cuisine             string `json:"cuisine"`
	DietaryRestrictions string `json:"dietaryRestrictions"`
	CookingTime         string `json:"cookingTime"`
	Difficulty          string `json:"difficulty"`
}
