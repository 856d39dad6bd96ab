package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/types"
)

func TestMealPlanEndpointsRequireAuth(t *testing.T) {
	env := setupTestEnv(t)

	assert.Equal(t, http.StatusUnauthorized,
		performRequest(env.Router, "GET", "/api/v1/meal-plans", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized,
		performRequest(env.Router, "POST", "/api/v1/meal-plans", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized,
		performRequest(env.Router, "GET", "/api/v1/shopping-list", "", nil).Code)
}

func TestCreateAndListMealPlans(t *testing.T) {
	env := setupTestEnv(t)
	userID, token := createTestUserAndToken(t, env)
	recipe := createTestRecipe(t, env, userID, "Stew", []string{"1 kg beef"})

	w := performRequest(env.Router, "POST", "/api/v1/meal-plans", token, types.CreateMealSlotRequest{
		Day:        "Wednesday",
		MealType:   "dinner",
		RecipeID:   recipe.ID.String(),
		PlannedFor: "2024-01-03",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	w = performRequest(env.Router, "GET", "/api/v1/meal-plans?start=2024-01-01&end=2024-01-07", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	plans, ok := body["mealPlans"].([]interface{})
	require.True(t, ok)
	require.Len(t, plans, 1)

	plan := plans[0].(map[string]interface{})
	assert.Equal(t, "Wednesday", plan["day"])
	assert.Equal(t, "dinner", plan["meal_type"])
	recipeBody, ok := plan["recipe"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Stew", recipeBody["title"])
}

func TestCreateMealPlanValidation(t *testing.T) {
	env := setupTestEnv(t)
	userID, token := createTestUserAndToken(t, env)
	recipe := createTestRecipe(t, env, userID, "Stew", []string{"1 kg beef"})

	tests := []struct {
		name string
		req  types.CreateMealSlotRequest
		want int
	}{
		{
			name: "unrecognized day",
			req:  types.CreateMealSlotRequest{Day: "Funday", MealType: "dinner", RecipeID: recipe.ID.String(), PlannedFor: "2024-01-03"},
			want: http.StatusBadRequest,
		},
		{
			name: "unrecognized meal type",
			req:  types.CreateMealSlotRequest{Day: "Monday", MealType: "brunch", RecipeID: recipe.ID.String(), PlannedFor: "2024-01-03"},
			want: http.StatusBadRequest,
		},
		{
			name: "malformed recipe id",
			req:  types.CreateMealSlotRequest{Day: "Monday", MealType: "dinner", RecipeID: "nope", PlannedFor: "2024-01-03"},
			want: http.StatusBadRequest,
		},
		{
			name: "malformed date",
			req:  types.CreateMealSlotRequest{Day: "Monday", MealType: "dinner", RecipeID: recipe.ID.String(), PlannedFor: "January 3rd"},
			want: http.StatusBadRequest,
		},
		{
			name: "missing recipe",
			req:  types.CreateMealSlotRequest{Day: "Monday", MealType: "dinner", RecipeID: "00000000-0000-0000-0000-000000000009", PlannedFor: "2024-01-03"},
			want: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(env.Router, "POST", "/api/v1/meal-plans", token, tt.req)
			assert.Equal(t, tt.want, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestAssigningOccupiedSlotOverwrites(t *testing.T) {
	env := setupTestEnv(t)
	userID, token := createTestUserAndToken(t, env)
	stew := createTestRecipe(t, env, userID, "Stew", []string{"1 kg beef"})
	curry := createTestRecipe(t, env, userID, "Curry", []string{"1 can coconut milk"})

	for _, id := range []string{stew.ID.String(), curry.ID.String()} {
		w := performRequest(env.Router, "POST", "/api/v1/meal-plans", token, types.CreateMealSlotRequest{
			Day:        "Monday",
			MealType:   "dinner",
			RecipeID:   id,
			PlannedFor: "2024-01-01",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := performRequest(env.Router, "GET", "/api/v1/meal-plans?start=2024-01-01&end=2024-01-07", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	plans := decodeBody(t, w)["mealPlans"].([]interface{})
	require.Len(t, plans, 1)
	assert.Equal(t, curry.ID.String(), plans[0].(map[string]interface{})["recipe_id"])
}

func TestDeleteMealPlanOwnership(t *testing.T) {
	env := setupTestEnv(t)
	userID, token := createTestUserAndToken(t, env)
	_, strangerToken := createTestUserAndToken(t, env)
	recipe := createTestRecipe(t, env, userID, "Stew", []string{"1 kg beef"})

	w := performRequest(env.Router, "POST", "/api/v1/meal-plans", token, types.CreateMealSlotRequest{
		Day:        "Monday",
		MealType:   "dinner",
		RecipeID:   recipe.ID.String(),
		PlannedFor: "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	slotID := decodeBody(t, w)["mealPlan"].(map[string]interface{})["id"].(string)

	assert.Equal(t, http.StatusForbidden,
		performRequest(env.Router, "DELETE", "/api/v1/meal-plans/"+slotID, strangerToken, nil).Code)

	assert.Equal(t, http.StatusOK,
		performRequest(env.Router, "DELETE", "/api/v1/meal-plans/"+slotID, token, nil).Code)

	assert.Equal(t, http.StatusNotFound,
		performRequest(env.Router, "DELETE", "/api/v1/meal-plans/"+slotID, token, nil).Code)
}

func TestShoppingListEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	userID, token := createTestUserAndToken(t, env)
	recipe := createTestRecipe(t, env, userID, "Pasta", []string{"2 cups flour", "3 eggs"})

	w := performRequest(env.Router, "POST", "/api/v1/meal-plans", token, types.CreateMealSlotRequest{
		Day:        "Monday",
		MealType:   "dinner",
		RecipeID:   recipe.ID.String(),
		PlannedFor: "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(env.Router, "GET", "/api/v1/shopping-list?date=2024-01-03", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decodeBody(t, w)["items"].([]interface{})
	require.Len(t, items, 2)

	first := items[0].(map[string]interface{})
	assert.Equal(t, "2 cups flour", first["name"])
	assert.Equal(t, "Pasta", first["recipe_name"])
	assert.Equal(t, false, first["checked"])

	// A week with no planned meals yields an empty list, not an error.
	w = performRequest(env.Router, "GET", "/api/v1/shopping-list?date=2024-06-01", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["items"])

	// Malformed date is rejected.
	w = performRequest(env.Router, "GET", "/api/v1/shopping-list?date=tomorrow", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
