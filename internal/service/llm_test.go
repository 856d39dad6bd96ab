package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/types"
)

// fakeCompletionServer answers every chat-completions request with the given
// recipe JSON.
func fakeCompletionServer(t *testing.T, recipeJSON string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Contains(t, r.Header.Get("Authorization"), "Bearer ")

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": recipeJSON}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestLLMService(apiURL string) *LLMService {
	return &LLMService{
		apiKey: "test-key",
		apiURL: apiURL,
		model:  "test-model",
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestGenerateRecipe(t *testing.T) {
	recipeJSON := `{
		"title": "Lemon Pasta",
		"description": "Bright and simple",
		"servings": 2,
		"prepTime": 10,
		"cookTime": 15,
		"ingredients": ["200g spaghetti", "1 lemon", ""],
		"instructions": ["Boil pasta", "Toss with lemon"],
		"tags": ["pasta", "quick"],
		"difficulty": "EASY",
		"nutrition": {"calories": 450, "protein": 12, "carbs": 80, "fat": 8}
	}`
	server := fakeCompletionServer(t, recipeJSON)
	svc := newTestLLMService(server.URL)

	recipe, err := svc.GenerateRecipe(testCtx, &types.GenerateRecipeRequest{
		Ingredients: "spaghetti, lemon",
		Cuisine:     "italian",
	})
	require.NoError(t, err)

	assert.Equal(t, "Lemon Pasta", recipe.Title)
	assert.Equal(t, 2, recipe.Servings)
	// Difficulty is normalized and blank ingredient entries are dropped.
	assert.Equal(t, "easy", recipe.Difficulty)
	assert.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, 450.0, recipe.Nutrition.Calories)
}

func TestGenerateRecipeNewlineIngredients(t *testing.T) {
	recipeJSON := `{
		"title": "Flatbread",
		"servings": 4,
		"ingredients": "2 cups flour\n1 cup water\n\n",
		"instructions": ["Mix", "Bake"],
		"difficulty": "medium"
	}`
	server := fakeCompletionServer(t, recipeJSON)
	svc := newTestLLMService(server.URL)

	recipe, err := svc.GenerateRecipe(testCtx, &types.GenerateRecipeRequest{Ingredients: "flour"})
	require.NoError(t, err)
	assert.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, "2 cups flour", recipe.Ingredients[0])
}

func TestGenerateRecipeRejectsIncompleteResponse(t *testing.T) {
	server := fakeCompletionServer(t, `{"title": "", "ingredients": ["x"], "instructions": ["y"]}`)
	svc := newTestLLMService(server.URL)

	_, err := svc.GenerateRecipe(testCtx, &types.GenerateRecipeRequest{Ingredients: "x"})
	assert.Error(t, err)
}

func TestGenerateRecipeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)
	svc := newTestLLMService(server.URL)

	_, err := svc.GenerateRecipe(testCtx, &types.GenerateRecipeRequest{Ingredients: "x"})
	assert.Error(t, err)
}

func TestValidateGeneratedCoercesDifficultyAndServings(t *testing.T) {
	recipe := &GeneratedRecipe{
		Title:        "Mystery Dish",
		Ingredients:  []string{"a"},
		Instructions: []string{"b"},
		Difficulty:   "impossible",
	}
	require.NoError(t, validateGenerated(recipe))
	assert.Equal(t, "medium", recipe.Difficulty)
	assert.Equal(t, 1, recipe.Servings)
}
