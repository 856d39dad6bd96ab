package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/types"
)

// GeneratedRecipe is the fixed schema the AI endpoint must return.
type GeneratedRecipe struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Servings     int               `json:"servings"`
	PrepTime     int               `json:"prepTime"`
	CookTime     int               `json:"cookTime"`
	Ingredients  models.StringList `json:"ingredients"`
	Instructions models.StringList `json:"instructions"`
	Tags         models.StringList `json:"tags"`
	Difficulty   string            `json:"difficulty"`
	Nutrition    Nutrition         `json:"nutrition"`
}

// Nutrition holds the macronutrient estimate attached to a generated recipe.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// RecipeDraft is a generated recipe cached in Redis before the user decides
// to save it.
type RecipeDraft struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
	Recipe    GeneratedRecipe `json:"recipe"`
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body for the chat-completions endpoint.
type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

// LLMService handles interactions with the recipe-generation API
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
	redis  *redis.Client
}

// NewLLMService creates a new LLMService instance
func NewLLMService(redisClient *redis.Client) (*LLMService, error) {
	apiKey := os.Getenv("LLM_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("LLM_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("LLM_API_KEY or LLM_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("LLM_API_URL")
	if apiURL == "" {
		apiURL = "https://api.deepseek.com/v1/chat/completions"
	}
	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "deepseek-chat"
	}

	return &LLMService{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
		redis:  redisClient,
	}, nil
}

const generateSystemPrompt = `You are a professional chef and nutritionist. Please provide your response in JSON format with the following structure:
{
    "title": "Recipe name",
    "description": "Brief description of the recipe",
    "servings": 4,
    "prepTime": 15,
    "cookTime": 30,
    "ingredients": [
        "2 cups flour",
        "1 cup sugar",
        "3 eggs"
    ],
    "instructions": [
        "Step 1: Mix the dry ingredients",
        "Step 2: Add the wet ingredients",
        "Step 3: Bake at 350F for 30 minutes"
    ],
    "tags": ["tag1", "tag2"],
    "difficulty": "easy",
    "nutrition": {
        "calories": 350,
        "protein": 15,
        "carbs": 45,
        "fat": 12
    }
}

Note: servings, prepTime, cookTime and all nutrition fields must be numbers, not strings.
The difficulty field MUST be one of: easy, medium, hard.`

// GenerateRecipe forwards the user's constraints to the AI endpoint and
// returns the validated recipe without persisting it.
func (s *LLMService) GenerateRecipe(ctx context.Context, req *types.GenerateRecipeRequest) (*GeneratedRecipe, error) {
	prompt := fmt.Sprintf("Generate a detailed recipe using these ingredients: %s", req.Ingredients)
	if req.Cuisine != "" {
		prompt += fmt.Sprintf(" in %s cuisine style", req.Cuisine)
	}
	if req.DietaryRestrictions != "" {
		prompt += fmt.Sprintf(" with dietary restrictions: %s", req.DietaryRestrictions)
	}
	if req.CookingTime != "" {
		prompt += fmt.Sprintf(" that takes about %s to prepare", req.CookingTime)
	}
	if req.Difficulty != "" {
		prompt += fmt.Sprintf(" with %s difficulty level", req.Difficulty)
	}

	content, err := s.complete(ctx, []Message{
		{Role: "system", Content: generateSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, err
	}

	var recipe GeneratedRecipe
	if err := json.Unmarshal([]byte(content), &recipe); err != nil {
		return nil, fmt.Errorf("failed to parse generated recipe: %w", err)
	}
	if err := validateGenerated(&recipe); err != nil {
		return nil, err
	}

	return &recipe, nil
}

// validateGenerated checks the response against the fixed schema. Difficulty
// outside the recognized set is coerced to medium rather than rejected.
func validateGenerated(recipe *GeneratedRecipe) error {
	if recipe.Title == "" {
		return fmt.Errorf("generated recipe is missing a title")
	}
	if len(recipe.Ingredients) == 0 {
		return fmt.Errorf("generated recipe has no ingredients")
	}
	if len(recipe.Instructions) == 0 {
		return fmt.Errorf("generated recipe has no instructions")
	}

	switch strings.ToLower(recipe.Difficulty) {
	case "easy", "medium", "hard":
		recipe.Difficulty = strings.ToLower(recipe.Difficulty)
	default:
		recipe.Difficulty = "medium"
	}

	if recipe.Servings <= 0 {
		recipe.Servings = 1
	}

	return nil
}

// complete performs a single chat-completion round trip.
func (s *LLMService) complete(ctx context.Context, messages []Message) (string, error) {
	reqBody := chatRequest{
		Model:    s.model,
		Messages: messages,
		ResponseFormat: map[string]string{
			"type": "json_object",
		},
		Temperature: 0.9,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return result.Choices[0].Message.Content, nil
}

// SaveDraft caches a generated recipe in Redis for 24 hours.
func (s *LLMService) SaveDraft(ctx context.Context, userID uuid.UUID, recipe *GeneratedRecipe) (*RecipeDraft, error) {
	draft := &RecipeDraft{
		ID:        uuid.New().String(),
		UserID:    userID.String(),
		CreatedAt: time.Now(),
		Recipe:    *recipe,
	}

	data, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft: %w", err)
	}

	key := fmt.Sprintf("recipe:draft:%s", draft.ID)
	if err := s.redis.Set(ctx, key, data, 24*time.Hour).Err(); err != nil {
		return nil, fmt.Errorf("failed to save draft to Redis: %w", err)
	}

	return draft, nil
}

// GetDraft retrieves a cached recipe draft from Redis.
func (s *LLMService) GetDraft(ctx context.Context, id string) (*RecipeDraft, error) {
	key := fmt.Sprintf("recipe:draft:%s", id)
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var draft RecipeDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &draft, nil
}

// DeleteDraft removes a cached recipe draft from Redis.
func (s *LLMService) DeleteDraft(ctx context.Context, id string) error {
	key := fmt.Sprintf("recipe:draft:%s", id)
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}
	return nil
}
