package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/middleware"
	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/types"
)

// LLMHandler serves AI recipe generation. Generated recipes are held as
// drafts in Redis until the user saves or discards them.
type LLMHandler struct {
	llm     *service.LLMService
	recipes *service.RecipeService
	auth    *service.AuthService
	limiter *middleware.RateLimiter
}

// NewLLMHandler creates a new LLMHandler instance
func NewLLMHandler(llm *service.LLMService, recipes *service.RecipeService, auth *service.AuthService, limiter *middleware.RateLimiter) *LLMHandler {
	return &LLMHandler{
		llm:     llm,
		recipes: recipes,
		auth:    auth,
		limiter: limiter,
	}
}

func (h *LLMHandler) RegisterRoutes(router *gin.RouterGroup) {
	authRequired := middleware.AuthMiddleware(h.auth)

	ai := router.Group("/ai", authRequired)
	if h.limiter != nil {
		ai.Use(h.limiter.RateLimitMiddleware())
	}
	ai.POST("/generate", h.GenerateRecipe)

	// Persisting or discarding a draft does not consume generation quota.
	router.POST("/recipes/save-generated", authRequired, h.SaveGenerated)
	router.DELETE("/ai/drafts/:id", authRequired, h.DiscardDraft)
}

// SaveGeneratedRequest names the draft to persist.
type SaveGeneratedRequest struct {
	DraftID string `json:"draftId" binding:"required"`
}

// GenerateRecipe asks the AI endpoint for a recipe matching the constraints
// and caches the result as a draft.
func (h *LLMHandler) GenerateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ingredients are required"})
		return
	}

	recipe, err := h.llm.GenerateRecipe(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "recipe generation failed"})
		return
	}

	draft, err := h.llm.SaveDraft(c.Request.Context(), userID, recipe)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"draftId": draft.ID,
		"recipe":  recipe,
	})
}

// SaveGenerated turns a cached draft into a persisted recipe owned by the
// caller.
func (h *LLMHandler) SaveGenerated(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SaveGeneratedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "draftId is required"})
		return
	}

	draft, err := h.llm.GetDraft(c.Request.Context(), req.DraftID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "draft not found or expired"})
		return
	}
	if draft.UserID != userID.String() {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "draft belongs to another user"})
		return
	}

	recipe := models.Recipe{
		Title:         draft.Recipe.Title,
		Description:   draft.Recipe.Description,
		Ingredients:   draft.Recipe.Ingredients,
		Instructions:  draft.Recipe.Instructions,
		Tags:          draft.Recipe.Tags,
		Difficulty:    draft.Recipe.Difficulty,
		Servings:      draft.Recipe.Servings,
		PrepTime:      draft.Recipe.PrepTime,
		CookTime:      draft.Recipe.CookTime,
		Calories:      draft.Recipe.Nutrition.Calories,
		Protein:       draft.Recipe.Nutrition.Protein,
		Carbs:         draft.Recipe.Nutrition.Carbs,
		Fat:           draft.Recipe.Nutrition.Fat,
		IsAIGenerated: true,
		AuthorID:      userID,
	}
	if name, exists := c.Get("user_name"); exists {
		recipe.AuthorName, _ = name.(string)
	}

	created, err := h.recipes.CreateRecipe(c.Request.Context(), &recipe)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	// Best effort; an expired draft cleans itself up anyway.
	_ = h.llm.DeleteDraft(c.Request.Context(), draft.ID)

	c.JSON(http.StatusCreated, gin.H{"success": true, "recipe": created})
}

// DiscardDraft drops a cached draft without saving it.
func (h *LLMHandler) DiscardDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	draft, err := h.llm.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "draft not found or expired"})
		return
	}
	if draft.UserID != userID.String() {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "draft belongs to another user"})
		return
	}

	if err := h.llm.DeleteDraft(c.Request.Context(), draft.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to delete draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
