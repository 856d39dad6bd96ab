package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plateful/backend/internal/middleware"
	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/service"
)

// RecipeHandler serves recipe browsing, creation and reaction endpoints.
type RecipeHandler struct {
	recipes *service.RecipeService
	auth    *service.AuthService
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipes *service.RecipeService, auth *service.AuthService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, auth: auth}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	authRequired := middleware.AuthMiddleware(h.auth)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/popular", h.ListPopular)
		recipes.GET("/recommendations", authRequired, h.Recommendations)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", authRequired, h.CreateRecipe)
		recipes.DELETE("/:id", authRequired, h.DeleteRecipe)
		recipes.POST("/:id/like", authRequired, h.LikeRecipe)
		recipes.DELETE("/:id/like", authRequired, h.UnlikeRecipe)
		recipes.POST("/:id/bookmark", authRequired, h.BookmarkRecipe)
		recipes.DELETE("/:id/bookmark", authRequired, h.UnbookmarkRecipe)
	}

	router.GET("/bookmarks", authRequired, h.ListBookmarks)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var (
		recipes []*models.Recipe
		err     error
	)
	if query := c.Query("q"); query != "" {
		recipes, err = h.recipes.SearchRecipes(c.Request.Context(), query, limit)
	} else {
		recipes, err = h.recipes.ListRecent(c.Request.Context(), limit, offset)
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipes": recipes})
}

func (h *RecipeHandler) ListPopular(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	recipes, err := h.recipes.ListPopular(c.Request.Context(), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipes": recipes})
}

func (h *RecipeHandler) Recommendations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	recipes, err := h.recipes.Recommend(c.Request.Context(), userID, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": recipe})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	recipe.ID = uuid.Nil
	recipe.AuthorID = userID
	if name, exists := c.Get("user_name"); exists {
		recipe.AuthorName, _ = name.(string)
	}

	created, err := h.recipes.CreateRecipe(c.Request.Context(), &recipe)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "recipe": created})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid recipe id"})
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id, userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *RecipeHandler) LikeRecipe(c *gin.Context) {
	h.react(c, h.recipes.LikeRecipe)
}

func (h *RecipeHandler) UnlikeRecipe(c *gin.Context) {
	h.react(c, h.recipes.UnlikeRecipe)
}

func (h *RecipeHandler) BookmarkRecipe(c *gin.Context) {
	h.react(c, h.recipes.BookmarkRecipe)
}

func (h *RecipeHandler) UnbookmarkRecipe(c *gin.Context) {
	h.react(c, h.recipes.UnbookmarkRecipe)
}

// react shares the like/bookmark plumbing: parse the recipe id, apply the
// operation for the authenticated user.
func (h *RecipeHandler) react(c *gin.Context, op func(ctx context.Context, userID, recipeID uuid.UUID) error) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid recipe id"})
		return
	}

	if err := op(c.Request.Context(), userID, recipeID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *RecipeHandler) ListBookmarks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookmarks, err := h.recipes.ListBookmarks(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "bookmarks": bookmarks})
}
