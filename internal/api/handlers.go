package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/middleware"
	"github.com/plateful/backend/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Plateful API is running",
		"version": "v1.0.0",
	})
}

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Auth         *service.AuthService
	Profiles     *service.ProfileService
	Recipes      *service.RecipeService
	MealPlans    *service.MealPlanService
	ShoppingList *service.ShoppingListService
	LLM          *service.LLMService
	Images       *service.ImageService
	Redis        *redis.Client
}

// NewServices wires the service layer over the given stores. The LLM and
// image services are optional; their routes are simply not registered when
// they are nil.
func NewServices(db *gorm.DB, redisClient *redis.Client, jwtSecret string) *Services {
	recipes := service.NewRecipeService(db)
	mealPlans := service.NewMealPlanService(db, recipes)
	return &Services{
		Auth:         service.NewAuthService(db, jwtSecret),
		Profiles:     service.NewProfileService(db),
		Recipes:      recipes,
		MealPlans:    mealPlans,
		ShoppingList: service.NewShoppingListService(mealPlans, recipes),
		Redis:        redisClient,
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, svcs *Services) {
	// Health check endpoint (no auth required)
	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	var generationLimiter, uploadLimiter *middleware.RateLimiter
	if svcs.Redis != nil {
		generationLimiter = middleware.NewGenerationRateLimiter(svcs.Redis)
		uploadLimiter = middleware.NewUploadRateLimiter(svcs.Redis)
	}

	authHandler := NewAuthHandler(svcs.Auth)
	profileHandler := NewProfileHandler(svcs.Profiles, svcs.Auth)
	recipeHandler := NewRecipeHandler(svcs.Recipes, svcs.Auth)
	mealPlanHandler := NewMealPlanHandler(svcs.MealPlans, svcs.ShoppingList, svcs.Auth)

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	profileHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1)
	mealPlanHandler.RegisterRoutes(v1)

	if svcs.LLM != nil {
		llmHandler := NewLLMHandler(svcs.LLM, svcs.Recipes, svcs.Auth, generationLimiter)
		llmHandler.RegisterRoutes(v1)
	}
	if svcs.Images != nil {
		imageHandler := NewImageHandler(svcs.Images, svcs.Auth, uploadLimiter)
		imageHandler.RegisterRoutes(v1)
	}
}

// handleServiceError translates service errors into the wire shape. Anything
// outside the known taxonomy is a 500 with a generic message.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, service.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
	}
}

// currentUserID extracts the authenticated user's ID from the gin context.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user not authenticated"})
		return uuid.Nil, false
	}
	id, ok := raw.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user not authenticated"})
		return uuid.Nil, false
	}
	return id, true
}
