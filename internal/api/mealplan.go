package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plateful/backend/internal/middleware"
	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/types"
)

// MealPlanHandler serves the weekly planner and its derived shopping list.
type MealPlanHandler struct {
	plans        *service.MealPlanService
	shoppingList *service.ShoppingListService
	auth         *service.AuthService
}

// NewMealPlanHandler creates a new MealPlanHandler instance
func NewMealPlanHandler(plans *service.MealPlanService, shoppingList *service.ShoppingListService, auth *service.AuthService) *MealPlanHandler {
	return &MealPlanHandler{
		plans:        plans,
		shoppingList: shoppingList,
		auth:         auth,
	}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	authRequired := middleware.AuthMiddleware(h.auth)

	mealPlans := router.Group("/meal-plans", authRequired)
	{
		mealPlans.GET("", h.ListMealPlans)
		mealPlans.POST("", h.CreateMealPlan)
		mealPlans.DELETE("/:id", h.DeleteMealPlan)
	}

	router.GET("/shopping-list", authRequired, h.GetShoppingList)
}

// parseDate accepts an ISO-8601 date or timestamp.
func parseDate(value string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ListMealPlans returns the caller's planner slots. With no query parameters
// it covers the current week; explicit start/end dates override that.
func (h *MealPlanHandler) ListMealPlans(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	start, end := service.ResolveWeek(time.Now())
	if s := c.Query("start"); s != "" {
		parsed, ok := parseDate(s)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid start date"})
			return
		}
		start = parsed
	}
	if e := c.Query("end"); e != "" {
		parsed, ok := parseDate(e)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid end date"})
			return
		}
		end = parsed
	}

	meals, err := h.plans.ListRangeWithRecipes(c.Request.Context(), userID, start, end)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "mealPlans": meals})
}

func (h *MealPlanHandler) CreateMealPlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateMealSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid recipe id"})
		return
	}

	plannedFor, okDate := parseDate(req.PlannedFor)
	if !okDate {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid plannedFor date"})
		return
	}

	slot, err := h.plans.CreateSlot(c.Request.Context(), userID, req.Day, req.MealType, recipeID, plannedFor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "mealPlan": slot})
}

func (h *MealPlanHandler) DeleteMealPlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid meal plan id"})
		return
	}

	if err := h.plans.DeleteSlot(c.Request.Context(), id, userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetShoppingList derives the checklist for the week containing the given
// date, defaulting to today.
func (h *MealPlanHandler) GetShoppingList(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reference := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, ok := parseDate(d)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid date"})
			return
		}
		reference = parsed
	}

	items, err := h.shoppingList.Generate(c.Request.Context(), userID, reference)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "items": items})
}
