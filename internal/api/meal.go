package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SilvioBaratto/diet-generator/internal/middleware"
	"github.com/SilvioBaratto/diet-generator/internal/service"
	"github.com/SilvioBaratto/diet-generator/internal/types"
)

// MealHandler exposes single-meal reads and recipe rendering.
type MealHandler struct {
	mealService service.IMealService
	validator   middleware.TokenValidator
}

func NewMealHandler(mealService service.IMealService, validator middleware.TokenValidator) *MealHandler {
	return &MealHandler{
		mealService: mealService,
		validator:   validator,
	}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals", middleware.AuthMiddleware(h.validator))
	{
		meals.GET("/:id", h.GetMeal)
		meals.GET("/:id/recipe", h.GetMealRecipe)
	}
}

// GetMeal returns the details of a single meal.
func (h *MealHandler) GetMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	mealID, ok := pathID(c, "id")
	if !ok {
		return
	}

	meal, err := h.mealService.GetMealDetails(c.Request.Context(), mealID, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, meal)
}

// GetMealRecipe returns the rendered recipe document for a meal.
func (h *MealHandler) GetMealRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	mealID, ok := pathID(c, "id")
	if !ok {
		return
	}

	doc, err := h.mealService.GetMealRecipe(c.Request.Context(), mealID, userID)
	if err != nil {
		log.Printf("[MealHandler] recipe generation failed: %v", err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.RecipeResponse{Recipe: *doc})
}
