package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SilvioBaratto/diet-generator/internal/middleware"
	"github.com/SilvioBaratto/diet-generator/internal/service"
)

// DietHandler exposes the diet workflow over HTTP.
type DietHandler struct {
	dietService service.IDietService
	validator   middleware.TokenValidator
}

func NewDietHandler(dietService service.IDietService, validator middleware.TokenValidator) *DietHandler {
	return &DietHandler{
		dietService: dietService,
		validator:   validator,
	}
}

func (h *DietHandler) RegisterRoutes(router *gin.RouterGroup) {
	diet := router.Group("/diet", middleware.AuthMiddleware(h.validator))
	{
		diet.GET("/list", h.ListDiets)
		diet.GET("/current_week", h.GetCurrentWeekDiet)
		diet.POST("/create_diet", h.CreateDiet)
		diet.GET("/:id", h.GetDiet)
		diet.GET("/:id/grocery-list", h.GetGroceryList)
	}
}

// currentUserID extracts the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, false
	}
	userID, ok := val.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, false
	}
	return userID, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// ListDiets returns summaries of the user's diets, newest first.
func (h *DietHandler) ListDiets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summaries, err := h.dietService.GetUserDiets(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[DietHandler] list diets failed: %v", err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GetCurrentWeekDiet returns the plan covering today, or null when there is
// none: that is a normal state, not an error.
func (h *DietHandler) GetCurrentWeekDiet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	doc, err := h.dietService.GetCurrentWeekDiet(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[DietHandler] current week lookup failed: %v", err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// CreateDiet generates, persists and returns a new weekly plan with its
// grocery list.
func (h *DietHandler) CreateDiet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	doc, err := h.dietService.CreateDiet(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[DietHandler] create diet failed: %v", err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// GetDiet returns a full plan by id, without its grocery list.
func (h *DietHandler) GetDiet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	dietID, ok := pathID(c, "id")
	if !ok {
		return
	}

	plan, err := h.dietService.GetDietByID(c.Request.Context(), dietID, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// GetGroceryList returns the persisted grocery list for a diet.
func (h *DietHandler) GetGroceryList(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	dietID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.dietService.GetGroceryListByDietID(c.Request.Context(), dietID, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}
