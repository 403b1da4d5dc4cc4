package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SilvioBaratto/diet-generator/internal/middleware"
	"github.com/SilvioBaratto/diet-generator/internal/service"
	"github.com/SilvioBaratto/diet-generator/internal/types"
)

// SettingsHandler exposes the user settings profile.
type SettingsHandler struct {
	settingsService service.ISettingsService
	validator       middleware.TokenValidator
}

func NewSettingsHandler(settingsService service.ISettingsService, validator middleware.TokenValidator) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		validator:       validator,
	}
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/settings", middleware.AuthMiddleware(h.validator))
	{
		settings.GET("/get_user_settings", h.GetUserSettings)
		settings.POST("/update_user_settings", h.UpdateUserSettings)
	}
}

// GetUserSettings returns the caller's settings, 404 when none exist.
func (h *SettingsHandler) GetUserSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	settings, err := h.settingsService.GetUserSettings(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateUserSettings creates the caller's settings on first call and patches
// only the supplied fields afterwards.
func (h *SettingsHandler) UpdateUserSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.settingsService.UpdateUserSettings(c.Request.Context(), userID, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}
