package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SilvioBaratto/diet-generator/internal/service"
)

// statusForError maps workflow errors onto HTTP status codes. Anything
// unrecognized, including data-access failures, surfaces as 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrSettingsNotFound),
		errors.Is(err, service.ErrDietNotFound),
		errors.Is(err, service.ErrGroceryListNotFound),
		errors.Is(err, service.ErrMealNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrMissingMeasurements):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrMealForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	status := statusForError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Internal details stay in the logs.
		msg = "internal server error"
	}
	c.JSON(status, gin.H{"error": msg})
}
