package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/causehire/recruit-api/internal/domain"
)

// parseUUID parses a UUID from a gin.Context parameter.
func parseUUID(c *gin.Context, paramName, entityType string) (uuid.UUID, bool) {
	idParam := c.Param(paramName)
	id, err := uuid.Parse(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + entityType + " ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// handleDomainError maps domain sentinel errors to HTTP responses.
func handleDomainError(c *gin.Context, err error, entityType, operation string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": entityType + " not found",
		})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{
			"error": entityType + " already exists",
		})
	case errors.Is(err, domain.ErrDraftNotRetriable):
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, domain.ErrUnsupportedFile):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, domain.ErrInsufficientDetail):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Please provide a bit more detail about the role so we can write a useful description",
		})
	case errors.Is(err, domain.ErrUnknownFlag),
		errors.Is(err, domain.ErrNoFieldsToUpdate),
		errors.Is(err, domain.ErrInvalidDraft):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to " + operation + " " + entityType,
		})
	}
}

// handleValidationError handles request validation errors.
func handleValidationError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNoFieldsToUpdate) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "At least one field must be provided for update",
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"error": err.Error(),
	})
}
