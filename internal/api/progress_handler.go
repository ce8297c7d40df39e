package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/causehire/recruit-api/internal/auth"
)

// getProgress returns the caller's progress flags, creating the default
// all-false record on first access.
// GET /api/v1/progress
func (r *Router) getProgress(c *gin.Context) {
	ctx := c.Request.Context()

	flags, err := r.tracker.Get(ctx, auth.OwnerID(c))
	if err != nil {
		handleDomainError(c, err, "progress", "get")
		return
	}

	c.JSON(http.StatusOK, flags)
}

// updateProgress applies a partial flag update. Unknown flag names reject the
// whole request; nothing is written.
// PATCH /api/v1/progress
func (r *Router) updateProgress(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := auth.OwnerID(c)

	var values map[string]bool
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	if err := r.tracker.SetMany(ctx, ownerID, values); err != nil {
		handleDomainError(c, err, "progress", "update")
		return
	}

	flags, err := r.tracker.Get(ctx, ownerID)
	if err != nil {
		handleDomainError(c, err, "progress", "get")
		return
	}

	c.JSON(http.StatusOK, flags)
}
