package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/causehire/recruit-api/internal/auth"
)

const defaultErrorLogLimit = 20

// listErrorLogs returns the caller's recent server-side failures.
// GET /api/v1/errors?limit=20
func (r *Router) listErrorLogs(c *gin.Context) {
	ctx := c.Request.Context()

	limit := defaultErrorLogLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	logs, err := r.errorLogs.ListRecent(ctx, auth.OwnerID(c), limit)
	if err != nil {
		handleDomainError(c, err, "error log", "list")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"errors": logs,
		"count":  len(logs),
	})
}
