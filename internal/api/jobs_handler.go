package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/causehire/recruit-api/internal/auth"
	"github.com/causehire/recruit-api/internal/domain"
)

const (
	defaultPublicJobsLimit = 50
	maxPublicJobsLimit     = 200
)

// createJob creates a job posting in draft status.
// POST /api/v1/jobs
func (r *Router) createJob(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.JobCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	if err := req.Validate(); err != nil {
		handleValidationError(c, err)
		return
	}

	job, err := r.jobs.Create(ctx, auth.OwnerID(c), &req)
	if err != nil {
		handleDomainError(c, err, "job", "create")
		return
	}

	c.JSON(http.StatusCreated, job)
}

// listJobs returns the caller's jobs.
// GET /api/v1/jobs
func (r *Router) listJobs(c *gin.Context) {
	ctx := c.Request.Context()

	jobs, err := r.jobs.ListByOwner(ctx, auth.OwnerID(c))
	if err != nil {
		handleDomainError(c, err, "job", "list")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// listPublicJobs returns published jobs. No auth required.
// GET /api/v1/public/jobs?limit=50
func (r *Router) listPublicJobs(c *gin.Context) {
	ctx := c.Request.Context()

	limit := defaultPublicJobsLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= maxPublicJobsLimit {
			limit = n
		}
	}

	jobs, err := r.jobs.ListPublished(ctx, limit)
	if err != nil {
		handleDomainError(c, err, "job", "list")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// getJob retrieves one of the caller's jobs.
// GET /api/v1/jobs/:id
func (r *Router) getJob(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseUUID(c, "id", "job")
	if !ok {
		return
	}

	job, err := r.jobs.GetByID(ctx, id, auth.OwnerID(c))
	if err != nil {
		handleDomainError(c, err, "job", "get")
		return
	}

	c.JSON(http.StatusOK, job)
}

// updateJob updates a job posting.
// PUT /api/v1/jobs/:id
func (r *Router) updateJob(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseUUID(c, "id", "job")
	if !ok {
		return
	}

	var req domain.JobUpdateRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": bindErr.Error(),
		})
		return
	}

	if validateErr := req.Validate(); validateErr != nil {
		handleValidationError(c, validateErr)
		return
	}

	job, err := r.jobs.Update(ctx, id, auth.OwnerID(c), &req)
	if err != nil {
		handleDomainError(c, err, "job", "update")
		return
	}

	c.JSON(http.StatusOK, job)
}

// publishJob moves a draft job to published.
// POST /api/v1/jobs/:id/publish
func (r *Router) publishJob(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := auth.OwnerID(c)

	id, ok := parseUUID(c, "id", "job")
	if !ok {
		return
	}

	job, err := r.jobs.Publish(ctx, id, ownerID)
	if err != nil {
		handleDomainError(c, err, "job", "publish")
		return
	}

	r.tracker.Record(ctx, ownerID, map[string]bool{domain.FlagPublishedJob: true})

	c.JSON(http.StatusOK, job)
}

// deleteJob removes a job posting.
// DELETE /api/v1/jobs/:id
func (r *Router) deleteJob(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseUUID(c, "id", "job")
	if !ok {
		return
	}

	if err := r.jobs.Delete(ctx, id, auth.OwnerID(c)); err != nil {
		handleDomainError(c, err, "job", "delete")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}
