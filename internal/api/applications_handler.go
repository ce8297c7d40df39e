package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/causehire/recruit-api/internal/auth"
	"github.com/causehire/recruit-api/internal/domain"
)

// createApplication submits an application to a published job.
// POST /api/v1/applications
func (r *Router) createApplication(c *gin.Context) {
	ctx := c.Request.Context()
	candidateID := auth.OwnerID(c)

	var req domain.ApplicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	app, err := r.apps.Create(ctx, candidateID, &req)
	if err != nil {
		handleDomainError(c, err, "application", "create")
		return
	}

	r.tracker.Record(ctx, candidateID, map[string]bool{domain.FlagAppliedToJob: true})

	c.JSON(http.StatusCreated, app)
}

// listApplications returns the caller's own applications.
// GET /api/v1/applications
func (r *Router) listApplications(c *gin.Context) {
	ctx := c.Request.Context()

	apps, err := r.apps.ListByCandidate(ctx, auth.OwnerID(c))
	if err != nil {
		handleDomainError(c, err, "application", "list")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"count":        len(apps),
	})
}

// listJobApplications returns applications to one of the caller's jobs.
// GET /api/v1/jobs/:id/applications
func (r *Router) listJobApplications(c *gin.Context) {
	ctx := c.Request.Context()

	jobID, ok := parseUUID(c, "id", "job")
	if !ok {
		return
	}

	apps, err := r.apps.ListForJob(ctx, jobID, auth.OwnerID(c))
	if err != nil {
		handleDomainError(c, err, "application", "list")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"count":        len(apps),
	})
}

// getApplication retrieves an application visible to the caller, either as
// its candidate or as the owner of the job it targets.
// GET /api/v1/applications/:id
func (r *Router) getApplication(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseUUID(c, "id", "application")
	if !ok {
		return
	}

	app, err := r.apps.GetByID(ctx, id, auth.OwnerID(c))
	if err != nil {
		handleDomainError(c, err, "application", "get")
		return
	}

	c.JSON(http.StatusOK, app)
}

// updateApplicationStatus changes an application's review state. Candidates
// may only withdraw; every other transition belongs to the job owner.
// PATCH /api/v1/applications/:id/status
func (r *Router) updateApplicationStatus(c *gin.Context) {
	ctx := c.Request.Context()
	callerID := auth.OwnerID(c)

	id, ok := parseUUID(c, "id", "application")
	if !ok {
		return
	}

	var req domain.ApplicationStatusRequest
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

	var (
		app *domain.Application
		err error
	)
	if domain.ApplicationStatus(req.Status) == domain.ApplicationStatusWithdrawn {
		app, err = r.apps.UpdateStatusAsCandidate(ctx, id, callerID)
	} else {
		app, err = r.apps.UpdateStatusAsJobOwner(ctx, id, callerID, domain.ApplicationStatus(req.Status))
	}
	if err != nil {
		handleDomainError(c, err, "application", "update")
		return
	}

	c.JSON(http.StatusOK, app)
}

// deleteApplication removes one of the caller's own applications.
// DELETE /api/v1/applications/:id
func (r *Router) deleteApplication(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseUUID(c, "id", "application")
	if !ok {
		return
	}

	if err := r.apps.Delete(ctx, id, auth.OwnerID(c)); err != nil {
		handleDomainError(c, err, "application", "delete")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application deleted"})
}
