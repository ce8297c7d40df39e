package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/causehire/recruit-api/internal/auth"
	"github.com/causehire/recruit-api/internal/domain"
)

type generateRequest struct {
	Text string `json:"text" binding:"required"`
}

// generateDraft runs one generation attempt from free text.
// POST /api/v1/drafts/generate
//
// A completed draft returns 201. A failed generation still returns the
// persisted draft (200) with retriable=true so the client can offer a retry
// instead of losing the user's input.
func (r *Router) generateDraft(c *gin.Context) {
	ctx := c.Request.Context()

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	draft, err := r.drafts.Generate(ctx, auth.OwnerID(c), req.Text)
	r.respondGenerationOutcome(c, draft, err)
}

// uploadDraft runs a generation attempt from an uploaded document.
// POST /api/v1/drafts/upload (multipart)
//
// Text extraction happens on the client; the form carries the original file
// for name/size validation plus the extracted text. A plain-text upload may
// omit extracted_text, in which case the file body is used directly.
func (r *Router) uploadDraft(c *gin.Context) {
	ctx := c.Request.Context()

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "A file part named 'file' is required",
		})
		return
	}

	extracted := c.PostForm("extracted_text")
	if extracted == "" {
		file, openErr := header.Open()
		if openErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
			return
		}
		defer file.Close()

		body, readErr := io.ReadAll(file)
		if readErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
			return
		}
		extracted = string(body)
	}

	draft, err := r.drafts.GenerateFromUpload(ctx, auth.OwnerID(c), header.Filename, header.Size, extracted)
	r.respondGenerationOutcome(c, draft, err)
}

// retryDraft re-runs generation for a failed draft.
// POST /api/v1/drafts/:id/retry
func (r *Router) retryDraft(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseUUID(c, "id", "draft")
	if !ok {
		return
	}

	draft, err := r.drafts.Retry(ctx, auth.OwnerID(c), id)
	r.respondGenerationOutcome(c, draft, err)
}

// respondGenerationOutcome maps a generation attempt's result to a response.
// The failed-but-persisted case is the one that needs care: the draft exists
// and carries the error detail, so it goes back with 200 rather than 5xx.
func (r *Router) respondGenerationOutcome(c *gin.Context, draft *domain.Draft, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, newDraftResponse(draft))
	case errors.Is(err, domain.ErrGeneration) && draft != nil:
		c.JSON(http.StatusOK, newDraftResponse(draft))
	default:
		handleDomainError(c, err, "draft", "generate")
	}
}

// listDrafts returns the caller's drafts, newest first.
// GET /api/v1/drafts
func (r *Router) listDrafts(c *gin.Context) {
	ctx := c.Request.Context()

	items, err := r.drafts.List(ctx, auth.OwnerID(c))
	if err != nil {
		handleDomainError(c, err, "draft", "list")
		return
	}

	out := make([]draftResponse, 0, len(items))
	for i := range items {
		out = append(out, newDraftResponse(&items[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"drafts": out,
		"count":  len(out),
	})
}

// getDraft retrieves one of the caller's drafts.
// GET /api/v1/drafts/:id
func (r *Router) getDraft(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseUUID(c, "id", "draft")
	if !ok {
		return
	}

	draft, err := r.drafts.Get(ctx, auth.OwnerID(c), id)
	if err != nil {
		handleDomainError(c, err, "draft", "get")
		return
	}

	c.JSON(http.StatusOK, newDraftResponse(draft))
}
