package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the publication state of a job posting.
type JobStatus string

const (
	JobStatusDraft     JobStatus = "draft"
	JobStatusPublished JobStatus = "published"
	JobStatusClosed    JobStatus = "closed"
)

// Job is a published or draft job posting owned by an organization user.
// Published jobs are publicly readable; everything else is owner-scoped.
type Job struct {
	ID          uuid.UUID  `db:"id"           json:"id"`
	OwnerID     string     `db:"owner_id"     json:"owner_id"`
	Title       string     `db:"title"        json:"title"`
	Description string     `db:"description"  json:"description"`
	Location    string     `db:"location"     json:"location"`
	Status      JobStatus  `db:"status"       json:"status"`
	DraftID     *uuid.UUID `db:"draft_id"     json:"draft_id,omitempty"`
	PublishedAt *time.Time `db:"published_at" json:"published_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"   json:"updated_at"`
}

// JobCreateRequest is the payload for creating a job posting.
type JobCreateRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Location    string     `json:"location"`
	DraftID     *uuid.UUID `json:"draft_id,omitempty"`
}

// Validate checks required fields beyond binding tags.
func (r *JobCreateRequest) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.Description == "" {
		return fmt.Errorf("description is required")
	}
	return nil
}

// JobUpdateRequest is the payload for updating a job posting. All fields are
// optional; at least one must be provided.
type JobUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// Validate checks that at least one field is set and status, if present, is known.
func (r *JobUpdateRequest) Validate() error {
	if r.Title == nil && r.Description == nil && r.Location == nil && r.Status == nil {
		return ErrNoFieldsToUpdate
	}
	if r.Status != nil {
		switch JobStatus(*r.Status) {
		case JobStatusDraft, JobStatusPublished, JobStatusClosed:
		default:
			return fmt.Errorf("invalid status %q", *r.Status)
		}
	}
	return nil
}
