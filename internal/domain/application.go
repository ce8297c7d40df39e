package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus represents the review state of a job application.
type ApplicationStatus string

const (
	ApplicationStatusSubmitted ApplicationStatus = "submitted"
	ApplicationStatusReviewing ApplicationStatus = "reviewing"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"
)

// Application is a candidate's application to a published job. One row per
// (job, candidate) pair; owned by the candidate.
type Application struct {
	ID          uuid.UUID         `db:"id"           json:"id"`
	JobID       uuid.UUID         `db:"job_id"       json:"job_id"`
	CandidateID string            `db:"candidate_id" json:"candidate_id"`
	CoverNote   string            `db:"cover_note"   json:"cover_note"`
	CVText      string            `db:"cv_text"      json:"cv_text"`
	Status      ApplicationStatus `db:"status"       json:"status"`
	CreatedAt   time.Time         `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at"   json:"updated_at"`
}

// ApplicationCreateRequest is the payload for submitting an application.
type ApplicationCreateRequest struct {
	JobID     uuid.UUID `json:"job_id" binding:"required"`
	CoverNote string    `json:"cover_note"`
	CVText    string    `json:"cv_text"`
}

// ApplicationStatusRequest is the payload for a status update.
type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Validate checks that the requested status is known.
func (r *ApplicationStatusRequest) Validate() error {
	switch ApplicationStatus(r.Status) {
	case ApplicationStatusSubmitted, ApplicationStatusReviewing,
		ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return nil
	}
	return fmt.Errorf("invalid status %q", r.Status)
}
