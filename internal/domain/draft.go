// Package domain contains the core domain models for the recruit-api service.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DraftStatus represents the lifecycle state of a job-description draft.
type DraftStatus string

const (
	DraftStatusPending    DraftStatus = "pending"
	DraftStatusProcessing DraftStatus = "processing"
	DraftStatusCompleted  DraftStatus = "completed"
	DraftStatusFailed     DraftStatus = "failed"
)

// InputCategory classifies how the job-description input was provided.
type InputCategory string

const (
	CategoryBrief         InputCategory = "brief"
	CategoryBriefWithLink InputCategory = "brief_with_link"
	CategoryLinkOnly      InputCategory = "link_only"
	CategoryUpload        InputCategory = "upload"
)

// Valid reports whether c is one of the known input categories.
func (c InputCategory) Valid() bool {
	switch c {
	case CategoryBrief, CategoryBriefWithLink, CategoryLinkOnly, CategoryUpload:
		return true
	}
	return false
}

// Draft records one job-description generation attempt. The row is mutated in
// place through its lifecycle; a retry re-enters processing on the same row.
type Draft struct {
	ID            uuid.UUID     `db:"id"             json:"id"`
	OwnerID       string        `db:"owner_id"       json:"owner_id"`
	InputCategory InputCategory `db:"input_category" json:"input_category"`
	RawInput      string        `db:"raw_input"      json:"raw_input"`
	SourceURL     *string       `db:"source_url"     json:"source_url,omitempty"`
	Status        DraftStatus   `db:"status"         json:"status"`
	GeneratedText *string       `db:"generated_text" json:"generated_text,omitempty"`
	ErrorDetail   *string       `db:"error_detail"   json:"error_detail,omitempty"`
	CreatedAt     time.Time     `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"     json:"updated_at"`
}

// NewDraft creates a pending draft with validation.
func NewDraft(ownerID string, category InputCategory, rawInput, sourceURL string) (*Draft, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidDraft)
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown input category %q", ErrInvalidDraft, category)
	}
	if rawInput == "" {
		return nil, fmt.Errorf("%w: raw input is required", ErrInvalidDraft)
	}
	linked := category == CategoryBriefWithLink || category == CategoryLinkOnly
	if linked && sourceURL == "" {
		return nil, fmt.Errorf("%w: source url is required for category %q", ErrInvalidDraft, category)
	}
	if !linked && sourceURL != "" {
		return nil, fmt.Errorf("%w: source url not allowed for category %q", ErrInvalidDraft, category)
	}

	now := time.Now()
	d := &Draft{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		InputCategory: category,
		RawInput:      rawInput,
		Status:        DraftStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if sourceURL != "" {
		d.SourceURL = &sourceURL
	}
	return d, nil
}

// CanStart reports whether generation may begin. A pending draft starts its
// first attempt; a failed draft starts a retry.
func (d *Draft) CanStart() bool {
	return d.Status == DraftStatusPending || d.Status == DraftStatusFailed
}

// CanRetry reports whether the draft is eligible for the retry path.
func (d *Draft) CanRetry() bool {
	return d.Status == DraftStatusFailed
}

// CanFinish reports whether completion or failure may be recorded.
// Both are only reachable from processing.
func (d *Draft) CanFinish() bool {
	return d.Status == DraftStatusProcessing
}

// Terminal reports whether the current attempt cycle has ended.
func (d *Draft) Terminal() bool {
	return d.Status == DraftStatusCompleted || d.Status == DraftStatusFailed
}

// ProgressMessage is the plain-language status shown to users in place of raw
// status codes.
func (d *Draft) ProgressMessage() string {
	switch d.Status {
	case DraftStatusPending:
		return "queued"
	case DraftStatusProcessing:
		if d.InputCategory == CategoryLinkOnly || d.InputCategory == CategoryBriefWithLink {
			return "fetching and generating..."
		}
		return "generating..."
	case DraftStatusCompleted:
		return "ready for review"
	case DraftStatusFailed:
		return "generation failed"
	}
	return string(d.Status)
}

// Consistent verifies the generated_text / error_detail exclusivity invariant.
// At most one of the two may be populated at any time.
func (d *Draft) Consistent() bool {
	hasText := d.GeneratedText != nil && *d.GeneratedText != ""
	hasErr := d.ErrorDetail != nil && *d.ErrorDetail != ""
	return !(hasText && hasErr)
}
