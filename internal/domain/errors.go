package domain

import "errors"

// Sentinel errors shared across repositories, services, and handlers.
var (
	// ErrNotFound is returned when a row does not exist or is not visible to
	// the caller. Rows owned by another user are reported as not found so the
	// API never confirms the existence of someone else's data.
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned on unique-constraint violations
	// (e.g. a duplicate application for the same job).
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrInvalidDraft is returned when a draft operation is attempted from a
	// state that does not permit it (e.g. completing a pending draft).
	ErrInvalidDraft = errors.New("invalid draft state")

	// ErrDraftNotRetriable is returned when retry is requested for a draft
	// that is not in the failed state.
	ErrDraftNotRetriable = errors.New("draft is not retriable")

	// ErrInsufficientDetail is returned when a brief is too short to classify.
	// Recovered by re-prompting the user; no draft is created.
	ErrInsufficientDetail = errors.New("input has insufficient detail")

	// ErrUnsupportedFile is returned when an uploaded file type is not allowed.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrGeneration is returned when the downstream text-generation call fails.
	ErrGeneration = errors.New("generation failed")

	// ErrUnknownFlag is returned when a progress flag name is not recognized.
	ErrUnknownFlag = errors.New("unknown progress flag")

	// ErrNoFieldsToUpdate is returned when an update request carries no fields.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)
