// Package drafts drives the job-description draft lifecycle: classify the
// input, persist the draft, run generation, and record the outcome. Retry
// re-enters the same lifecycle on the same row.
package drafts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/causehire/recruit-api/internal/classify"
	"github.com/causehire/recruit-api/internal/domain"
	"github.com/causehire/recruit-api/internal/flags"
	"github.com/causehire/recruit-api/internal/generation"
	"github.com/causehire/recruit-api/internal/logger"
	"github.com/causehire/recruit-api/internal/metrics"
)

const defaultListLimit = 50

// Store is the draft persistence surface. All operations are owner-scoped;
// a row belonging to another user behaves as if it does not exist.
type Store interface {
	Create(ctx context.Context, draft *domain.Draft) error
	GetByID(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Draft, error)
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]domain.Draft, error)
	Start(ctx context.Context, id uuid.UUID, ownerID string) error
	Complete(ctx context.Context, id uuid.UUID, ownerID, generatedText string) error
	Fail(ctx context.Context, id uuid.UUID, ownerID, errorDetail string) error
}

// Service orchestrates draft generation.
type Service struct {
	store      Store
	generator  generation.Generator
	classifier *classify.Classifier
	tracker    *flags.Tracker
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// NewService creates a draft service.
func NewService(
	store Store,
	generator generation.Generator,
	classifier *classify.Classifier,
	tracker *flags.Tracker,
	m *metrics.Metrics,
	log logger.Logger,
) *Service {
	return &Service{
		store:      store,
		generator:  generator,
		classifier: classifier,
		tracker:    tracker,
		metrics:    m,
		logger:     log,
	}
}

// Generate classifies free text, creates a pending draft, and runs one
// generation attempt. When the attempt fails the draft is returned alongside
// the generation error so the caller can offer a retry; any other error means
// no usable draft exists.
//
// Two overlapping calls for the same owner race freely and produce two
// independent drafts. That matches the product's interactive behavior; there
// is deliberately no mutual exclusion here.
func (s *Service) Generate(ctx context.Context, ownerID, text string) (*domain.Draft, error) {
	result, err := s.classifier.Classify(text)
	if err != nil {
		// Insufficient detail never reaches persistence.
		return nil, err
	}

	draft, err := domain.NewDraft(ownerID, result.Category, strings.TrimSpace(text), result.SourceURL)
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, draft); err != nil {
		return nil, err
	}

	return s.runAttempt(ctx, draft)
}

// GenerateFromUpload validates the uploaded file's name and size, caps the
// client-extracted text, and runs the upload strategy. Validation failures
// happen before any persistence.
func (s *Service) GenerateFromUpload(ctx context.Context, ownerID, filename string, size int64, extractedText string) (*domain.Draft, error) {
	if err := s.classifier.ValidateUpload(filename, size); err != nil {
		return nil, err
	}

	capped := s.classifier.TruncateForPrompt(extractedText)
	if capped == "" {
		return nil, fmt.Errorf("%w: no text extracted from %s", domain.ErrInsufficientDetail, filename)
	}

	draft, err := domain.NewDraft(ownerID, domain.CategoryUpload, capped, "")
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, draft); err != nil {
		return nil, err
	}

	s.tracker.Record(ctx, ownerID, map[string]bool{domain.FlagUploadedCV: true})

	return s.runAttempt(ctx, draft)
}

// Retry re-runs generation for a failed draft. The stored input is reused
// unchanged and the row keeps its id; no second row is ever created.
func (s *Service) Retry(ctx context.Context, ownerID string, draftID uuid.UUID) (*domain.Draft, error) {
	draft, err := s.store.GetByID(ctx, draftID, ownerID)
	if err != nil {
		return nil, err
	}
	if !draft.CanRetry() {
		return nil, fmt.Errorf("%w: draft is %s", domain.ErrDraftNotRetriable, draft.Status)
	}

	s.metrics.GenerationRetries.Inc()
	s.logger.Info("retrying draft",
		logger.String("draft_id", draftID.String()),
		logger.String("category", string(draft.InputCategory)))

	return s.runAttempt(ctx, draft)
}

// Get returns an owned draft.
func (s *Service) Get(ctx context.Context, ownerID string, draftID uuid.UUID) (*domain.Draft, error) {
	return s.store.GetByID(ctx, draftID, ownerID)
}

// List returns the owner's drafts, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]domain.Draft, error) {
	return s.store.ListByOwner(ctx, ownerID, defaultListLimit)
}

// runAttempt drives one pending-or-failed draft through
// processing → completed/failed. The returned draft reflects the final row
// state; a generation failure is returned as the error with the failed draft
// so callers can surface the retry affordance.
func (s *Service) runAttempt(ctx context.Context, draft *domain.Draft) (*domain.Draft, error) {
	if err := s.store.Start(ctx, draft.ID, draft.OwnerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The guarded update matched nothing. Distinguish a vanished row
			// from a state-guard miss (e.g. a concurrent retry won the race).
			if current, getErr := s.store.GetByID(ctx, draft.ID, draft.OwnerID); getErr == nil {
				return current, fmt.Errorf("%w: draft is %s", domain.ErrDraftNotRetriable, current.Status)
			}
			return nil, err
		}
		return nil, err
	}

	started := time.Now()
	text, genErr := s.generator.Generate(ctx, buildRequest(draft))
	s.metrics.ObserveGeneration(string(draft.InputCategory), genErr, time.Since(started))

	if genErr != nil {
		s.logger.Warn("generation attempt failed",
			logger.String("draft_id", draft.ID.String()),
			logger.String("category", string(draft.InputCategory)),
			logger.Error(genErr))

		if failErr := s.store.Fail(ctx, draft.ID, draft.OwnerID, genErr.Error()); failErr != nil {
			return nil, failErr
		}
		// Advisory flag; not transactional with the draft write.
		s.tracker.Record(ctx, draft.OwnerID, map[string]bool{domain.FlagJDGenerationFailed: true})

		failed, err := s.store.GetByID(ctx, draft.ID, draft.OwnerID)
		if err != nil {
			return nil, err
		}
		return failed, genErr
	}

	if err := s.store.Complete(ctx, draft.ID, draft.OwnerID, text); err != nil {
		return nil, err
	}
	s.tracker.Record(ctx, draft.OwnerID, map[string]bool{
		domain.FlagGeneratedJD:        true,
		domain.FlagJDGenerationFailed: false,
	})

	s.logger.Info("draft completed",
		logger.String("draft_id", draft.ID.String()),
		logger.String("category", string(draft.InputCategory)),
		logger.Duration("elapsed", time.Since(started)))

	return s.store.GetByID(ctx, draft.ID, draft.OwnerID)
}

// buildRequest maps a stored draft back to a generation request. The brief
// for link-carrying drafts is the raw input with the URL removed, matching
// what classification computed on the original attempt.
func buildRequest(draft *domain.Draft) generation.Request {
	req := generation.Request{Category: draft.InputCategory}

	sourceURL := ""
	if draft.SourceURL != nil {
		sourceURL = *draft.SourceURL
	}

	switch draft.InputCategory {
	case domain.CategoryBrief:
		req.Brief = draft.RawInput
	case domain.CategoryBriefWithLink:
		req.Brief = strings.TrimSpace(strings.Replace(draft.RawInput, sourceURL, " ", 1))
		req.SourceURL = sourceURL
	case domain.CategoryLinkOnly:
		req.SourceURL = sourceURL
	case domain.CategoryUpload:
		req.ExtractedText = draft.RawInput
	}

	return req
}
