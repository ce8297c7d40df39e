package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/causehire/recruit-api/internal/domain"
)

// draftSelectList is the column list for SELECT/RETURNING on jd_drafts
// (single source for schema changes).
const draftSelectList = `id, owner_id, input_category, raw_input, source_url,
			status, generated_text, error_detail, created_at, updated_at`

// DraftRepository manages job-description drafts in PostgreSQL. Every query
// carries the owner id so rows belonging to another user are invisible to the
// caller, mirroring the row-level policies of the hosted store this service
// replaced.
type DraftRepository struct {
	db *sqlx.DB
}

// NewDraftRepository creates a new repository.
func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

// Create inserts a pending draft.
func (r *DraftRepository) Create(ctx context.Context, draft *domain.Draft) error {
	query := `
		INSERT INTO jd_drafts (id, owner_id, input_category, raw_input, source_url,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + draftSelectList

	err := r.db.QueryRowxContext(
		ctx, query,
		draft.ID, draft.OwnerID, draft.InputCategory, draft.RawInput, draft.SourceURL,
		draft.Status, draft.CreatedAt, draft.UpdatedAt,
	).StructScan(draft)
	if err != nil {
		return fmt.Errorf("create draft: %w", err)
	}

	return nil
}

// GetByID retrieves a draft owned by ownerID. Missing rows and rows owned by
// someone else both return domain.ErrNotFound.
func (r *DraftRepository) GetByID(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Draft, error) {
	draft := &domain.Draft{}
	query := `SELECT ` + draftSelectList + `
		FROM jd_drafts
		WHERE id = $1 AND owner_id = $2`

	err := r.db.GetContext(ctx, draft, query, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}

	return draft, nil
}

// ListByOwner retrieves the owner's drafts, newest first.
func (r *DraftRepository) ListByOwner(ctx context.Context, ownerID string, limit int) ([]domain.Draft, error) {
	drafts := []domain.Draft{}
	query := `SELECT ` + draftSelectList + `
		FROM jd_drafts
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	if err := r.db.SelectContext(ctx, &drafts, query, ownerID, limit); err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}

	return drafts, nil
}

// Start moves a draft into processing. Allowed from pending (first attempt)
// and from failed (retry); the guard keeps completed drafts immutable.
func (r *DraftRepository) Start(ctx context.Context, id uuid.UUID, ownerID string) error {
	query := `
		UPDATE jd_drafts
		SET status = 'processing', updated_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND status IN ('pending', 'failed')`

	if err := r.execExpectOneRow(ctx, query, id, ownerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("start draft: %w", err)
	}
	return nil
}

// Complete records a successful generation. Only reachable from processing;
// clears any error detail from a prior failed attempt so the row never holds
// both a result and an error.
func (r *DraftRepository) Complete(ctx context.Context, id uuid.UUID, ownerID, generatedText string) error {
	query := `
		UPDATE jd_drafts
		SET status = 'completed',
		    generated_text = $3,
		    error_detail = NULL,
		    updated_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND status = 'processing'`

	if err := r.execExpectOneRow(ctx, query, id, ownerID, generatedText); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("complete draft: %w", err)
	}
	return nil
}

// Fail records a failed generation. Only reachable from processing; clears
// generated_text for the same exclusivity reason as Complete. The row stays
// retriable.
func (r *DraftRepository) Fail(ctx context.Context, id uuid.UUID, ownerID, errorDetail string) error {
	query := `
		UPDATE jd_drafts
		SET status = 'failed',
		    error_detail = $3,
		    generated_text = NULL,
		    updated_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND status = 'processing'`

	if err := r.execExpectOneRow(ctx, query, id, ownerID, errorDetail); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("fail draft: %w", err)
	}
	return nil
}

// execExpectOneRow runs an exec and returns domain.ErrNotFound when no row
// matched. Callers cannot tell a missing row from a state-guard miss here;
// the service layer refines that with a follow-up read.
func (r *DraftRepository) execExpectOneRow(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, rowsErr := result.RowsAffected()
	if rowsErr != nil {
		return fmt.Errorf("get affected rows: %w", rowsErr)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
