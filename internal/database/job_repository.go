package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/causehire/recruit-api/internal/domain"
)

const jobSelectList = `id, owner_id, title, description, location, status,
			draft_id, published_at, created_at, updated_at`

// JobRepository manages job postings. Reads and writes are owner-scoped apart
// from ListPublished, the one public read surface.
type JobRepository struct {
	db *sqlx.DB
}

// NewJobRepository creates a new repository.
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new job posting in draft status.
func (r *JobRepository) Create(ctx context.Context, ownerID string, req *domain.JobCreateRequest) (*domain.Job, error) {
	job := &domain.Job{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Status:      domain.JobStatusDraft,
		DraftID:     req.DraftID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	query := `
		INSERT INTO jobs (id, owner_id, title, description, location, status,
			draft_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + jobSelectList

	err := r.db.QueryRowxContext(
		ctx, query,
		job.ID, job.OwnerID, job.Title, job.Description, job.Location, job.Status,
		job.DraftID, job.CreatedAt, job.UpdatedAt,
	).StructScan(job)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	return job, nil
}

// GetByID retrieves an owned job by id.
func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Job, error) {
	job := &domain.Job{}
	query := `SELECT ` + jobSelectList + `
		FROM jobs
		WHERE id = $1 AND owner_id = $2`

	err := r.db.GetContext(ctx, job, query, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get job: %w", err)
	}

	return job, nil
}

// ListByOwner retrieves all jobs belonging to the owner, newest first.
func (r *JobRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Job, error) {
	jobs := []domain.Job{}
	query := `SELECT ` + jobSelectList + `
		FROM jobs
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &jobs, query, ownerID); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	return jobs, nil
}

// ListPublished retrieves published jobs for the public listing.
func (r *JobRepository) ListPublished(ctx context.Context, limit int) ([]domain.Job, error) {
	jobs := []domain.Job{}
	query := `SELECT ` + jobSelectList + `
		FROM jobs
		WHERE status = 'published'
		ORDER BY published_at DESC
		LIMIT $1`

	if err := r.db.SelectContext(ctx, &jobs, query, limit); err != nil {
		return nil, fmt.Errorf("list published jobs: %w", err)
	}

	return jobs, nil
}

// Update applies a partial update to an owned job.
func (r *JobRepository) Update(ctx context.Context, id uuid.UUID, ownerID string, req *domain.JobUpdateRequest) (*domain.Job, error) {
	setClauses := []string{}
	args := []any{}
	argPos := 1

	if req.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argPos))
		args = append(args, *req.Title)
		argPos++
	}
	if req.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argPos))
		args = append(args, *req.Description)
		argPos++
	}
	if req.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", argPos))
		args = append(args, *req.Location)
		argPos++
	}
	if req.Status != nil {
		setClauses = append(setClauses, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}

	if len(setClauses) == 0 {
		return nil, domain.ErrNoFieldsToUpdate
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id, ownerID)

	query := fmt.Sprintf(`
		UPDATE jobs
		SET %s
		WHERE id = $%d AND owner_id = $%d
		RETURNING `+jobSelectList,
		strings.Join(setClauses, ", "), argPos, argPos+1,
	)

	job := &domain.Job{}
	err := r.db.QueryRowxContext(ctx, query, args...).StructScan(job)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update job: %w", err)
	}

	return job, nil
}

// Publish moves an owned draft job to published and stamps published_at.
func (r *JobRepository) Publish(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Job, error) {
	job := &domain.Job{}
	query := `
		UPDATE jobs
		SET status = 'published', published_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND status = 'draft'
		RETURNING ` + jobSelectList

	err := r.db.QueryRowxContext(ctx, query, id, ownerID).StructScan(job)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("publish job: %w", err)
	}

	return job, nil
}

// Delete removes an owned job.
func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM jobs WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
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
