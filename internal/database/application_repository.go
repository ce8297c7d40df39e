package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/causehire/recruit-api/internal/domain"
)

const applicationSelectList = `id, job_id, candidate_id, cover_note, cv_text,
			status, created_at, updated_at`

// ApplicationRepository manages job applications. A row is owned by its
// candidate; the posting organization can read and review applications to its
// own jobs through join-guarded queries.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository creates a new repository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create submits an application to a published job. A second application by
// the same candidate to the same job hits the unique constraint.
func (r *ApplicationRepository) Create(ctx context.Context, candidateID string, req *domain.ApplicationCreateRequest) (*domain.Application, error) {
	app := &domain.Application{
		ID:          uuid.New(),
		JobID:       req.JobID,
		CandidateID: candidateID,
		CoverNote:   req.CoverNote,
		CVText:      req.CVText,
		Status:      domain.ApplicationStatusSubmitted,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	query := `
		INSERT INTO applications (id, job_id, candidate_id, cover_note, cv_text,
			status, created_at, updated_at)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8
		WHERE EXISTS (SELECT 1 FROM jobs WHERE id = $2 AND status = 'published')
		RETURNING ` + applicationSelectList

	err := r.db.QueryRowxContext(
		ctx, query,
		app.ID, app.JobID, app.CandidateID, app.CoverNote, app.CVText,
		app.Status, app.CreatedAt, app.UpdatedAt,
	).StructScan(app)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return nil, domain.ErrAlreadyExists
		}
		if errors.Is(err, sql.ErrNoRows) {
			// Job missing or not published.
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("create application: %w", err)
	}

	return app, nil
}

// GetByID retrieves an application visible to the caller: its candidate or
// the owner of the job it targets.
func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID, callerID string) (*domain.Application, error) {
	app := &domain.Application{}
	query := `
		SELECT a.id, a.job_id, a.candidate_id, a.cover_note, a.cv_text,
		       a.status, a.created_at, a.updated_at
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.id = $1 AND (a.candidate_id = $2 OR j.owner_id = $2)`

	err := r.db.GetContext(ctx, app, query, id, callerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get application: %w", err)
	}

	return app, nil
}

// ListByCandidate retrieves the candidate's own applications, newest first.
func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Application, error) {
	apps := []domain.Application{}
	query := `SELECT ` + applicationSelectList + `
		FROM applications
		WHERE candidate_id = $1
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &apps, query, candidateID); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	return apps, nil
}

// ListForJob retrieves applications to a job, visible only to the job owner.
func (r *ApplicationRepository) ListForJob(ctx context.Context, jobID uuid.UUID, ownerID string) ([]domain.Application, error) {
	apps := []domain.Application{}
	query := `
		SELECT a.id, a.job_id, a.candidate_id, a.cover_note, a.cv_text,
		       a.status, a.created_at, a.updated_at
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.job_id = $1 AND j.owner_id = $2
		ORDER BY a.created_at ASC`

	if err := r.db.SelectContext(ctx, &apps, query, jobID, ownerID); err != nil {
		return nil, fmt.Errorf("list applications for job: %w", err)
	}

	return apps, nil
}

// UpdateStatusAsCandidate lets the candidate withdraw their own application.
func (r *ApplicationRepository) UpdateStatusAsCandidate(ctx context.Context, id uuid.UUID, candidateID string) (*domain.Application, error) {
	app := &domain.Application{}
	query := `
		UPDATE applications
		SET status = 'withdrawn', updated_at = NOW()
		WHERE id = $1 AND candidate_id = $2 AND status IN ('submitted', 'reviewing')
		RETURNING ` + applicationSelectList

	err := r.db.QueryRowxContext(ctx, query, id, candidateID).StructScan(app)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("withdraw application: %w", err)
	}

	return app, nil
}

// UpdateStatusAsJobOwner lets the posting organization move an application
// through review states.
func (r *ApplicationRepository) UpdateStatusAsJobOwner(ctx context.Context, id uuid.UUID, ownerID string, status domain.ApplicationStatus) (*domain.Application, error) {
	app := &domain.Application{}
	query := `
		UPDATE applications a
		SET status = $3, updated_at = NOW()
		FROM jobs j
		WHERE a.id = $1 AND j.id = a.job_id AND j.owner_id = $2
		RETURNING a.id, a.job_id, a.candidate_id, a.cover_note, a.cv_text,
		          a.status, a.created_at, a.updated_at`

	err := r.db.QueryRowxContext(ctx, query, id, ownerID, status).StructScan(app)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update application status: %w", err)
	}

	return app, nil
}

// Delete removes a candidate's own application.
func (r *ApplicationRepository) Delete(ctx context.Context, id uuid.UUID, candidateID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM applications WHERE id = $1 AND candidate_id = $2`, id, candidateID)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
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
