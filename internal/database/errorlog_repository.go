package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/causehire/recruit-api/internal/domain"
)

// ErrorLogRepository records server-side failures for later inspection.
// Writes are best effort; callers treat failures as non-fatal.
type ErrorLogRepository struct {
	db *sqlx.DB
}

// NewErrorLogRepository creates a new repository.
func NewErrorLogRepository(db *sqlx.DB) *ErrorLogRepository {
	return &ErrorLogRepository{db: db}
}

// Insert writes one error log row.
func (r *ErrorLogRepository) Insert(ctx context.Context, ownerID, source, message, detail string) error {
	query := `
		INSERT INTO error_logs (id, owner_id, source, message, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		uuid.New(), ownerID, source, message, detail, time.Now())
	if err != nil {
		return fmt.Errorf("insert error log: %w", err)
	}

	return nil
}

// ListRecent retrieves the caller's recent error logs, newest first.
func (r *ErrorLogRepository) ListRecent(ctx context.Context, ownerID string, limit int) ([]domain.ErrorLog, error) {
	logs := []domain.ErrorLog{}
	query := `
		SELECT id, owner_id, source, message, detail, created_at
		FROM error_logs
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	if err := r.db.SelectContext(ctx, &logs, query, ownerID, limit); err != nil {
		return nil, fmt.Errorf("list error logs: %w", err)
	}

	return logs, nil
}
