package database

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/causehire/recruit-api/internal/domain"
)

const flagsSelectList = `user_id, has_uploaded_cv, has_analyzed_cv, has_generated_jd,
			has_published_job, has_applied_to_job, jd_generation_failed,
			created_at, updated_at`

// flagColumns maps progress flag names to their columns. Flag names double as
// column names, but the map is the whitelist that keeps user input out of SQL.
var flagColumns = map[string]string{
	domain.FlagUploadedCV:         "has_uploaded_cv",
	domain.FlagAnalyzedCV:         "has_analyzed_cv",
	domain.FlagGeneratedJD:        "has_generated_jd",
	domain.FlagPublishedJob:       "has_published_job",
	domain.FlagAppliedToJob:       "has_applied_to_job",
	domain.FlagJDGenerationFailed: "jd_generation_failed",
}

// FlagsRepository manages per-user progress flags with upsert semantics.
type FlagsRepository struct {
	db *sqlx.DB
}

// NewFlagsRepository creates a new repository.
func NewFlagsRepository(db *sqlx.DB) *FlagsRepository {
	return &FlagsRepository{db: db}
}

// Get returns the user's flag record, creating the default all-false record
// on first access.
func (r *FlagsRepository) Get(ctx context.Context, userID string) (*domain.ProgressFlags, error) {
	flags := &domain.ProgressFlags{}
	query := `
		INSERT INTO user_progress_flags (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING ` + flagsSelectList

	err := r.db.QueryRowxContext(ctx, query, userID).StructScan(flags)
	if err != nil {
		return nil, fmt.Errorf("get progress flags: %w", err)
	}

	return flags, nil
}

// Set writes a single flag, creating the record if it does not exist.
func (r *FlagsRepository) Set(ctx context.Context, userID, name string, value bool) error {
	return r.SetMany(ctx, userID, map[string]bool{name: value})
}

// SetMany writes several flags in one upsert. Unknown flag names are rejected
// before any SQL is built.
func (r *FlagsRepository) SetMany(ctx context.Context, userID string, values map[string]bool) error {
	if len(values) == 0 {
		return domain.ErrNoFieldsToUpdate
	}

	// Deterministic column order keeps the statement stable for tests and logs.
	names := make([]string, 0, len(values))
	for name := range values {
		if _, ok := flagColumns[name]; !ok {
			return fmt.Errorf("%w: %q", domain.ErrUnknownFlag, name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	cols := make([]string, 0, len(names))
	placeholders := make([]string, 0, len(names))
	assignments := make([]string, 0, len(names))
	args := make([]any, 0, len(names)+1)
	args = append(args, userID)

	for i, name := range names {
		col := flagColumns[name]
		cols = append(cols, col)
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		assignments = append(assignments, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		args = append(args, values[name])
	}

	query := fmt.Sprintf(`
		INSERT INTO user_progress_flags (user_id, %s)
		VALUES ($1, %s)
		ON CONFLICT (user_id) DO UPDATE SET %s, updated_at = NOW()`,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(assignments, ", "),
	)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set progress flags: %w", err)
	}

	return nil
}
