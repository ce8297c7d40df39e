// Package flags tracks per-user progress milestones. Flags gate which tools
// the UI presents as available; they never gate backend operations.
package flags

import (
	"context"
	"fmt"

	"github.com/causehire/recruit-api/internal/domain"
	"github.com/causehire/recruit-api/internal/logger"
)

// Store is the persistence surface the tracker needs.
type Store interface {
	Get(ctx context.Context, userID string) (*domain.ProgressFlags, error)
	Set(ctx context.Context, userID, name string, value bool) error
	SetMany(ctx context.Context, userID string, values map[string]bool) error
}

// Tracker reads and writes progress flags with upsert semantics.
type Tracker struct {
	store  Store
	logger logger.Logger
}

// NewTracker creates a tracker.
func NewTracker(store Store, log logger.Logger) *Tracker {
	return &Tracker{store: store, logger: log}
}

// Get returns the user's flags, creating the default all-false record on
// first access.
func (t *Tracker) Get(ctx context.Context, userID string) (*domain.ProgressFlags, error) {
	return t.store.Get(ctx, userID)
}

// SetMany applies a partial flag update. Flag names are validated before any
// write; flags are independent and may be set in any order.
func (t *Tracker) SetMany(ctx context.Context, userID string, values map[string]bool) error {
	if len(values) == 0 {
		return domain.ErrNoFieldsToUpdate
	}
	for name := range values {
		if !domain.ValidFlag(name) {
			return fmt.Errorf("%w: %q", domain.ErrUnknownFlag, name)
		}
	}
	return t.store.SetMany(ctx, userID, values)
}

// Record flips flags as a side effect of a user action. Failures are logged
// and swallowed: the flags are advisory UI state, and losing a write leaves
// recoverable staleness, not corruption.
func (t *Tracker) Record(ctx context.Context, userID string, values map[string]bool) {
	if err := t.store.SetMany(ctx, userID, values); err != nil {
		t.logger.Warn("progress flag write failed",
			logger.String("user_id", userID),
			logger.Any("flags", values),
			logger.Error(err))
	}
}
