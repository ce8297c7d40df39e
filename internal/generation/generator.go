// Package generation turns classified job-description input into generated
// text via an external model, with link fetching and context caching.
package generation

import (
	"context"

	"github.com/causehire/recruit-api/internal/domain"
)

// Request carries everything a generation strategy needs. Exactly one
// strategy runs per request, keyed by Category.
type Request struct {
	Category domain.InputCategory
	// Brief is the user's free-text description (brief and brief_with_link).
	Brief string
	// SourceURL is the posting or organization link (link categories).
	SourceURL string
	// ExtractedText is the capped file text (upload).
	ExtractedText string
}

// Generator produces job-description text for a classified input. It is
// stateless and performs no retries; retrying is the draft service's job,
// operating at the draft level.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
