package generation

import (
	"context"
	"fmt"

	"github.com/causehire/recruit-api/internal/domain"
	"github.com/causehire/recruit-api/internal/logger"
)

// Service routes a classified request to one of four generation strategies.
// It is stateless: the same request may be submitted again on retry and runs
// the same strategy (output varies with the model, not with the router).
type Service struct {
	model   TextModel
	fetcher *Fetcher
	logger  logger.Logger
}

// NewService creates a generation service.
func NewService(model TextModel, fetcher *Fetcher, log logger.Logger) *Service {
	return &Service{
		model:   model,
		fetcher: fetcher,
		logger:  log,
	}
}

// Generate produces job-description text for req. Strategies are mutually
// exclusive on Category; an unknown category is a programming error upstream
// and reported as such.
func (s *Service) Generate(ctx context.Context, req Request) (string, error) {
	switch req.Category {
	case domain.CategoryBrief:
		return s.model.Complete(ctx, systemPrompt, briefPrompt(req.Brief))

	case domain.CategoryBriefWithLink:
		pageText, err := s.fetcher.FetchText(ctx, req.SourceURL)
		if err != nil {
			return "", err
		}
		s.logger.Debug("fetched organization context",
			logger.String("url", req.SourceURL),
			logger.Int("context_chars", len(pageText)))
		return s.model.Complete(ctx, systemPrompt, briefWithContextPrompt(req.Brief, pageText))

	case domain.CategoryLinkOnly:
		posting, err := s.fetcher.FetchText(ctx, req.SourceURL)
		if err != nil {
			return "", err
		}
		s.logger.Debug("fetched posting for rewrite",
			logger.String("url", req.SourceURL),
			logger.Int("posting_chars", len(posting)))
		return s.model.Complete(ctx, systemPrompt, rewritePrompt(posting))

	case domain.CategoryUpload:
		return s.model.Complete(ctx, systemPrompt, refinePrompt(req.ExtractedText))
	}

	return "", fmt.Errorf("%w: no strategy for category %q", domain.ErrGeneration, req.Category)
}
