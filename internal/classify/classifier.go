// Package classify assigns free-text job-description input to an input
// category and validates file uploads before any persistence happens.
package classify

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/causehire/recruit-api/internal/config"
	"github.com/causehire/recruit-api/internal/domain"
)

// urlPattern matches candidate http(s) URLs in free text. Candidates are
// validated with net/url before they count as a link.
var urlPattern = regexp.MustCompile(`https?://[^\s<>"']+`)

// Result is a classified free-text submission.
type Result struct {
	Category domain.InputCategory
	// SourceURL is the first well-formed URL found, set for link categories.
	SourceURL string
	// Brief is the input text with the URL removed, trimmed. Empty for link_only.
	Brief string
}

// Classifier applies the configured thresholds to raw input.
type Classifier struct {
	cfg config.ClassifyConfig
}

// NewClassifier creates a classifier with the given thresholds.
func NewClassifier(cfg config.ClassifyConfig) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify assigns raw text to brief, brief_with_link, or link_only.
// A brief with no URL and fewer than the minimum word count returns
// domain.ErrInsufficientDetail; the caller re-prompts instead of generating.
func (c *Classifier) Classify(text string) (*Result, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty input", domain.ErrInsufficientDetail)
	}

	link := firstWellFormedURL(trimmed)
	if link == "" {
		words := countWords(trimmed)
		if words < c.cfg.MinBriefWords {
			return nil, fmt.Errorf("%w: %d words, need at least %d",
				domain.ErrInsufficientDetail, words, c.cfg.MinBriefWords)
		}
		return &Result{Category: domain.CategoryBrief, Brief: trimmed}, nil
	}

	remainder := strings.TrimSpace(strings.Replace(trimmed, link, " ", 1))
	if countWords(remainder) < c.cfg.LinkWordThreshold {
		return &Result{Category: domain.CategoryLinkOnly, SourceURL: link}, nil
	}

	return &Result{
		Category:  domain.CategoryBriefWithLink,
		SourceURL: link,
		Brief:     remainder,
	}, nil
}

// firstWellFormedURL returns the first substring that parses as an absolute
// http(s) URL with a host, or "".
func firstWellFormedURL(text string) string {
	for _, candidate := range urlPattern.FindAllString(text, -1) {
		// Trailing sentence punctuation is not part of the URL.
		candidate = strings.TrimRight(candidate, ".,;:!?)")
		u, err := url.Parse(candidate)
		if err != nil || u.Host == "" {
			continue
		}
		return candidate
	}
	return ""
}

func countWords(text string) int {
	return len(strings.Fields(text))
}
