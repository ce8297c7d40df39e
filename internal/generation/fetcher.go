package generation

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/causehire/recruit-api/internal/domain"
)

const (
	// maxContextChars caps fetched page text before it enters a prompt.
	maxContextChars = 8000

	userAgent = "recruit-api/1.0 (+https://causehire.org)"
)

// stripSelectors are removed from fetched pages before text extraction.
var stripSelectors = []string{"script", "style", "noscript", "nav", "header", "footer", "iframe", "svg"}

// Fetcher downloads a linked page and extracts its visible text for use as
// generation context.
type Fetcher struct {
	httpClient *http.Client
	cache      *ContextCache
}

// NewFetcher creates a fetcher with the given timeout and optional cache.
func NewFetcher(timeout time.Duration, cache *ContextCache) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
	}
}

// FetchText returns the visible text of the page at url, from cache when
// possible. Fetch and parse failures surface as domain.ErrGeneration since
// they abort the generation attempt the same way a model failure does.
func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	if text, ok := f.cache.Get(ctx, url); ok {
		return text, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", domain.ErrGeneration, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetch %s: %v", domain.ErrGeneration, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: fetch %s: status %d", domain.ErrGeneration, url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: parse %s: %v", domain.ErrGeneration, url, err)
	}

	for _, sel := range stripSelectors {
		doc.Find(sel).Remove()
	}

	text := collapseWhitespace(doc.Find("body").Text())
	if text == "" {
		return "", fmt.Errorf("%w: no readable text at %s", domain.ErrGeneration, url)
	}
	if len(text) > maxContextChars {
		text = text[:maxContextChars]
	}

	f.cache.Put(ctx, url, text)
	return text, nil
}

// collapseWhitespace joins the page's text fragments into single-spaced prose.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
