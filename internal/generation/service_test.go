package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/causehire/recruit-api/internal/domain"
	"github.com/causehire/recruit-api/internal/logger"
)

// fakeModel records the last prompt and returns a canned response.
type fakeModel struct {
	lastSystem string
	lastPrompt string
	response   string
	err        error
}

func (m *fakeModel) Complete(_ context.Context, system, prompt string) (string, error) {
	m.lastSystem = system
	m.lastPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func newTestService(model TextModel, pageBody string) (*Service, *httptest.Server) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, pageBody)
	}))
	fetcher := NewFetcher(2*time.Second, nil)
	return NewService(model, fetcher, logger.NewNopLogger()), srv
}

func TestGenerate_BriefUsesBriefOnlyPrompt(t *testing.T) {
	model := &fakeModel{response: "generated JD"}
	svc, srv := newTestService(model, "")
	defer srv.Close()

	text, err := svc.Generate(context.Background(), Request{
		Category: domain.CategoryBrief,
		Brief:    "We need a field coordinator for our Kenya migration project",
	})
	require.NoError(t, err)
	assert.Equal(t, "generated JD", text)
	assert.Contains(t, model.lastPrompt, "field coordinator")
	assert.NotContains(t, model.lastPrompt, "Organization page content")
}

func TestGenerate_BriefWithLinkIncludesPageContext(t *testing.T) {
	model := &fakeModel{response: "generated JD"}
	svc, srv := newTestService(model,
		`<html><body><p>We dig wells in arid regions.</p><script>junk()</script></body></html>`)
	defer srv.Close()

	text, err := svc.Generate(context.Background(), Request{
		Category:  domain.CategoryBriefWithLink,
		Brief:     "hiring a program manager",
		SourceURL: srv.URL,
	})
	require.NoError(t, err)
	assert.Equal(t, "generated JD", text)
	assert.Contains(t, model.lastPrompt, "We dig wells in arid regions.")
	assert.NotContains(t, model.lastPrompt, "junk()")
}

func TestGenerate_LinkOnlyRewritesPosting(t *testing.T) {
	model := &fakeModel{response: "rewritten JD"}
	svc, srv := newTestService(model,
		`<html><body><h1>Water Engineer</h1><p>Salary: 40k</p></body></html>`)
	defer srv.Close()

	text, err := svc.Generate(context.Background(), Request{
		Category:  domain.CategoryLinkOnly,
		SourceURL: srv.URL,
	})
	require.NoError(t, err)
	assert.Equal(t, "rewritten JD", text)
	assert.Contains(t, model.lastPrompt, "Water Engineer")
	assert.Contains(t, model.lastPrompt, "Rewrite")
}

func TestGenerate_UploadRefinesExtractedText(t *testing.T) {
	model := &fakeModel{response: "refined JD"}
	svc, srv := newTestService(model, "")
	defer srv.Close()

	text, err := svc.Generate(context.Background(), Request{
		Category:      domain.CategoryUpload,
		ExtractedText: "Project Officer. Duties: reporting, logistics.",
	})
	require.NoError(t, err)
	assert.Equal(t, "refined JD", text)
	assert.Contains(t, model.lastPrompt, "Project Officer")
}

func TestGenerate_FetchFailureIsGenerationError(t *testing.T) {
	model := &fakeModel{response: "unused"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := NewService(model, NewFetcher(2*time.Second, nil), logger.NewNopLogger())

	_, err := svc.Generate(context.Background(), Request{
		Category:  domain.CategoryLinkOnly,
		SourceURL: srv.URL,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrGeneration))
	// The model was never called.
	assert.Empty(t, model.lastPrompt)
}

func TestGenerate_ModelFailurePropagates(t *testing.T) {
	model := &fakeModel{err: fmt.Errorf("%w: quota exceeded", domain.ErrGeneration)}
	svc, srv := newTestService(model, "")
	defer srv.Close()

	_, err := svc.Generate(context.Background(), Request{
		Category: domain.CategoryBrief,
		Brief:    strings.Repeat("word ", 20),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrGeneration))
}

func TestGenerate_UnknownCategoryFails(t *testing.T) {
	model := &fakeModel{response: "unused"}
	svc, srv := newTestService(model, "")
	defer srv.Close()

	_, err := svc.Generate(context.Background(), Request{Category: "website"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrGeneration))
}
