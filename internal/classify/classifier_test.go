package classify

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/causehire/recruit-api/internal/config"
	"github.com/causehire/recruit-api/internal/domain"
)

func testConfig() config.ClassifyConfig {
	return config.ClassifyConfig{
		LinkWordThreshold:  8,
		MinBriefWords:      10,
		UploadTextCap:      5000,
		MaxUploadSizeBytes: 10 << 20,
	}
}

func TestClassify_Categories(t *testing.T) {
	c := NewClassifier(testConfig())

	testCases := []struct {
		name         string
		input        string
		wantCategory domain.InputCategory
		wantURL      string
	}{
		{
			name: "brief with organization link",
			input: "We need a field coordinator for a migration project in Kenya. " +
				"Our organization: https://example.org",
			wantCategory: domain.CategoryBriefWithLink,
			wantURL:      "https://example.org",
		},
		{
			name:         "bare posting link",
			input:        "https://jobs.example.org/posting/123",
			wantCategory: domain.CategoryLinkOnly,
			wantURL:      "https://jobs.example.org/posting/123",
		},
		{
			name:         "link with a few words still counts as link only",
			input:        "please rewrite this https://jobs.example.org/posting/123",
			wantCategory: domain.CategoryLinkOnly,
			wantURL:      "https://jobs.example.org/posting/123",
		},
		{
			name: "plain brief with enough words",
			input: "Our nonprofit is hiring a program manager to lead water " +
				"sanitation projects across three districts",
			wantCategory: domain.CategoryBrief,
		},
		{
			name:         "trailing punctuation is stripped from the link",
			input:        "Take a look at our current opening and make it better: https://example.org/jobs/7.",
			wantCategory: domain.CategoryBriefWithLink,
			wantURL:      "https://example.org/jobs/7",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := c.Classify(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.wantCategory, result.Category)
			assert.Equal(t, tc.wantURL, result.SourceURL)
		})
	}
}

func TestClassify_InsufficientDetail(t *testing.T) {
	c := NewClassifier(testConfig())

	testCases := []struct {
		name  string
		input string
	}{
		{"three words no url", "need a coordinator"},
		{"nine words no url", "we are a nonprofit looking for a program manager"},
		{"empty input", ""},
		{"whitespace only", "   \n\t "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Classify(tc.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInsufficientDetail))
		})
	}
}

func TestClassify_WordThresholdBoundary(t *testing.T) {
	c := NewClassifier(testConfig())

	// Exactly the threshold of non-URL words flips link_only to brief_with_link.
	sevenWords := "one two three four five six seven https://example.org"
	result, err := c.Classify(sevenWords)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryLinkOnly, result.Category)

	eightWords := "one two three four five six seven eight https://example.org"
	result, err = c.Classify(eightWords)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryBriefWithLink, result.Category)
	assert.NotContains(t, result.Brief, "https://")
}

func TestClassify_MalformedURLIsJustText(t *testing.T) {
	c := NewClassifier(testConfig())

	// "https://" with no host does not count as a link, so this is a brief.
	input := "we keep our postings at https:// and need a coordinator for the relief program"
	result, err := c.Classify(input)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryBrief, result.Category)
}

func TestValidateUpload(t *testing.T) {
	c := NewClassifier(testConfig())

	testCases := []struct {
		name     string
		filename string
		size     int64
		wantErr  bool
	}{
		{"pdf allowed", "cv.pdf", 1024, false},
		{"docx allowed", "Resume Final.DOCX", 1024, false},
		{"txt allowed", "notes.txt", 1024, false},
		{"doc allowed", "cv.doc", 1024, false},
		{"image rejected", "photo.png", 1024, true},
		{"no extension rejected", "resume", 1024, true},
		{"oversized rejected", "cv.pdf", 11 << 20, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := c.ValidateUpload(tc.filename, tc.size)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrUnsupportedFile))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTruncateForPrompt(t *testing.T) {
	c := NewClassifier(testConfig())

	long := strings.Repeat("a", 6000)
	assert.Len(t, c.TruncateForPrompt(long), 5000)

	short := "short extracted text"
	assert.Equal(t, short, c.TruncateForPrompt("  "+short+"\n"))
}
