package domain

import (
	"testing"
)

func TestNewDraft_Validation(t *testing.T) {
	testCases := []struct {
		name      string
		owner     string
		category  InputCategory
		rawInput  string
		sourceURL string
		wantErr   bool
	}{
		{
			name:     "valid brief draft",
			owner:    "user-1",
			category: CategoryBrief,
			rawInput: "We need a field coordinator for a migration project",
		},
		{
			name:      "valid link draft",
			owner:     "user-1",
			category:  CategoryLinkOnly,
			rawInput:  "https://jobs.example.org/posting/123",
			sourceURL: "https://jobs.example.org/posting/123",
		},
		{
			name:     "missing owner",
			category: CategoryBrief,
			rawInput: "some input",
			wantErr:  true,
		},
		{
			name:     "missing raw input",
			owner:    "user-1",
			category: CategoryBrief,
			wantErr:  true,
		},
		{
			name:     "unknown category",
			owner:    "user-1",
			category: InputCategory("website"),
			rawInput: "some input",
			wantErr:  true,
		},
		{
			name:     "link category without url",
			owner:    "user-1",
			category: CategoryBriefWithLink,
			rawInput: "brief text",
			wantErr:  true,
		},
		{
			name:      "brief category with url",
			owner:     "user-1",
			category:  CategoryBrief,
			rawInput:  "brief text",
			sourceURL: "https://example.org",
			wantErr:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := NewDraft(tc.owner, tc.category, tc.rawInput, tc.sourceURL)
			if (err != nil) != tc.wantErr {
				t.Fatalf("NewDraft() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil {
				return
			}
			if d.Status != DraftStatusPending {
				t.Errorf("new draft status = %q, want pending", d.Status)
			}
			if !d.Consistent() {
				t.Error("new draft violates text/error exclusivity")
			}
		})
	}
}

func TestDraft_Transitions(t *testing.T) {
	testCases := []struct {
		status    DraftStatus
		canStart  bool
		canRetry  bool
		canFinish bool
	}{
		{DraftStatusPending, true, false, false},
		{DraftStatusProcessing, false, false, true},
		{DraftStatusCompleted, false, false, false},
		{DraftStatusFailed, true, true, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.status), func(t *testing.T) {
			d := &Draft{Status: tc.status}
			if got := d.CanStart(); got != tc.canStart {
				t.Errorf("CanStart() = %v, want %v", got, tc.canStart)
			}
			if got := d.CanRetry(); got != tc.canRetry {
				t.Errorf("CanRetry() = %v, want %v", got, tc.canRetry)
			}
			if got := d.CanFinish(); got != tc.canFinish {
				t.Errorf("CanFinish() = %v, want %v", got, tc.canFinish)
			}
		})
	}
}

func TestDraft_Consistent(t *testing.T) {
	text := "generated description"
	detail := "timeout"

	d := &Draft{Status: DraftStatusCompleted, GeneratedText: &text}
	if !d.Consistent() {
		t.Error("draft with only generated text should be consistent")
	}

	d = &Draft{Status: DraftStatusFailed, ErrorDetail: &detail}
	if !d.Consistent() {
		t.Error("draft with only error detail should be consistent")
	}

	d = &Draft{Status: DraftStatusFailed, GeneratedText: &text, ErrorDetail: &detail}
	if d.Consistent() {
		t.Error("draft with both generated text and error detail must be inconsistent")
	}
}
