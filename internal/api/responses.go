package api

import "github.com/causehire/recruit-api/internal/domain"

// draftResponse augments the persisted draft with the user-facing progress
// vocabulary and a retry affordance hint.
type draftResponse struct {
	*domain.Draft
	Progress  string `json:"progress"`
	Retriable bool   `json:"retriable"`
}

func newDraftResponse(d *domain.Draft) draftResponse {
	return draftResponse{
		Draft:     d,
		Progress:  d.ProgressMessage(),
		Retriable: d.CanRetry(),
	}
}
