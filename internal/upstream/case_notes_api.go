package upstream

import (
	"context"
	"strconv"

	"prisoner-profile/internal/domain"
)

// CaseNotesAPIClient case-notes-api
type CaseNotesAPIClient struct {
	apiClient
}

// GetCaseNote nil when the case note does not exist.
func (c *CaseNotesAPIClient) GetCaseNote(ctx context.Context, offenderNo string, caseNoteID int64) (*domain.CaseNote, error) {
	var out domain.CaseNote
	found, err := c.get(ctx, request{
		operation: "getCaseNote",
		path:      "/case-notes/{offenderNo}/{caseNoteId}",
		pathParams: map[string]string{
			"offenderNo": offenderNo,
			"caseNoteId": strconv.FormatInt(caseNoteID, 10),
		},
	}, &out)
	if err != nil || !found {
		return nil, err
	}
	return &out, nil
}
