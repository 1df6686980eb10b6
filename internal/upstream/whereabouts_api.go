package upstream

import (
	"context"
	"strconv"

	"prisoner-profile/internal/domain"
)

// WhereaboutsAPIClient whereabouts-api
type WhereaboutsAPIClient struct {
	apiClient
}

type cellMoveReasonResponse struct {
	CellMoveReason *domain.CellMoveReason `json:"cellMoveReason"`
}

// GetCellMoveReason nil when the move was not made through the cell move workflow.
func (c *WhereaboutsAPIClient) GetCellMoveReason(ctx context.Context, bookingID int64, bedAssignmentSequence int) (*domain.CellMoveReason, error) {
	var out cellMoveReasonResponse
	found, err := c.get(ctx, request{
		operation: "getCellMoveReason",
		path:      "/cell/cell-move-reason/booking/{bookingId}/bed-assignment-sequence/{sequence}",
		pathParams: map[string]string{
			"bookingId": strconv.FormatInt(bookingID, 10),
			"sequence":  strconv.Itoa(bedAssignmentSequence),
		},
	}, &out)
	if err != nil || !found {
		return nil, err
	}
	return out.CellMoveReason, nil
}
