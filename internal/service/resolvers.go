package service

import (
	"context"
	"fmt"

	"prisoner-profile/internal/domain"
	"prisoner-profile/internal/format"
)

// StaffNameResolver username -> display name
type StaffNameResolver struct {
	prison PrisonAPI
}

// Resolve returns "" for an empty or unknown username. Upstream errors are returned.
func (r StaffNameResolver) Resolve(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", nil
	}
	staff, err := r.prison.GetStaffDetails(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to get staff details for %s: %w", username, err)
	}
	if staff == nil {
		return "", nil
	}
	return format.Name(staff.FirstName, staff.LastName), nil
}

// CellMoveReasonResolver reason code -> description, from the CHG_HOUS_RSN taxonomy
type CellMoveReasonResolver struct {
	descriptions map[string]string
}

func NewCellMoveReasonResolver(codes []domain.ReferenceCode) CellMoveReasonResolver {
	descriptions := make(map[string]string, len(codes))
	for _, c := range codes {
		descriptions[c.Code] = c.Description
	}
	return CellMoveReasonResolver{descriptions: descriptions}
}

// Describe "Not entered" for a nil or unknown code.
func (r CellMoveReasonResolver) Describe(code *string) string {
	if code == nil {
		return domain.NotEntered
	}
	if d, ok := r.descriptions[*code]; ok && d != "" {
		return d
	}
	return domain.NotEntered
}
