package upstream

import (
	"context"
	"strconv"
	"time"

	"prisoner-profile/internal/domain"
	"prisoner-profile/internal/format"
)

// cellMoveReasonDomain reference domain holding the cell move reason codes
const cellMoveReasonDomain = "CHG_HOUS_RSN"

// PrisonAPIClient prison-api
type PrisonAPIClient struct {
	apiClient
}

// GetAttributesForLocation cell attributes (e.g. "Listener Cell").
func (c *PrisonAPIClient) GetAttributesForLocation(ctx context.Context, locationID int64) ([]domain.LocationAttribute, error) {
	var out []domain.LocationAttribute
	_, err := c.get(ctx, request{
		operation:  "getAttributesForLocation",
		path:       "/api/cell/{locationId}/attributes",
		pathParams: map[string]string{"locationId": strconv.FormatInt(locationID, 10)},
	}, &out)
	return out, err
}

// GetHistoryForLocation every bed assignment in the cell between fromDate and toDate.
func (c *PrisonAPIClient) GetHistoryForLocation(ctx context.Context, locationID int64, fromDate, toDate time.Time) ([]domain.StayRecord, error) {
	var out []domain.StayRecord
	_, err := c.get(ctx, request{
		operation:  "getHistoryForLocation",
		path:       "/api/cell/{locationId}/history",
		pathParams: map[string]string{"locationId": strconv.FormatInt(locationID, 10)},
		query: map[string]string{
			"fromDate": fromDate.Format(format.QueryDateLayout),
			"toDate":   toDate.Format(format.QueryDateLayout),
		},
	}, &out)
	return out, err
}

// GetAgencyDetails nil when the agency is unknown.
func (c *PrisonAPIClient) GetAgencyDetails(ctx context.Context, agencyID string) (*domain.Agency, error) {
	var out domain.Agency
	found, err := c.get(ctx, request{
		operation:  "getAgencyDetails",
		path:       "/api/agencies/{agencyId}",
		pathParams: map[string]string{"agencyId": agencyID},
		query:      map[string]string{"activeOnly": "false"},
	}, &out)
	if err != nil || !found {
		return nil, err
	}
	return &out, nil
}

// GetCellMoveReasonTypes the CHG_HOUS_RSN reference codes.
func (c *PrisonAPIClient) GetCellMoveReasonTypes(ctx context.Context) ([]domain.ReferenceCode, error) {
	var out []domain.ReferenceCode
	_, err := c.get(ctx, request{
		operation:  "getCellMoveReasonTypes",
		path:       "/api/reference-domains/domains/{domain}",
		pathParams: map[string]string{"domain": cellMoveReasonDomain},
	}, &out)
	return out, err
}

// GetStaffDetails nil when the username is unknown.
func (c *PrisonAPIClient) GetStaffDetails(ctx context.Context, username string) (*domain.StaffDetails, error) {
	var out domain.StaffDetails
	found, err := c.get(ctx, request{
		operation:  "getStaffDetails",
		path:       "/api/users/{username}",
		pathParams: map[string]string{"username": username},
	}, &out)
	if err != nil || !found {
		return nil, err
	}
	return &out, nil
}

// GetDetails booking profile by booking id.
func (c *PrisonAPIClient) GetDetails(ctx context.Context, bookingID int64) (*domain.PrisonerDetails, error) {
	var out domain.PrisonerDetails
	found, err := c.get(ctx, request{
		operation:  "getDetails",
		path:       "/api/bookings/{bookingId}",
		pathParams: map[string]string{"bookingId": strconv.FormatInt(bookingID, 10)},
		query:      map[string]string{"basicInfo": "true"},
	}, &out)
	if err != nil || !found {
		return nil, err
	}
	return &out, nil
}

// GetDetailsByOffenderNo latest booking profile for a prisoner number.
func (c *PrisonAPIClient) GetDetailsByOffenderNo(ctx context.Context, offenderNo string) (*domain.PrisonerDetails, error) {
	var out domain.PrisonerDetails
	found, err := c.get(ctx, request{
		operation:  "getDetailsByOffenderNo",
		path:       "/api/bookings/offenderNo/{offenderNo}",
		pathParams: map[string]string{"offenderNo": offenderNo},
		query:      map[string]string{"fullInfo": "false"},
	}, &out)
	if err != nil || !found {
		return nil, err
	}
	return &out, nil
}

type bedAssignmentPage struct {
	Content []domain.StayRecord `json:"content"`
}

// GetOffenderCellHistory every bed assignment for a booking (single large page).
func (c *PrisonAPIClient) GetOffenderCellHistory(ctx context.Context, bookingID int64) ([]domain.StayRecord, error) {
	var out bedAssignmentPage
	_, err := c.get(ctx, request{
		operation:  "getOffenderCellHistory",
		path:       "/api/bookings/{bookingId}/cell-history",
		pathParams: map[string]string{"bookingId": strconv.FormatInt(bookingID, 10)},
		query:      map[string]string{"page": "0", "size": "10000"},
	}, &out)
	return out.Content, err
}
