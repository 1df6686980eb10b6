package service

import (
	"context"
	"time"

	"prisoner-profile/internal/domain"
)

// PrisonAPI prison-api operations used by the location services.
// A nil result with a nil error means the upstream had no such record.
type PrisonAPI interface {
	GetAttributesForLocation(ctx context.Context, locationID int64) ([]domain.LocationAttribute, error)
	GetHistoryForLocation(ctx context.Context, locationID int64, fromDate, toDate time.Time) ([]domain.StayRecord, error)
	GetAgencyDetails(ctx context.Context, agencyID string) (*domain.Agency, error)
	GetCellMoveReasonTypes(ctx context.Context) ([]domain.ReferenceCode, error)
	GetStaffDetails(ctx context.Context, username string) (*domain.StaffDetails, error)
	GetDetails(ctx context.Context, bookingID int64) (*domain.PrisonerDetails, error)
	GetDetailsByOffenderNo(ctx context.Context, offenderNo string) (*domain.PrisonerDetails, error)
	GetOffenderCellHistory(ctx context.Context, bookingID int64) ([]domain.StayRecord, error)
}

// WhereaboutsAPI whereabouts-api
type WhereaboutsAPI interface {
	GetCellMoveReason(ctx context.Context, bookingID int64, bedAssignmentSequence int) (*domain.CellMoveReason, error)
}

// CaseNotesAPI case-notes-api
type CaseNotesAPI interface {
	GetCaseNote(ctx context.Context, offenderNo string, caseNoteID int64) (*domain.CaseNote, error)
}
