package service

import (
	"context"
	"sync"
	"time"

	"prisoner-profile/internal/domain"
)

// fakePrisonAPI in-memory prison-api; errors keyed by operation name.
type fakePrisonAPI struct {
	mu sync.Mutex

	attributes     []domain.LocationAttribute
	history        []domain.StayRecord
	agencies       map[string]*domain.Agency
	reasonTypes    []domain.ReferenceCode
	staff          map[string]*domain.StaffDetails
	details        map[int64]*domain.PrisonerDetails
	bookingHistory map[int64][]domain.StayRecord

	errs  map[string]error
	calls map[string]int
}

func newFakePrisonAPI() *fakePrisonAPI {
	return &fakePrisonAPI{
		agencies:       map[string]*domain.Agency{},
		staff:          map[string]*domain.StaffDetails{},
		details:        map[int64]*domain.PrisonerDetails{},
		bookingHistory: map[int64][]domain.StayRecord{},
		errs:           map[string]error{},
		calls:          map[string]int{},
	}
}

func (f *fakePrisonAPI) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.errs[op]
}

func (f *fakePrisonAPI) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakePrisonAPI) GetAttributesForLocation(ctx context.Context, locationID int64) ([]domain.LocationAttribute, error) {
	if err := f.record("getAttributesForLocation"); err != nil {
		return nil, err
	}
	return f.attributes, nil
}

func (f *fakePrisonAPI) GetHistoryForLocation(ctx context.Context, locationID int64, fromDate, toDate time.Time) ([]domain.StayRecord, error) {
	if err := f.record("getHistoryForLocation"); err != nil {
		return nil, err
	}
	return f.history, nil
}

func (f *fakePrisonAPI) GetAgencyDetails(ctx context.Context, agencyID string) (*domain.Agency, error) {
	if err := f.record("getAgencyDetails"); err != nil {
		return nil, err
	}
	return f.agencies[agencyID], nil
}

func (f *fakePrisonAPI) GetCellMoveReasonTypes(ctx context.Context) ([]domain.ReferenceCode, error) {
	if err := f.record("getCellMoveReasonTypes"); err != nil {
		return nil, err
	}
	return f.reasonTypes, nil
}

func (f *fakePrisonAPI) GetStaffDetails(ctx context.Context, username string) (*domain.StaffDetails, error) {
	if err := f.record("getStaffDetails"); err != nil {
		return nil, err
	}
	return f.staff[username], nil
}

func (f *fakePrisonAPI) GetDetails(ctx context.Context, bookingID int64) (*domain.PrisonerDetails, error) {
	if err := f.record("getDetails"); err != nil {
		return nil, err
	}
	return f.details[bookingID], nil
}

func (f *fakePrisonAPI) GetDetailsByOffenderNo(ctx context.Context, offenderNo string) (*domain.PrisonerDetails, error) {
	if err := f.record("getDetailsByOffenderNo"); err != nil {
		return nil, err
	}
	for _, d := range f.details {
		if d.OffenderNo == offenderNo {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakePrisonAPI) GetOffenderCellHistory(ctx context.Context, bookingID int64) ([]domain.StayRecord, error) {
	if err := f.record("getOffenderCellHistory"); err != nil {
		return nil, err
	}
	return f.bookingHistory[bookingID], nil
}

type fakeWhereaboutsAPI struct {
	mu      sync.Mutex
	reasons map[int64]map[int]*domain.CellMoveReason
	err     error
	calls   int
}

func (f *fakeWhereaboutsAPI) GetCellMoveReason(ctx context.Context, bookingID int64, bedAssignmentSequence int) (*domain.CellMoveReason, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.reasons[bookingID][bedAssignmentSequence], nil
}

type fakeCaseNotesAPI struct {
	mu    sync.Mutex
	notes map[int64]*domain.CaseNote
	err   error
	calls int
}

func (f *fakeCaseNotesAPI) GetCaseNote(ctx context.Context, offenderNo string, caseNoteID int64) (*domain.CaseNote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.notes[caseNoteID], nil
}

func strPtr(s string) *string { return &s }

func at(s string) domain.LocalDateTime {
	t, err := time.Parse(domain.LocalDateTimeLayout, s)
	if err != nil {
		panic(err)
	}
	return domain.NewLocalDateTime(t)
}

func atPtr(s string) *domain.LocalDateTime {
	d := at(s)
	return &d
}
