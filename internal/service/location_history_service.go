package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"prisoner-profile/internal/domain"
	"prisoner-profile/internal/format"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LocationHistoryRequest 查询某个 cell 在时间窗口内的占用历史
type LocationHistoryRequest struct {
	// Prisoner is the person whose profile is being viewed (the current occupant).
	Prisoner    domain.PrisonerDetails
	AgencyID    string
	LocationID  int64
	FromDate    time.Time
	ToDate      time.Time
	CaseLoadIDs []string
}

// LocationHistoryService reconstructs one prisoner's stay in a cell and who shared it with them.
// Build one per request: the upstream clients it holds are bound to the viewer's token.
type LocationHistoryService struct {
	prison       PrisonAPI
	staffNames   StaffNameResolver
	whatHappened *WhatHappenedResolver
	logger       *zap.Logger
}

func NewLocationHistoryService(prison PrisonAPI, whereabouts WhereaboutsAPI, caseNotes CaseNotesAPI, logger *zap.Logger) *LocationHistoryService {
	return &LocationHistoryService{
		prison:       prison,
		staffNames:   StaffNameResolver{prison: prison},
		whatHappened: NewWhatHappenedResolver(whereabouts, caseNotes, logger),
		logger:       logger,
	}
}

// GetLocationHistory 聚合 cell 历史、staff、cell move reason、case note
func (s *LocationHistoryService) GetLocationHistory(ctx context.Context, req LocationHistoryRequest) (*domain.LocationHistoryResult, error) {
	// 1. location-level data, fetched concurrently; any failure is fatal
	var (
		attributes  []domain.LocationAttribute
		history     []domain.StayRecord
		agency      *domain.Agency
		reasonTypes []domain.ReferenceCode
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		attributes, err = s.prison.GetAttributesForLocation(gctx, req.LocationID)
		return err
	})
	g.Go(func() (err error) {
		history, err = s.prison.GetHistoryForLocation(gctx, req.LocationID, req.FromDate, req.ToDate)
		return err
	})
	g.Go(func() (err error) {
		agency, err = s.prison.GetAgencyDetails(gctx, req.AgencyID)
		return err
	})
	g.Go(func() (err error) {
		reasonTypes, err = s.prison.GetCellMoveReasonTypes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to get location history for location %d: %w", req.LocationID, err)
	}

	// 2. the viewed prisoner's own record in the window
	current, found := findCurrentRecord(history, req.Prisoner.BookingID)

	details := domain.LocationDetails{
		BookingID:     req.Prisoner.BookingID,
		Description:   locationDescription(current, history, req.AgencyID),
		ReasonForMove: domain.NotEntered,
		WhatHappened:  domain.NotEntered,
		Attributes:    attributes,
	}
	if details.Attributes == nil {
		details.Attributes = []domain.LocationAttribute{}
	}
	if agency != nil {
		details.Establishment = agency.Description
	}

	if found {
		// 3. who moved them
		movedInBy, err := s.staffNames.Resolve(ctx, current.MovementMadeBy)
		if err != nil {
			return nil, err
		}

		// 4. why, from the case note written during the move
		whatHappened := s.whatHappened.Resolve(ctx, current.BookingID, req.Prisoner.OffenderNo, current.BedAssignmentHistorySequence)

		// 5. the reason code is only shown when a case note backs it up
		if whatHappened != nil {
			details.WhatHappened = *whatHappened
			details.ReasonForMove = NewCellMoveReasonResolver(reasonTypes).Describe(current.AssignmentReason)
		}

		details.MovedIn = format.DateTime(current.AssignmentDateTime.Time)
		details.MovedOut = domain.CurrentCell
		if !current.Ongoing() {
			details.MovedOut = format.DateTime(current.AssignmentEndDateTime.Time)
		}
		details.MovedInBy = movedInBy
	}

	// 6. who each occupant was
	profiles, err := s.getProfiles(ctx, history)
	if err != nil {
		return nil, err
	}

	// 7. newest first
	sorted := make([]domain.StayRecord, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AssignmentDateTime.After(sorted[j].AssignmentDateTime.Time)
	})

	// 8. everybody except the viewed prisoner
	prisonerName := format.Name(req.Prisoner.FirstName, req.Prisoner.LastName)
	sharing := make([]domain.SharingHistoryEntry, 0, len(sorted))
	for _, record := range sorted {
		if record.BookingID == req.Prisoner.BookingID {
			continue
		}
		entry := domain.SharingHistoryEntry{
			BookingID:    record.BookingID,
			PrisonerNo:   record.OffenderNo,
			MovedIn:      format.DateTime(record.AssignmentDateTime.Time),
			MovedOutText: movedOutText(current, found, record, prisonerName),
			ShouldLink:   record.AgencyID != nil && containsString(req.CaseLoadIDs, *record.AgencyID),
		}
		if p := profiles[record.BookingID]; p != nil {
			entry.Name = format.NameLastFirst(p.FirstName, p.LastName)
			if p.OffenderNo != "" {
				entry.PrisonerNo = p.OffenderNo
			}
		}
		sharing = append(sharing, entry)
	}

	s.logger.Debug("Reconstructed location history",
		zap.Int64("booking_id", req.Prisoner.BookingID),
		zap.Int64("location_id", req.LocationID),
		zap.Int("history_records", len(history)),
		zap.Int("sharing_records", len(sharing)),
	)

	// 9.
	return &domain.LocationHistoryResult{
		LocationDetails:        details,
		LocationSharingHistory: sharing,
	}, nil
}

// getProfiles fetches the booking profile behind every record, one call per distinct booking.
func (s *LocationHistoryService) getProfiles(ctx context.Context, history []domain.StayRecord) (map[int64]*domain.PrisonerDetails, error) {
	bookingIDs := make([]int64, 0, len(history))
	seen := make(map[int64]bool, len(history))
	for _, r := range history {
		if !seen[r.BookingID] {
			seen[r.BookingID] = true
			bookingIDs = append(bookingIDs, r.BookingID)
		}
	}

	results := make([]*domain.PrisonerDetails, len(bookingIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, bookingID := range bookingIDs {
		g.Go(func() error {
			details, err := s.prison.GetDetails(gctx, bookingID)
			if err != nil {
				return fmt.Errorf("failed to get prisoner details for booking %d: %w", bookingID, err)
			}
			results[i] = details
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profiles := make(map[int64]*domain.PrisonerDetails, len(bookingIDs))
	for i, bookingID := range bookingIDs {
		profiles[bookingID] = results[i]
	}
	return profiles, nil
}

func findCurrentRecord(history []domain.StayRecord, bookingID int64) (domain.StayRecord, bool) {
	for _, r := range history {
		if r.BookingID == bookingID {
			return r, true
		}
	}
	return domain.StayRecord{}, false
}

// locationDescription every record in the window is for the same cell, so any of them names it.
func locationDescription(current domain.StayRecord, history []domain.StayRecord, agencyID string) string {
	desc := current.Description
	if desc == "" && len(history) > 0 {
		desc = history[0].Description
	}
	return format.Location(desc, agencyID)
}

// movedOutText how the sharing occupant's stay ended relative to the viewed prisoner's.
func movedOutText(current domain.StayRecord, found bool, sharing domain.StayRecord, prisonerName string) string {
	currentOngoing := !found || current.Ongoing()
	switch {
	case sharing.Ongoing() && currentOngoing:
		return domain.CurrentlySharing
	case sharing.Ongoing():
		return prisonerName + " moved out"
	default:
		return format.DateTime(sharing.AssignmentEndDateTime.Time)
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
