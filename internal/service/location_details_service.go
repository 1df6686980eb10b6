package service

import (
	"context"
	"fmt"
	"sort"

	"prisoner-profile/internal/domain"
	"prisoner-profile/internal/format"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LocationDetailsService a prisoner's own cell history, grouped by establishment.
type LocationDetailsService struct {
	prison PrisonAPI
	logger *zap.Logger
}

func NewLocationDetailsService(prison PrisonAPI, logger *zap.Logger) *LocationDetailsService {
	return &LocationDetailsService{prison: prison, logger: logger}
}

// GetLocationDetails 按 agency period 分组的位置历史（最新在前）
func (s *LocationDetailsService) GetLocationDetails(ctx context.Context, bookingID int64) (*domain.LocationDetailsResult, error) {
	history, err := s.prison.GetOffenderCellHistory(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cell history for booking %d: %w", bookingID, err)
	}

	establishments, err := s.getEstablishments(ctx, history)
	if err != nil {
		return nil, err
	}

	sorted := make([]domain.StayRecord, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AssignmentDateTime.After(sorted[j].AssignmentDateTime.Time)
	})

	locations := make([]domain.PrisonerLocation, 0, len(sorted))
	for _, r := range sorted {
		locations = append(locations, domain.PrisonerLocation{
			StayRecord:    r,
			Establishment: establishments[r.Agency()],
			Location:      format.Location(r.Description, r.Agency()),
			IsTemporary:   format.IsTemporaryLocation(r.Description, r.Agency()),
		})
	}

	result := &domain.LocationDetailsResult{
		AgencyPeriods: GroupByAgencyPeriod(locations),
	}
	if len(locations) > 0 && locations[0].Ongoing() {
		current := locations[0]
		result.CurrentLocation = &current
	}
	return result, nil
}

// getEstablishments agency code -> description for every agency in the history.
// Unknown agencies map to "" so their periods are flagged as invalid.
func (s *LocationDetailsService) getEstablishments(ctx context.Context, history []domain.StayRecord) (map[string]string, error) {
	agencyIDs := make([]string, 0)
	seen := map[string]bool{}
	for _, r := range history {
		if id := r.Agency(); id != "" && !seen[id] {
			seen[id] = true
			agencyIDs = append(agencyIDs, id)
		}
	}

	descriptions := make([]string, len(agencyIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, agencyID := range agencyIDs {
		g.Go(func() error {
			agency, err := s.prison.GetAgencyDetails(gctx, agencyID)
			if err != nil {
				return fmt.Errorf("failed to get agency %s: %w", agencyID, err)
			}
			if agency == nil {
				s.logger.Warn("Unknown agency in cell history", zap.String("agency_id", agencyID))
				return nil
			}
			descriptions[i] = agency.Description
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(agencyIDs))
	for i, id := range agencyIDs {
		out[id] = descriptions[i]
	}
	return out, nil
}
