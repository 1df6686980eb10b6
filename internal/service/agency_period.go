package service

import (
	"prisoner-profile/internal/domain"
	"prisoner-profile/internal/format"
)

// GroupByAgencyPeriod groups a most-recent-first location list into runs of consecutive records
// at the same agency. Adjacency decides membership: leaving an agency and coming back later
// starts a new period. A nil agency only matches another nil agency.
func GroupByAgencyPeriod(locations []domain.PrisonerLocation) []domain.AgencyPeriod {
	periods := make([]domain.AgencyPeriod, 0)
	if len(locations) == 0 {
		return periods
	}

	// ids[i] is the period of locations[i]; ids only ever increase so a period is a contiguous slice
	ids := make([]int, len(locations))
	for i := 1; i < len(locations); i++ {
		ids[i] = ids[i-1]
		if !sameAgency(locations[i-1].AgencyID, locations[i].AgencyID) {
			ids[i]++
		}
	}

	start := 0
	for i := 1; i <= len(locations); i++ {
		if i < len(locations) && ids[i] == ids[start] {
			continue
		}
		periods = append(periods, newAgencyPeriod(locations[start:i]))
		start = i
	}
	return periods
}

func newAgencyPeriod(group []domain.PrisonerLocation) domain.AgencyPeriod {
	first, last := group[0], group[len(group)-1]

	to := domain.Unknown
	if !first.Ongoing() {
		to = format.Date(first.AssignmentEndDateTime.Time)
	}

	members := make([]domain.PrisonerLocation, len(group))
	copy(members, group)

	return domain.AgencyPeriod{
		Name:           first.Establishment,
		FromDateString: format.Date(last.AssignmentDateTime.Time),
		ToDateString:   to,
		IsValidAgency:  first.Establishment != "",
		Locations:      members,
	}
}

func sameAgency(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
