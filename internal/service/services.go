package service

import "go.uber.org/zap"

// Services request-scoped services sharing one set of token-bound upstream clients.
type Services struct {
	Prison          PrisonAPI
	LocationHistory *LocationHistoryService
	LocationDetails *LocationDetailsService
}

func NewServices(prison PrisonAPI, whereabouts WhereaboutsAPI, caseNotes CaseNotesAPI, logger *zap.Logger) *Services {
	return &Services{
		Prison:          prison,
		LocationHistory: NewLocationHistoryService(prison, whereabouts, caseNotes, logger),
		LocationDetails: NewLocationDetailsService(prison, logger),
	}
}
