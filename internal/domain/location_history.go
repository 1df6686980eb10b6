package domain

// Display strings shared by the location history pages.
const (
	NotEntered       = "Not entered"
	Unknown          = "Unknown"
	CurrentCell      = "Current cell"
	CurrentlySharing = "Currently sharing"
)

// LocationDetails 当前住户在该 cell 的停留详情（已格式化，直接用于展示）
type LocationDetails struct {
	BookingID     int64               `json:"bookingId,omitempty"`
	Description   string              `json:"description"`
	Establishment string              `json:"establishment"`
	MovedIn       string              `json:"movedIn"`
	MovedOut      string              `json:"movedOut"`
	MovedInBy     string              `json:"movedInBy"`
	ReasonForMove string              `json:"reasonForMove"`
	WhatHappened  string              `json:"whatHappened"`
	Attributes    []LocationAttribute `json:"attributes"`
}

// SharingHistoryEntry 曾与当前住户共享同一 cell 的其他人
type SharingHistoryEntry struct {
	BookingID    int64  `json:"bookingId"`
	Name         string `json:"name"`
	PrisonerNo   string `json:"number"`
	MovedIn      string `json:"movedIn"`
	MovedOutText string `json:"movedOutText"`
	ShouldLink   bool   `json:"shouldLink"`
}

// LocationHistoryResult assembled output of the location history reconstruction.
type LocationHistoryResult struct {
	LocationDetails        LocationDetails       `json:"locationDetails"`
	LocationSharingHistory []SharingHistoryEntry `json:"locationSharingHistory"`
}

// LocationDetailsResult prisoner's own location history grouped by agency period.
type LocationDetailsResult struct {
	CurrentLocation *PrisonerLocation `json:"currentLocation"`
	AgencyPeriods   []AgencyPeriod    `json:"agencyPeriods"`
}
