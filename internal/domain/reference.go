package domain

// Agency prison-api agency details
type Agency struct {
	AgencyID    string `json:"agencyId"`
	Description string `json:"description"`
	AgencyType  string `json:"agencyType,omitempty"`
	Active      bool   `json:"active"`
}

// ReferenceCode domain reference code (e.g. CHG_HOUS_RSN cell move reasons)
type ReferenceCode struct {
	Domain      string `json:"domain,omitempty"`
	Code        string `json:"code"`
	Description string `json:"description"`
	ActiveFlag  string `json:"activeFlag,omitempty"`
}

// LocationAttribute cell attribute tag (e.g. LC = Listener Cell)
type LocationAttribute struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// StaffDetails staff user as returned by prison-api /api/users/{username}
type StaffDetails struct {
	StaffID   int64  `json:"staffId"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// PrisonerDetails booking-level profile. Only the fields this service renders are mapped.
type PrisonerDetails struct {
	BookingID  int64  `json:"bookingId"`
	BookingNo  string `json:"bookingNo,omitempty"`
	OffenderNo string `json:"offenderNo"`
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName,omitempty"`
	LastName   string `json:"lastName"`
	AgencyID   string `json:"agencyId"`
}

// CellMoveReason whereabouts-api cell move reason; only exists for moves made through the cell move workflow.
type CellMoveReason struct {
	BookingID              int64 `json:"bookingId"`
	BedAssignmentsSequence int   `json:"bedAssignmentsSequence"`
	CaseNoteID             int64 `json:"caseNoteId"`
}

// CaseNote case-notes-api case note (text only)
type CaseNote struct {
	CaseNoteID string `json:"caseNoteId"`
	OffenderNo string `json:"offenderIdentifier"`
	Type       string `json:"type"`
	SubType    string `json:"subType"`
	Text       string `json:"text"`
}

// CaseLoad a facility the viewing user may access.
type CaseLoad struct {
	CaseLoadID  string `json:"caseLoadId"`
	Description string `json:"description"`
	Type        string `json:"type,omitempty"`
}
