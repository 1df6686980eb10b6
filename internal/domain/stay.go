package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// LocalDateTimeLayout prison-api 返回的时间格式（无时区，按 Europe/London 本地时间处理）
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// LocalDateTime upstream timestamp. Accepts both the zone-less prison-api layout and RFC3339.
type LocalDateTime struct {
	time.Time
}

// NewLocalDateTime wraps t.
func NewLocalDateTime(t time.Time) LocalDateTime {
	return LocalDateTime{Time: t}
}

func (d *LocalDateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{LocalDateTimeLayout, time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid datetime %q", s)
}

func (d LocalDateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(LocalDateTimeLayout))
}

// StayRecord 一条床位分配记录（一个人在一个 cell 的一段连续占用）
// 对应 prison-api BedAssignment
type StayRecord struct {
	BookingID                    int64          `json:"bookingId"`
	LivingUnitID                 int64          `json:"livingUnitId"`
	AgencyID                     *string        `json:"agencyId"`
	Description                  string         `json:"description"`
	AssignmentDateTime           LocalDateTime  `json:"assignmentDateTime"`
	AssignmentEndDateTime        *LocalDateTime `json:"assignmentEndDateTime,omitempty"`
	AssignmentReason             *string        `json:"assignmentReason,omitempty"`
	BedAssignmentHistorySequence int            `json:"bedAssignmentHistorySequence"`
	MovementMadeBy               string         `json:"movementMadeBy"`
	OffenderNo                   string         `json:"offenderNo"`
}

// Ongoing reports whether the occupancy has no end time yet.
func (r StayRecord) Ongoing() bool {
	return r.AssignmentEndDateTime == nil || r.AssignmentEndDateTime.IsZero()
}

// Agency returns the agency code, or "" when absent.
func (r StayRecord) Agency() string {
	if r.AgencyID == nil {
		return ""
	}
	return *r.AgencyID
}

// PrisonerLocation a stay record enriched for display on the prisoner's own location history.
type PrisonerLocation struct {
	StayRecord
	Establishment string `json:"establishment"`
	Location      string `json:"location"`
	IsTemporary   bool   `json:"isTemporaryLocation"`
}

// AgencyPeriod 同一 agency 的一段连续停留（grouping 输出）
type AgencyPeriod struct {
	Name           string             `json:"name"`
	FromDateString string             `json:"fromDateString"`
	ToDateString   string             `json:"toDateString"`
	IsValidAgency  bool               `json:"isValidAgency"`
	Locations      []PrisonerLocation `json:"locations"`
}
