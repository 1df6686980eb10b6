package service

import (
	"context"

	"go.uber.org/zap"
)

// WhatHappenedResolver finds the free text explaining a cell move.
//
// Only moves made through the cell move workflow have a cell move reason record, and that record
// points at the case note written during the move. Anything else has no narrative.
type WhatHappenedResolver struct {
	whereabouts WhereaboutsAPI
	caseNotes   CaseNotesAPI
	logger      *zap.Logger
}

func NewWhatHappenedResolver(whereabouts WhereaboutsAPI, caseNotes CaseNotesAPI, logger *zap.Logger) *WhatHappenedResolver {
	return &WhatHappenedResolver{whereabouts: whereabouts, caseNotes: caseNotes, logger: logger}
}

// Resolve returns nil when there is no narrative. Upstream failures are logged and treated as absence.
func (r *WhatHappenedResolver) Resolve(ctx context.Context, bookingID int64, offenderNo string, bedAssignmentSequence int) *string {
	reason, err := r.whereabouts.GetCellMoveReason(ctx, bookingID, bedAssignmentSequence)
	if err != nil {
		r.logger.Warn("Failed to get cell move reason",
			zap.Int64("booking_id", bookingID),
			zap.Int("bed_assignment_sequence", bedAssignmentSequence),
			zap.Error(err),
		)
		return nil
	}
	if reason == nil {
		return nil
	}

	caseNote, err := r.caseNotes.GetCaseNote(ctx, offenderNo, reason.CaseNoteID)
	if err != nil {
		r.logger.Warn("Failed to get cell move case note",
			zap.String("offender_no", offenderNo),
			zap.Int64("case_note_id", reason.CaseNoteID),
			zap.Error(err),
		)
		return nil
	}
	if caseNote == nil {
		return nil
	}
	text := caseNote.Text
	return &text
}
