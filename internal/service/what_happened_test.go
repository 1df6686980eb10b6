package service

import (
	"context"
	"errors"
	"testing"

	"prisoner-profile/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWhatHappened_NoReasonSkipsCaseNote(t *testing.T) {
	whereabouts := &fakeWhereaboutsAPI{}
	caseNotes := &fakeCaseNotesAPI{notes: map[int64]*domain.CaseNote{99: {Text: "never read"}}}
	r := NewWhatHappenedResolver(whereabouts, caseNotes, zap.NewNop())

	got := r.Resolve(context.Background(), 1, "A1234AA", 3)

	assert.Nil(t, got)
	assert.Equal(t, 1, whereabouts.calls)
	assert.Equal(t, 0, caseNotes.calls)
}

func TestWhatHappened_FollowsCaseNote(t *testing.T) {
	whereabouts := &fakeWhereaboutsAPI{reasons: map[int64]map[int]*domain.CellMoveReason{
		1: {3: {BookingID: 1, BedAssignmentsSequence: 3, CaseNoteID: 99}},
	}}
	caseNotes := &fakeCaseNotesAPI{notes: map[int64]*domain.CaseNote{99: {Text: "Moved after an argument"}}}
	r := NewWhatHappenedResolver(whereabouts, caseNotes, zap.NewNop())

	got := r.Resolve(context.Background(), 1, "A1234AA", 3)

	require.NotNil(t, got)
	assert.Equal(t, "Moved after an argument", *got)
}

func TestWhatHappened_MissingCaseNote(t *testing.T) {
	whereabouts := &fakeWhereaboutsAPI{reasons: map[int64]map[int]*domain.CellMoveReason{
		1: {3: {CaseNoteID: 42}},
	}}
	caseNotes := &fakeCaseNotesAPI{}
	r := NewWhatHappenedResolver(whereabouts, caseNotes, zap.NewNop())

	assert.Nil(t, r.Resolve(context.Background(), 1, "A1234AA", 3))
	assert.Equal(t, 1, caseNotes.calls)
}

func TestWhatHappened_UpstreamErrorsAreAbsence(t *testing.T) {
	whereabouts := &fakeWhereaboutsAPI{err: errors.New("whereabouts down")}
	caseNotes := &fakeCaseNotesAPI{}
	r := NewWhatHappenedResolver(whereabouts, caseNotes, zap.NewNop())
	assert.Nil(t, r.Resolve(context.Background(), 1, "A1234AA", 3))
	assert.Equal(t, 0, caseNotes.calls)

	whereabouts = &fakeWhereaboutsAPI{reasons: map[int64]map[int]*domain.CellMoveReason{1: {3: {CaseNoteID: 42}}}}
	caseNotes = &fakeCaseNotesAPI{err: errors.New("case notes down")}
	r = NewWhatHappenedResolver(whereabouts, caseNotes, zap.NewNop())
	assert.Nil(t, r.Resolve(context.Background(), 1, "A1234AA", 3))
}
