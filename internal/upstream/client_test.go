package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"prisoner-profile/internal/config"
	"prisoner-profile/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAPI serves canned JSON bodies keyed by request path and records what was asked for.
type fakeAPI struct {
	t        *testing.T
	mu       sync.Mutex
	bodies   map[string]string
	statuses map[string]int
	requests []*http.Request
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	f := &fakeAPI{t: t, bodies: map[string]string{}, statuses: map[string]int{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r)
		f.mu.Unlock()
		if status, ok := f.statuses[r.URL.Path]; ok {
			w.WriteHeader(status)
			return
		}
		body, ok := f.bodies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) last() *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(f.t, f.requests)
	return f.requests[len(f.requests)-1]
}

func newTestFactory(url string, m *metrics.Metrics) *Factory {
	api := config.APIConfig{URL: url, Timeout: 2 * time.Second}
	return NewFactory(config.UpstreamConfig{PrisonAPI: api, WhereaboutsAPI: api, CaseNotesAPI: api}, zap.NewNop(), m)
}

func TestPrisonAPI_GetHistoryForLocation(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.bodies["/api/cell/25/history"] = `[
	  {"bookingId":1,"livingUnitId":25,"agencyId":"MDI","description":"MDI-1-1-001","assignmentDateTime":"2024-01-01T10:00:00","assignmentEndDateTime":"2024-01-10T10:00:00","bedAssignmentHistorySequence":1,"movementMadeBy":"SA","offenderNo":"A1234AA"},
	  {"bookingId":2,"livingUnitId":25,"agencyId":"MDI","description":"MDI-1-1-001","assignmentDateTime":"2024-01-05T10:00:00","bedAssignmentHistorySequence":4,"movementMadeBy":"SB","offenderNo":"B1234BB"}
	]`

	clients := newTestFactory(srv.URL, nil).ForToken("user-token")
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	records, err := clients.Prison.GetHistoryForLocation(context.Background(), 25, from, to)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(2), records[1].BookingID)
	assert.True(t, records[1].Ongoing())

	req := api.last()
	assert.Equal(t, "2024-01-01", req.URL.Query().Get("fromDate"))
	assert.Equal(t, "2024-02-01", req.URL.Query().Get("toDate"))
	assert.Equal(t, "Bearer user-token", req.Header.Get("Authorization"))
}

func TestPrisonAPI_NotFoundIsNil(t *testing.T) {
	_, srv := newFakeAPI(t)
	clients := newTestFactory(srv.URL, nil).ForToken("t")

	agency, err := clients.Prison.GetAgencyDetails(context.Background(), "XYZ")
	require.NoError(t, err)
	assert.Nil(t, agency)

	staff, err := clients.Prison.GetStaffDetails(context.Background(), "NOBODY")
	require.NoError(t, err)
	assert.Nil(t, staff)
}

func TestPrisonAPI_ServerErrorIsTyped(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.statuses["/api/agencies/MDI"] = http.StatusInternalServerError

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	clients := newTestFactory(srv.URL, m).ForToken("t")

	_, err := clients.Prison.GetAgencyDetails(context.Background(), "MDI")
	require.Error(t, err)

	var upErr *Error
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, "prison-api", upErr.API)
	assert.Equal(t, "getAgencyDetails", upErr.Operation)
	assert.Equal(t, http.StatusInternalServerError, upErr.Status)

	count, err := testutil.GatherAndCount(reg, "prisoner_profile_upstream_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPrisonAPI_ReferenceDataAndDetails(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.bodies["/api/reference-domains/domains/CHG_HOUS_RSN"] = `[{"domain":"CHG_HOUS_RSN","code":"ADM","description":"Administrative"}]`
	api.bodies["/api/cell/25/attributes"] = `[{"code":"LC","description":"Listener Cell"}]`
	api.bodies["/api/bookings/1"] = `{"bookingId":1,"offenderNo":"A1234AA","firstName":"JOHN","lastName":"SMITH","agencyId":"MDI"}`
	api.bodies["/api/bookings/offenderNo/A1234AA"] = `{"bookingId":1,"offenderNo":"A1234AA","firstName":"JOHN","lastName":"SMITH","agencyId":"MDI"}`
	api.bodies["/api/bookings/1/cell-history"] = `{"content":[{"bookingId":1,"agencyId":"MDI","description":"MDI-1-1-001","assignmentDateTime":"2024-01-01T10:00:00"}],"totalElements":1}`
	api.bodies["/api/users/SA"] = `{"staffId":5,"username":"SA","firstName":"STAFF","lastName":"MEMBER"}`

	clients := newTestFactory(srv.URL, nil).ForToken("t")
	ctx := context.Background()

	codes, err := clients.Prison.GetCellMoveReasonTypes(ctx)
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.Equal(t, "Administrative", codes[0].Description)

	attrs, err := clients.Prison.GetAttributesForLocation(ctx, 25)
	require.NoError(t, err)
	assert.Equal(t, "Listener Cell", attrs[0].Description)

	details, err := clients.Prison.GetDetails(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "A1234AA", details.OffenderNo)

	byNo, err := clients.Prison.GetDetailsByOffenderNo(ctx, "A1234AA")
	require.NoError(t, err)
	assert.Equal(t, int64(1), byNo.BookingID)

	history, err := clients.Prison.GetOffenderCellHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "10000", api.last().URL.Query().Get("size"))

	staff, err := clients.Prison.GetStaffDetails(ctx, "SA")
	require.NoError(t, err)
	assert.Equal(t, "MEMBER", staff.LastName)
}

func TestWhereaboutsAndCaseNotes(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.bodies["/cell/cell-move-reason/booking/1/bed-assignment-sequence/3"] = `{"cellMoveReason":{"bookingId":1,"bedAssignmentsSequence":3,"caseNoteId":99}}`
	api.bodies["/case-notes/A1234AA/99"] = `{"caseNoteId":"99","offenderIdentifier":"A1234AA","type":"MOVED_CELL","subType":"ADM","text":"Moved for safety"}`

	clients := newTestFactory(srv.URL, nil).ForToken("t")
	ctx := context.Background()

	reason, err := clients.Whereabouts.GetCellMoveReason(ctx, 1, 3)
	require.NoError(t, err)
	require.NotNil(t, reason)
	assert.Equal(t, int64(99), reason.CaseNoteID)

	missing, err := clients.Whereabouts.GetCellMoveReason(ctx, 1, 4)
	require.NoError(t, err)
	assert.Nil(t, missing)

	note, err := clients.CaseNotes.GetCaseNote(ctx, "A1234AA", 99)
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "Moved for safety", note.Text)
}

func TestTransportErrorIsWrapped(t *testing.T) {
	_, srv := newFakeAPI(t)
	url := srv.URL
	srv.Close()

	clients := newTestFactory(url, nil).ForToken("t")
	_, err := clients.Prison.GetCellMoveReasonTypes(context.Background())
	require.Error(t, err)

	var upErr *Error
	assert.False(t, errors.As(err, &upErr))
	assert.Contains(t, err.Error(), "prison-api getCellMoveReasonTypes")
}
