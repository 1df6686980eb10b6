package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"prisoner-profile/internal/audit"
	"prisoner-profile/internal/domain"
	"prisoner-profile/internal/metrics"
	"prisoner-profile/internal/service"
	"prisoner-profile/internal/store"
	"prisoner-profile/internal/upstream"

	"go.uber.org/zap"
)

const (
	routeLocationHistory = "/prisoner/{prisonerNumber}/location-history"
	routeLocationDetails = "/prisoner/{prisonerNumber}/location-details"
)

// SessionReader looks up the viewer's session.
type SessionReader interface {
	Get(ctx context.Context, id string) (*store.Session, error)
}

// PageAuditor records page views.
type PageAuditor interface {
	Record(ctx context.Context, view audit.PageView)
}

// ServicesFactory builds the request-scoped services for a viewer token.
type ServicesFactory func(token string) *service.Services

// PrisonerHandler prisoner profile location pages
type PrisonerHandler struct {
	sessions   SessionReader
	cookieName string
	services   ServicesFactory
	audit      PageAuditor
	metrics    *metrics.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

func NewPrisonerHandler(sessions SessionReader, cookieName string, services ServicesFactory, auditor PageAuditor, m *metrics.Metrics, logger *zap.Logger) *PrisonerHandler {
	return &PrisonerHandler{
		sessions:   sessions,
		cookieName: cookieName,
		services:   services,
		audit:      auditor,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

// GetLocationHistory GET /prisoner/{prisonerNumber}/location-history?agencyId=&locationId=&fromDate=&toDate=
func (h *PrisonerHandler) GetLocationHistory(w http.ResponseWriter, r *http.Request, prisonerNumber string) {
	ctx := r.Context()
	sess, ok := h.session(w, r, routeLocationHistory)
	if !ok {
		return
	}

	q := r.URL.Query()
	agencyID := q.Get("agencyId")
	if agencyID == "" {
		h.respond(w, routeLocationHistory, http.StatusBadRequest, Fail("agencyId is required"))
		return
	}
	locationID, err := parseInt64(q.Get("locationId"))
	if err != nil || locationID <= 0 {
		h.respond(w, routeLocationHistory, http.StatusBadRequest, Fail("invalid locationId"))
		return
	}
	fromDate, err := parseDate(q.Get("fromDate"), time.Time{})
	if err != nil {
		h.respond(w, routeLocationHistory, http.StatusBadRequest, Fail("invalid fromDate: "+err.Error()))
		return
	}
	toDate, err := parseDate(q.Get("toDate"), h.now())
	if err != nil {
		h.respond(w, routeLocationHistory, http.StatusBadRequest, Fail("invalid toDate: "+err.Error()))
		return
	}
	if toDate.Before(fromDate) {
		h.respond(w, routeLocationHistory, http.StatusBadRequest, Fail("toDate is before fromDate"))
		return
	}

	svcs := h.services(sess.Token)
	prisoner, ok := h.prisoner(ctx, w, svcs, prisonerNumber, routeLocationHistory)
	if !ok {
		return
	}

	result, err := svcs.LocationHistory.GetLocationHistory(ctx, service.LocationHistoryRequest{
		Prisoner:    *prisoner,
		AgencyID:    agencyID,
		LocationID:  locationID,
		FromDate:    fromDate,
		ToDate:      toDate,
		CaseLoadIDs: sess.CaseLoadIDs(),
	})
	if err != nil {
		h.upstreamFailure(w, routeLocationHistory, prisonerNumber, err)
		return
	}

	h.record(ctx, audit.PageView{
		Page:           audit.PageLocationHistory,
		Username:       sess.Username,
		PrisonerNumber: prisonerNumber,
		Details: map[string]string{
			"agency_id":   agencyID,
			"location_id": strconv.FormatInt(locationID, 10),
		},
	})
	h.respond(w, routeLocationHistory, http.StatusOK, Ok(result))
}

// GetLocationDetails GET /prisoner/{prisonerNumber}/location-details
func (h *PrisonerHandler) GetLocationDetails(w http.ResponseWriter, r *http.Request, prisonerNumber string) {
	ctx := r.Context()
	sess, ok := h.session(w, r, routeLocationDetails)
	if !ok {
		return
	}

	svcs := h.services(sess.Token)
	prisoner, ok := h.prisoner(ctx, w, svcs, prisonerNumber, routeLocationDetails)
	if !ok {
		return
	}

	result, err := svcs.LocationDetails.GetLocationDetails(ctx, prisoner.BookingID)
	if err != nil {
		h.upstreamFailure(w, routeLocationDetails, prisonerNumber, err)
		return
	}

	h.record(ctx, audit.PageView{
		Page:           audit.PageLocationDetails,
		Username:       sess.Username,
		PrisonerNumber: prisonerNumber,
	})
	h.respond(w, routeLocationDetails, http.StatusOK, Ok(result))
}

func (h *PrisonerHandler) session(w http.ResponseWriter, r *http.Request, route string) (*store.Session, bool) {
	sess, err := h.sessions.Get(r.Context(), sessionID(r, h.cookieName))
	if err != nil {
		if errors.Is(err, store.ErrNoSession) {
			h.respond(w, route, http.StatusUnauthorized, NotLoggedIn())
			return nil, false
		}
		h.logger.Error("Failed to load session", zap.Error(err))
		h.respond(w, route, http.StatusInternalServerError, Fail("failed to load session"))
		return nil, false
	}
	return sess, true
}

func (h *PrisonerHandler) prisoner(ctx context.Context, w http.ResponseWriter, svcs *service.Services, prisonerNumber, route string) (*domain.PrisonerDetails, bool) {
	prisoner, err := svcs.Prison.GetDetailsByOffenderNo(ctx, prisonerNumber)
	if err != nil {
		h.upstreamFailure(w, route, prisonerNumber, err)
		return nil, false
	}
	if prisoner == nil {
		h.respond(w, route, http.StatusNotFound, Fail("prisoner not found"))
		return nil, false
	}
	return prisoner, true
}

// upstreamFailure 上游 API 非 2xx -> 502，其它错误 -> 500
func (h *PrisonerHandler) upstreamFailure(w http.ResponseWriter, route, prisonerNumber string, err error) {
	status := http.StatusInternalServerError
	var upstreamErr *upstream.Error
	if errors.As(err, &upstreamErr) {
		status = http.StatusBadGateway
	}
	h.logger.Error("Failed to build page",
		zap.String("route", route),
		zap.String("prisoner_number", prisonerNumber),
		zap.Int("status_code", status),
		zap.Error(err),
	)
	h.respond(w, route, status, Fail("failed to load prisoner location data"))
}

func (h *PrisonerHandler) record(ctx context.Context, view audit.PageView) {
	if h.audit != nil {
		h.audit.Record(ctx, view)
	}
}

func (h *PrisonerHandler) respond(w http.ResponseWriter, route string, status int, v any) {
	h.metrics.ObserveHTTP(route, status)
	writeJSON(w, status, v)
}
