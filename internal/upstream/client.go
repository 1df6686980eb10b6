// Package upstream contains the REST clients for the prison data APIs.
//
// A Factory is built once at startup; ForToken binds the viewing user's token and returns a
// Clients bundle that lives for a single request. A 404 from any endpoint is reported as a nil
// result with a nil error; every other non-2xx response is an *Error.
package upstream

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"prisoner-profile/internal/config"
	"prisoner-profile/internal/metrics"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Error non-2xx upstream response
type Error struct {
	API       string
	Operation string
	Status    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s failed with status %d", e.API, e.Operation, e.Status)
}

func newRestyClient(cfg config.APIConfig) *resty.Client {
	return resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Accept", "application/json")
}

// apiClient one upstream API bound to one user token
type apiClient struct {
	api     string
	http    *resty.Client
	token   string
	logger  *zap.Logger
	metrics *metrics.Metrics
}

type request struct {
	operation  string
	path       string
	pathParams map[string]string
	query      map[string]string
}

// get issues a GET and decodes the body into out. found is false on 404.
func (c *apiClient) get(ctx context.Context, req request, out any) (found bool, err error) {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetPathParams(req.pathParams).
		SetQueryParams(req.query).
		SetResult(out).
		Get(req.path)

	status := 0
	if resp != nil {
		status = resp.StatusCode()
	}
	c.metrics.ObserveUpstream(c.api, req.operation, status, time.Since(start))

	if err != nil {
		c.logger.Error("Upstream API call failed",
			zap.String("api", c.api),
			zap.String("operation", req.operation),
			zap.Error(err),
		)
		return false, fmt.Errorf("failed to call %s %s: %w", c.api, req.operation, err)
	}

	switch {
	case status == http.StatusNotFound:
		c.logger.Debug("Upstream API returned not found",
			zap.String("api", c.api),
			zap.String("operation", req.operation),
		)
		return false, nil
	case resp.IsError() || status >= 300:
		c.logger.Error("Upstream API returned error",
			zap.String("api", c.api),
			zap.String("operation", req.operation),
			zap.Int("status_code", status),
		)
		return false, &Error{API: c.api, Operation: req.operation, Status: status}
	}
	return true, nil
}

// Factory builds per-request client bundles. Safe for concurrent use.
type Factory struct {
	prison      *resty.Client
	whereabouts *resty.Client
	caseNotes   *resty.Client
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

// NewFactory creates one resty client per upstream API.
func NewFactory(cfg config.UpstreamConfig, logger *zap.Logger, m *metrics.Metrics) *Factory {
	return &Factory{
		prison:      newRestyClient(cfg.PrisonAPI),
		whereabouts: newRestyClient(cfg.WhereaboutsAPI),
		caseNotes:   newRestyClient(cfg.CaseNotesAPI),
		logger:      logger,
		metrics:     m,
	}
}

// Clients upstream clients for one request
type Clients struct {
	Prison      *PrisonAPIClient
	Whereabouts *WhereaboutsAPIClient
	CaseNotes   *CaseNotesAPIClient
}

// ForToken binds token to every client.
func (f *Factory) ForToken(token string) *Clients {
	bind := func(api string, c *resty.Client) apiClient {
		return apiClient{api: api, http: c, token: token, logger: f.logger, metrics: f.metrics}
	}
	return &Clients{
		Prison:      &PrisonAPIClient{bind("prison-api", f.prison)},
		Whereabouts: &WhereaboutsAPIClient{bind("whereabouts-api", f.whereabouts)},
		CaseNotes:   &CaseNotesAPIClient{bind("case-notes-api", f.caseNotes)},
	}
}
