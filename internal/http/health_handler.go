package httpapi

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HealthHandler reports ok when every dependency check passes.
type HealthHandler struct {
	checks map[string]func(ctx context.Context) error
	logger *zap.Logger
}

func NewHealthHandler(logger *zap.Logger) *HealthHandler {
	return &HealthHandler{checks: map[string]func(ctx context.Context) error{}, logger: logger}
}

// AddCheck registers a named dependency check, e.g. redis ping.
func (h *HealthHandler) AddCheck(name string, check func(ctx context.Context) error) {
	h.checks[name] = check
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{}
	healthy := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("Health check failed", zap.String("check", name), zap.Error(err))
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "up"
	}

	if !healthy {
		writeJSON(w, http.StatusServiceUnavailable, Result[map[string]string]{
			Code: ResultError, Type: "error", Message: "unhealthy", Result: status,
		})
		return
	}
	writeJSON(w, http.StatusOK, Ok(status))
}
