package httpapi

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// HandleHandler 支持 http.Handler 接口（用于 promhttp 等）
func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterPrisonerRoutes /prisoner/{prisonerNumber}/location-history, /prisoner/{prisonerNumber}/location-details
func (r *Router) RegisterPrisonerRoutes(h *PrisonerHandler) {
	r.Handle("/prisoner/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		rest := strings.TrimPrefix(req.URL.Path, "/prisoner/")
		prisonerNumber, page, ok := strings.Cut(rest, "/")
		if !ok || prisonerNumber == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch page {
		case "location-history":
			h.GetLocationHistory(w, req, prisonerNumber)
		case "location-details":
			h.GetLocationDetails(w, req, prisonerNumber)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

// RegisterOpsRoutes /health + /metrics
func (r *Router) RegisterOpsRoutes(health *HealthHandler, gatherer prometheus.Gatherer) {
	r.Handle("/health", health.ServeHTTP)
	r.HandleHandler("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
