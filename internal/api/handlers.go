package api

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/phil777/curiefense/internal/branch"
	"github.com/phil777/curiefense/internal/index"
)

// HealthHandler handles GET /health and /api/v1/health.
type HealthHandler struct {
	logger *zap.Logger
	store  *index.Store
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(store *index.Store, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		logger: logger.Named("health"),
		store:  store,
	}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := map[string]interface{}{
		"status":    "ok",
		"branch":    h.store.Branch(),
		"documents": h.store.Count(),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode health response", zap.Error(err))
	}
}

// Handlers returns the path → http.Handler map for the console API server,
// including the Prometheus metrics endpoint.
func Handlers(store *index.Store, bctx *branch.Context, logger *zap.Logger) map[string]http.Handler {
	healthHandler := NewHealthHandler(store, logger)

	return map[string]http.Handler{
		"/api/v1/search":          NewSearchHandler(store, logger),
		"/api/v1/branches":        NewBranchesHandler(bctx, logger),
		"/api/v1/branches/select": NewSelectBranchHandler(bctx, logger),
		"/api/v1/refresh":         NewRefreshHandler(bctx, logger),
		"/api/v1/documents/link":  NewLinkHandler(store, logger),
		"/api/v1/health":          healthHandler,
		"/health":                 healthHandler,
		"/metrics":                promhttp.Handler(),
	}
}
