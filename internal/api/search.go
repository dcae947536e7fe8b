package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/phil777/curiefense/internal/index"
	"github.com/phil777/curiefense/internal/query"
	"github.com/phil777/curiefense/internal/types"
)

// SearchResponse is the wire format for GET /api/v1/search. Raw document
// payloads never cross the wire; the UI fetches them through the backend
// when it opens an edit view.
type SearchResponse struct {
	Branch    string                     `json:"branch"`
	Total     int                        `json:"total"`
	Documents []types.NormalizedDocument `json:"documents"`
}

// SearchHandler handles GET /api/v1/search?mode=&q=.
type SearchHandler struct {
	logger *zap.Logger
	store  *index.Store
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(store *index.Store, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		logger: logger.Named("search"),
		store:  store,
	}
}

// ServeHTTP implements http.Handler.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	mode, err := types.ParseSearchMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q := types.SearchQuery{Mode: mode, Text: r.URL.Query().Get("q")}
	matches := query.Filter(h.store.Snapshot(), q)

	w.Header().Set("Content-Type", "application/json")
	resp := SearchResponse{
		Branch:    h.store.Branch(),
		Total:     len(matches),
		Documents: matches,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode search response", zap.Error(err))
	}
}
