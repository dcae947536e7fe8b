package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/phil777/curiefense/internal/index"
	"github.com/phil777/curiefense/internal/types"
)

// LinkResponse is the wire format for GET /api/v1/documents/link. It carries
// the target identity and the edit-view path; the UI owns the actual
// navigation.
type LinkResponse struct {
	DocType types.DocType `json:"docType"`
	ID      string        `json:"id"`
	Path    string        `json:"path"`
}

// LinkHandler handles GET /api/v1/documents/link?type=&id=.
type LinkHandler struct {
	logger *zap.Logger
	store  *index.Store
}

// NewLinkHandler creates a LinkHandler.
func NewLinkHandler(store *index.Store, logger *zap.Logger) *LinkHandler {
	return &LinkHandler{
		logger: logger.Named("link"),
		store:  store,
	}
}

// ServeHTTP implements http.Handler.
func (h *LinkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	docType, err := types.ParseDocType(r.URL.Query().Get("type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	if _, ok := h.store.Get(docType, id); !ok {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := LinkResponse{
		DocType: docType,
		ID:      id,
		Path:    types.EditPath(h.store.Branch(), docType, id),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode link response", zap.Error(err))
	}
}
