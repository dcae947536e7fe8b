package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/phil777/curiefense/internal/branch"
	"github.com/phil777/curiefense/internal/types"
)

// BranchesResponse is the wire format for GET /api/v1/branches.
type BranchesResponse struct {
	Current  string         `json:"current"`
	Branches []types.Branch `json:"branches"`
}

// BranchesHandler handles GET /api/v1/branches.
type BranchesHandler struct {
	logger *zap.Logger
	ctx    *branch.Context
}

// NewBranchesHandler creates a BranchesHandler.
func NewBranchesHandler(bctx *branch.Context, logger *zap.Logger) *BranchesHandler {
	return &BranchesHandler{
		logger: logger.Named("branches"),
		ctx:    bctx,
	}
}

// ServeHTTP implements http.Handler.
func (h *BranchesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := BranchesResponse{
		Current:  h.ctx.Current(),
		Branches: h.ctx.Branches(),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode branches response", zap.Error(err))
	}
}

// SelectBranchRequest is the body for POST /api/v1/branches/select.
type SelectBranchRequest struct {
	Branch string `json:"branch"`
}

// SelectBranchHandler handles POST /api/v1/branches/select. Selecting a
// branch kicks off a full index rebuild before the next filter evaluation.
type SelectBranchHandler struct {
	logger *zap.Logger
	ctx    *branch.Context
}

// NewSelectBranchHandler creates a SelectBranchHandler.
func NewSelectBranchHandler(bctx *branch.Context, logger *zap.Logger) *SelectBranchHandler {
	return &SelectBranchHandler{
		logger: logger.Named("branches"),
		ctx:    bctx,
	}
}

// ServeHTTP implements http.Handler.
func (h *SelectBranchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SelectBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Branch == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.ctx.Select(r.Context(), req.Branch); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"branch": req.Branch}); err != nil {
		h.logger.Error("Failed to encode select response", zap.Error(err))
	}
}

// RefreshHandler handles POST /api/v1/refresh: a full refetch/rebuild of the
// active branch without switching it.
type RefreshHandler struct {
	logger *zap.Logger
	ctx    *branch.Context
}

// NewRefreshHandler creates a RefreshHandler.
func NewRefreshHandler(bctx *branch.Context, logger *zap.Logger) *RefreshHandler {
	return &RefreshHandler{
		logger: logger.Named("branches"),
		ctx:    bctx,
	}
}

// ServeHTTP implements http.Handler.
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.ctx.Refresh(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"branch": h.ctx.Current()}); err != nil {
		h.logger.Error("Failed to encode refresh response", zap.Error(err))
	}
}
