package api

import (
	"context"
	"net/http"

	service "github.com/okian/cageside/internal/app"
)

// CardDependencies defines the interface for card predictions.
type CardDependencies interface {
	PredictCard(ctx context.Context, bouts []service.Bout) ([]service.BoutResult, error)
}

// CardHandler handles card requests.
type CardHandler struct {
	deps CardDependencies
}

// NewCardHandler creates a new card handler.
func NewCardHandler(deps CardDependencies) *CardHandler {
	return &CardHandler{deps: deps}
}

type cardRequest struct {
	Bouts []service.Bout `json:"bouts"`
}

type cardResponse struct {
	Results []service.BoutResult `json:"results"`
}

// HandlePostCard handles POST /card requests.
func (h *CardHandler) HandlePostCard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req cardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	results, err := h.deps.PredictCard(r.Context(), req.Bouts)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cardResponse{Results: results})
}
