package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/cageside/internal/domain/prediction"
)

// PredictDependencies defines the interface for single-fight predictions.
type PredictDependencies interface {
	PredictFight(ctx context.Context, blue, red string) (prediction.Outcome, error)
}

// PredictHandler handles prediction requests.
type PredictHandler struct {
	deps PredictDependencies
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(deps PredictDependencies) *PredictHandler {
	return &PredictHandler{deps: deps}
}

// predictRequest is the body of POST /predict. Blue is the first fighter.
type predictRequest struct {
	Blue string `json:"blue"`
	Red  string `json:"red"`
}

func (p predictRequest) validate() error {
	switch {
	case strings.TrimSpace(p.Blue) == "":
		return badRequest("missing blue")
	case strings.TrimSpace(p.Red) == "":
		return badRequest("missing red")
	}
	return nil
}

// HandlePredict handles GET /predict?blue=&red= and POST /predict.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req = predictRequest{Blue: q.Get("blue"), Red: q.Get("red")}
	case http.MethodPost:
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
	default:
		http.NotFound(w, r)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	out, err := h.deps.PredictFight(r.Context(), req.Blue, req.Red)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
