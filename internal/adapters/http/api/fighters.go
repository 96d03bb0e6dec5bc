package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/cageside/internal/domain/resolve"
)

// FighterDependencies defines the interface for roster lookups.
type FighterDependencies interface {
	Search(ctx context.Context, query string, limit int) ([]resolve.Candidate, error)
	Fighters(ctx context.Context) ([]string, error)
}

// FighterHandler handles fighter search and listing.
type FighterHandler struct {
	deps FighterDependencies
}

// NewFighterHandler creates a new fighter handler.
func NewFighterHandler(deps FighterDependencies) *FighterHandler {
	return &FighterHandler{deps: deps}
}

type candidateView struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	Kind  string  `json:"kind"`
	Index int     `json:"index"`
}

type searchResponse struct {
	Query      string          `json:"query"`
	Candidates []candidateView `json:"candidates"`
}

type fightersResponse struct {
	Count    int      `json:"count"`
	Fighters []string `json:"fighters"`
}

// HandleSearch handles GET /fighter?name=&limit= requests.
func (h *FighterHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	name := strings.TrimSpace(q.Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", badRequest("missing name"))
		return
	}
	limit := 0
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", badRequest("limit must be a positive integer"))
			return
		}
		limit = n
	}

	found, err := h.deps.Search(r.Context(), name, limit)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	if len(found) == 0 {
		writeUpstreamError(w, fmt.Errorf("%w %q", ErrNoMatch, name))
		return
	}
	resp := searchResponse{Query: name, Candidates: make([]candidateView, 0, len(found))}
	for _, c := range found {
		resp.Candidates = append(resp.Candidates, candidateView{
			Name:  c.Fighter.Name,
			Score: c.Score,
			Kind:  string(c.Kind),
			Index: c.Fighter.Index,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleList handles GET /fighters requests.
func (h *FighterHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	names, err := h.deps.Fighters(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fightersResponse{Count: len(names), Fighters: names})
}
