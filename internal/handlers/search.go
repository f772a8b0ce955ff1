package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	applog "nutrigo/internal/log"
	"nutrigo/internal/nutrition"
)

const (
	defaultSearchLimit = 5
	maxSearchLimit     = 20
)

type searchResponse struct {
	Query   string             `json:"query"`
	Results []nutrition.Result `json:"results"`
}

// SearchFoods resolves a free-text food query into ranked candidates, each
// annotated with a nutrient preview for its default serving.
func SearchFoods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if resolver == nil {
		applog.Debug(r.Context(), "search request without resolver")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		http.Error(w, "query parameter q is required", http.StatusBadRequest)
		return
	}

	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	results := resolver.Resolve(r.Context(), query, limit)
	applog.Debug(r.Context(), "search resolved", "query", query, "results", len(results))

	writeJSON(w, r, searchResponse{Query: query, Results: results})
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(r.Context(), "failed to encode response", "error", err)
	}
}
