package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cinelog/cinelog/internal/services/tmdb"
	"github.com/sirupsen/logrus"
)

const (
	defaultSuggestionLimit = 8
	maxSuggestionLimit     = 20
	minQueryLength         = 2
)

// SearchHandler handles TMDb typeahead and metadata lookup requests
type SearchHandler struct {
	tmdbClient *tmdb.Client
	logger     *logrus.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(tmdbClient *tmdb.Client, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		tmdbClient: tmdbClient,
		logger:     logger,
	}
}

// Suggestions handles GET /api/movies/search?q=&year=&limit=
func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if utf8.RuneCountInString(q) < minQueryLength {
		writeJSON(w, http.StatusOK, []tmdb.Suggestion{})
		return
	}

	limit := defaultSuggestionLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxSuggestionLimit {
		limit = maxSuggestionLimit
	}

	opts := tmdb.SearchOptions{Limit: &limit, Year: parseYearParam(r)}
	suggestions := h.tmdbClient.SearchSuggestions(r.Context(), q, opts)
	if suggestions == nil {
		suggestions = []tmdb.Suggestion{}
	}

	writeJSON(w, http.StatusOK, suggestions)
}

// Lookup handles GET /api/movies/lookup?title=&year=
func (h *SearchHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if title == "" {
		writeError(w, http.StatusBadRequest, "title parameter is required")
		return
	}

	result := h.tmdbClient.Enrich(r.Context(), title, parseYearParam(r))
	if result == nil {
		writeError(w, http.StatusNotFound, "no metadata found")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// parseYearParam reads an optional year query parameter
func parseYearParam(r *http.Request) *int {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &year
}
