package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/cinelog/cinelog/internal/controllers"
	"github.com/cinelog/cinelog/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/timshannon/bolthold"
)

// MoviesHandler handles watchlist CRUD requests
type MoviesHandler struct {
	db             *models.Database
	enrichmentCtrl *controllers.EnrichmentController
	logger         *logrus.Logger
}

// NewMoviesHandler creates a new movies handler
func NewMoviesHandler(db *models.Database, enrichmentCtrl *controllers.EnrichmentController, logger *logrus.Logger) *MoviesHandler {
	return &MoviesHandler{
		db:             db,
		enrichmentCtrl: enrichmentCtrl,
		logger:         logger,
	}
}

// List handles GET /api/movies
func (h *MoviesHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := &models.ListFilter{
		SortBy: models.ParseSortField(r.URL.Query().Get("sortBy")),
		Order:  models.OrderAsc,
	}
	if r.URL.Query().Get("order") == "desc" {
		filter.Order = models.OrderDesc
	}
	switch r.URL.Query().Get("watched") {
	case "true":
		v := true
		filter.Watched = &v
	case "false":
		v := false
		filter.Watched = &v
	}

	movies, err := h.db.GetMovies(filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list movies")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if movies == nil {
		movies = []*models.Movie{}
	}

	writeJSON(w, http.StatusOK, movies)
}

// createMovieRequest is the POST /api/movies body
type createMovieRequest struct {
	Title     string `json:"title"`
	Genre     string `json:"genre"`
	Watched   bool   `json:"watched"`
	Rating    *int   `json:"rating"`
	PosterURL string `json:"posterUrl"`
	IMDBID    string `json:"imdbID"`
}

// Create handles POST /api/movies
func (h *MoviesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMovieRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 10) {
		writeError(w, http.StatusBadRequest, "rating must be between 1 and 10")
		return
	}

	movie := &models.Movie{
		Title:     title,
		Genre:     strings.TrimSpace(req.Genre),
		Watched:   req.Watched,
		Rating:    req.Rating,
		PosterURL: req.PosterURL,
		IMDBID:    req.IMDBID,
	}

	// Best-effort: fill whatever metadata the caller left blank
	h.enrichmentCtrl.ApplyToMovie(r.Context(), movie)

	if err := h.db.CreateMovie(movie); err != nil {
		h.logger.WithError(err).Error("Failed to create movie")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"movie_id": movie.ID,
		"title":    movie.Title,
	}).Info("Movie added")

	writeJSON(w, http.StatusCreated, movie)
}

// updateMovieRequest is the PUT /api/movies/{id} body; nil fields are untouched
type updateMovieRequest struct {
	Title     *string `json:"title"`
	Genre     *string `json:"genre"`
	Watched   *bool   `json:"watched"`
	Rating    *int    `json:"rating"` // 0 clears the rating
	PosterURL *string `json:"posterUrl"`
	IMDBID    *string `json:"imdbID"`
	Year      *int    `json:"year"`
}

// Update handles PUT /api/movies/{id}
func (h *MoviesHandler) Update(w http.ResponseWriter, r *http.Request) {
	movie, ok := h.movieFromPath(w, r)
	if !ok {
		return
	}

	var req updateMovieRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	titleChanged := false
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			writeError(w, http.StatusBadRequest, "title cannot be empty")
			return
		}
		titleChanged = title != movie.Title
		movie.Title = title
	}
	if req.Genre != nil {
		genre := strings.TrimSpace(*req.Genre)
		if genre == "" {
			writeError(w, http.StatusBadRequest, "genre cannot be empty")
			return
		}
		movie.Genre = genre
	}
	if req.Watched != nil {
		movie.Watched = *req.Watched
	}
	if req.Rating != nil {
		switch {
		case *req.Rating == 0:
			movie.Rating = nil
		case *req.Rating >= 1 && *req.Rating <= 10:
			movie.Rating = req.Rating
		default:
			writeError(w, http.StatusBadRequest, "rating must be between 1 and 10")
			return
		}
	}
	if req.PosterURL != nil {
		movie.PosterURL = *req.PosterURL
	}
	if req.IMDBID != nil {
		movie.IMDBID = *req.IMDBID
	}
	if req.Year != nil {
		movie.Year = *req.Year
	}

	// A title change invalidates the stored metadata unless the caller
	// supplied replacements; look the new title up again.
	if titleChanged && req.PosterURL == nil && req.IMDBID == nil && req.Year == nil {
		h.enrichmentCtrl.RefreshFromTitle(r.Context(), movie, req.Genre == nil)
	}

	if err := h.db.UpdateMovie(movie); err != nil {
		h.logger.WithError(err).WithField("movie_id", movie.ID).Error("Failed to update movie")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, movie)
}

// Delete handles DELETE /api/movies/{id}
func (h *MoviesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	movie, ok := h.movieFromPath(w, r)
	if !ok {
		return
	}

	if err := h.db.DeleteMovie(movie.ID); err != nil {
		h.logger.WithError(err).WithField("movie_id", movie.ID).Error("Failed to delete movie")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"movie_id": movie.ID,
		"title":    movie.Title,
	}).Info("Movie deleted")

	writeJSON(w, http.StatusOK, map[string]string{"message": "movie deleted"})
}

// movieFromPath parses the {id} path value and loads the movie, writing the
// error response itself when either step fails.
func (h *MoviesHandler) movieFromPath(w http.ResponseWriter, r *http.Request) (*models.Movie, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}

	movie, err := h.db.GetMovieByID(id)
	if err != nil {
		if errors.Is(err, bolthold.ErrNotFound) {
			writeError(w, http.StatusNotFound, "movie not found")
			return nil, false
		}
		h.logger.WithError(err).WithField("movie_id", id).Error("Failed to load movie")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return nil, false
	}

	return movie, true
}
