package handlers

import (
	"net/http"

	"github.com/cinelog/cinelog/internal/models"
	"github.com/sirupsen/logrus"
)

// StatusHandler handles status requests
type StatusHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(db *models.Database, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		db:     db,
		logger: logger,
	}
}

// StatusResponse represents the status response
type StatusResponse struct {
	TotalMovies     int `json:"total_movies"`
	Watched         int `json:"watched"`
	Unwatched       int `json:"unwatched"`
	Rated           int `json:"rated"`
	MissingMetadata int `json:"missing_metadata"`
}

// ServeHTTP handles the status endpoint
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	movies, err := h.db.GetMovies(nil)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get movies")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	response := StatusResponse{TotalMovies: len(movies)}
	for _, movie := range movies {
		if movie.Watched {
			response.Watched++
		} else {
			response.Unwatched++
		}
		if movie.Rating != nil {
			response.Rated++
		}
		if movie.MissingMetadata() {
			response.MissingMetadata++
		}
	}

	writeJSON(w, http.StatusOK, response)
}
