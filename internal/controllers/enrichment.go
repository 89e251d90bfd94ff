package controllers

import (
	"context"
	"fmt"
	"strings"

	"github.com/cinelog/cinelog/internal/models"
	"github.com/cinelog/cinelog/internal/services/tmdb"
	"github.com/sirupsen/logrus"
)

// EnrichmentController applies TMDb metadata to stored movies
type EnrichmentController struct {
	db         *models.Database
	tmdbClient *tmdb.Client
	logger     *logrus.Logger
}

// NewEnrichmentController creates a new enrichment controller
func NewEnrichmentController(db *models.Database, tmdbClient *tmdb.Client, logger *logrus.Logger) *EnrichmentController {
	return &EnrichmentController{
		db:         db,
		tmdbClient: tmdbClient,
		logger:     logger,
	}
}

// ApplyToMovie fills the movie's empty metadata fields from a TMDb lookup.
// Fields the caller already set are left alone. Best-effort: when nothing
// resolves the movie is untouched. Reports whether anything changed.
func (c *EnrichmentController) ApplyToMovie(ctx context.Context, movie *models.Movie) bool {
	var year *int
	if movie.Year != 0 {
		y := movie.Year
		year = &y
	}

	meta := c.tmdbClient.Enrich(ctx, movie.Title, year)
	if meta == nil {
		c.logger.WithField("title", movie.Title).Debug("No TMDb metadata for movie")
		return false
	}

	changed := false
	if movie.PosterURL == "" && meta.PosterURL != "" {
		movie.PosterURL = meta.PosterURL
		changed = true
	}
	if movie.IMDBID == "" && meta.IMDBID != "" {
		movie.IMDBID = meta.IMDBID
		changed = true
	}
	if movie.Year == 0 && meta.Year != nil {
		movie.Year = *meta.Year
		changed = true
	}
	if movie.Genre == "" && len(meta.Genres) > 0 {
		movie.Genre = strings.Join(meta.Genres, ", ")
		changed = true
	}

	return changed
}

// RefreshFromTitle replaces the movie's metadata from a fresh lookup of its
// current title. Used after a title change, when the stored fields still
// describe the old title. The genre is only replaced when replaceGenre is
// set (the caller may have supplied one explicitly).
func (c *EnrichmentController) RefreshFromTitle(ctx context.Context, movie *models.Movie, replaceGenre bool) bool {
	meta := c.tmdbClient.Enrich(ctx, movie.Title, nil)
	if meta == nil {
		return false
	}

	if meta.PosterURL != "" {
		movie.PosterURL = meta.PosterURL
	}
	if meta.IMDBID != "" {
		movie.IMDBID = meta.IMDBID
	}
	if meta.Year != nil {
		movie.Year = *meta.Year
	}
	if replaceGenre && len(meta.Genres) > 0 {
		movie.Genre = strings.Join(meta.Genres, ", ")
	}
	return true
}

// RefreshMissingMetadata re-attempts enrichment for movies persisted without
// a poster or IMDb id, typically because TMDb was unreachable or the API key
// was unset when they were added.
func (c *EnrichmentController) RefreshMissingMetadata(ctx context.Context) error {
	if !c.tmdbClient.Enabled() {
		c.logger.Debug("TMDb disabled, skipping metadata refresh")
		return nil
	}

	movies, err := c.db.GetMoviesMissingMetadata()
	if err != nil {
		return fmt.Errorf("failed to get movies missing metadata: %w", err)
	}

	if len(movies) == 0 {
		c.logger.Debug("No movies missing metadata")
		return nil
	}

	c.logger.WithField("count", len(movies)).Info("Refreshing movies missing metadata")

	refreshed := 0
	for _, movie := range movies {
		if !c.ApplyToMovie(ctx, movie) {
			continue
		}
		if err := c.db.UpdateMovie(movie); err != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"movie_id": movie.ID,
				"title":    movie.Title,
			}).Error("Failed to save refreshed movie")
			continue
		}
		refreshed++
	}

	c.logger.WithFields(logrus.Fields{
		"refreshed": refreshed,
		"checked":   len(movies),
	}).Info("Metadata refresh completed")

	return nil
}
