package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/cinelog/cinelog/internal/config"
	"github.com/cinelog/cinelog/internal/models"
	"github.com/cinelog/cinelog/internal/services/tmdb"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestController(t *testing.T, tmdbURL string) (*EnrichmentController, *models.Database) {
	t.Helper()

	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{TMDBLanguage: "en-US"}
	if tmdbURL != "" {
		cfg.TMDBAPIKey = "test-key"
		cfg.TMDBBaseURL = tmdbURL
	}
	logger := testLogger()
	ctrl := NewEnrichmentController(db, tmdb.NewClient(cfg, logger), logger)
	return ctrl, db
}

func matrixServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/movie":
			w.Write([]byte(`{"results":[{"id":603,"title":"The Matrix","original_title":"The Matrix","release_date":"1999-03-31","poster_path":"/m.jpg"}]}`))
		case "/movie/603":
			w.Write([]byte(`{"genres":[{"name":"Action"},{"name":"Science Fiction"}]}`))
		case "/movie/603/external_ids":
			w.Write([]byte(`{"imdb_id":"tt0133093"}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestApplyToMovieFillsOnlyBlanks(t *testing.T) {
	server := matrixServer()
	defer server.Close()

	ctrl, _ := newTestController(t, server.URL)

	movie := &models.Movie{
		Title: "The Matrix",
		Genre: "Cyberpunk", // caller-supplied, must survive
	}
	if !ctrl.ApplyToMovie(context.Background(), movie) {
		t.Fatal("expected enrichment to change the movie")
	}

	if movie.Genre != "Cyberpunk" {
		t.Errorf("explicit genre overwritten: %q", movie.Genre)
	}
	if movie.Year != 1999 {
		t.Errorf("year = %d, want 1999", movie.Year)
	}
	if movie.PosterURL != "https://image.tmdb.org/t/p/w500/m.jpg" {
		t.Errorf("posterUrl = %q", movie.PosterURL)
	}
	if movie.IMDBID != "tt0133093" {
		t.Errorf("imdbID = %q", movie.IMDBID)
	}
}

func TestApplyToMovieNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	ctrl, _ := newTestController(t, server.URL)

	movie := &models.Movie{Title: "Totally Unknown"}
	if ctrl.ApplyToMovie(context.Background(), movie) {
		t.Error("expected no change when nothing resolves")
	}
	if movie.PosterURL != "" || movie.IMDBID != "" || movie.Year != 0 {
		t.Errorf("movie mutated despite no match: %+v", movie)
	}
}

func TestRefreshMissingMetadata(t *testing.T) {
	server := matrixServer()
	defer server.Close()

	ctrl, db := newTestController(t, server.URL)

	complete := &models.Movie{Title: "Alien", PosterURL: "p", IMDBID: "tt0078748"}
	incomplete := &models.Movie{Title: "The Matrix"}
	for _, m := range []*models.Movie{complete, incomplete} {
		if err := db.CreateMovie(m); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	if err := ctrl.RefreshMissingMetadata(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	refreshed, err := db.GetMovieByID(incomplete.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if refreshed.PosterURL == "" || refreshed.IMDBID != "tt0133093" {
		t.Errorf("incomplete movie not refreshed: %+v", refreshed)
	}

	untouched, err := db.GetMovieByID(complete.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if untouched.PosterURL != "p" || untouched.IMDBID != "tt0078748" {
		t.Errorf("complete movie modified: %+v", untouched)
	}
}

func TestRefreshMissingMetadataSkipsWhenDisabled(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer server.Close()

	// Keyless controller: must not touch the network at all
	ctrl, db := newTestController(t, "")
	if err := db.CreateMovie(&models.Movie{Title: "Dune"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if err := ctrl.RefreshMissingMetadata(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if n := atomic.LoadInt64(&calls); n != 0 {
		t.Errorf("keyless refresh made %d requests", n)
	}
}
