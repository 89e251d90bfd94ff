package models

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/timshannon/bolthold"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func ratingPtr(v int) *int {
	return &v
}

func TestMovieCRUD(t *testing.T) {
	db := newTestDB(t)

	movie := &Movie{Title: "Inception", Year: 2010}
	if err := db.CreateMovie(movie); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if movie.ID == 0 {
		t.Fatal("expected sequence-assigned ID")
	}
	if movie.CreatedAt.IsZero() || movie.UpdatedAt.IsZero() {
		t.Error("expected timestamps on create")
	}

	loaded, err := db.GetMovieByID(movie.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded.Title != "Inception" || loaded.Year != 2010 {
		t.Errorf("loaded wrong movie: %+v", loaded)
	}

	createdAt := loaded.CreatedAt
	time.Sleep(10 * time.Millisecond)
	loaded.Watched = true
	loaded.Rating = ratingPtr(9)
	if err := db.UpdateMovie(loaded); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	reloaded, err := db.GetMovieByID(movie.ID)
	if err != nil {
		t.Fatalf("get after update failed: %v", err)
	}
	if !reloaded.Watched || reloaded.Rating == nil || *reloaded.Rating != 9 {
		t.Errorf("update not persisted: %+v", reloaded)
	}
	if !reloaded.UpdatedAt.After(createdAt) {
		t.Error("expected UpdatedAt bump on update")
	}

	if err := db.DeleteMovie(movie.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := db.GetMovieByID(movie.ID); !errors.Is(err, bolthold.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func seedMovies(t *testing.T, db *Database) {
	t.Helper()
	movies := []*Movie{
		{Title: "The Matrix", Year: 1999, Watched: true, Rating: ratingPtr(9), PosterURL: "p", IMDBID: "tt0133093"},
		{Title: "Alien", Year: 1979, Watched: true, Rating: ratingPtr(10), PosterURL: "p", IMDBID: "tt0078748"},
		{Title: "Inception", Year: 2010, Watched: false, PosterURL: "p"},
		{Title: "Dune", Year: 2021, Watched: false},
	}
	for _, m := range movies {
		if err := db.CreateMovie(m); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
}

func TestGetMoviesWatchedFilter(t *testing.T) {
	db := newTestDB(t)
	seedMovies(t, db)

	watched := true
	movies, err := db.GetMovies(&ListFilter{Watched: &watched, SortBy: SortByTitle, Order: OrderAsc})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 watched movies, got %d", len(movies))
	}
	for _, m := range movies {
		if !m.Watched {
			t.Errorf("unwatched movie in filtered list: %+v", m)
		}
	}

	all, err := db.GetMovies(nil)
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 movies, got %d", len(all))
	}
}

func TestGetMoviesSortByTitle(t *testing.T) {
	db := newTestDB(t)
	seedMovies(t, db)

	movies, err := db.GetMovies(&ListFilter{SortBy: SortByTitle, Order: OrderAsc})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	want := []string{"Alien", "Dune", "Inception", "The Matrix"}
	for i, title := range want {
		if movies[i].Title != title {
			t.Errorf("position %d: got %q, want %q", i, movies[i].Title, title)
		}
	}

	movies, err = db.GetMovies(&ListFilter{SortBy: SortByTitle, Order: OrderDesc})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if movies[0].Title != "The Matrix" {
		t.Errorf("desc sort: got %q first", movies[0].Title)
	}
}

func TestGetMoviesSortByYearDesc(t *testing.T) {
	db := newTestDB(t)
	seedMovies(t, db)

	movies, err := db.GetMovies(&ListFilter{SortBy: SortByYear, Order: OrderDesc})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	want := []int{2021, 2010, 1999, 1979}
	for i, year := range want {
		if movies[i].Year != year {
			t.Errorf("position %d: got year %d, want %d", i, movies[i].Year, year)
		}
	}
}

func TestGetMoviesSortByRatingPutsUnratedLast(t *testing.T) {
	db := newTestDB(t)
	seedMovies(t, db)

	for _, order := range []SortOrder{OrderAsc, OrderDesc} {
		movies, err := db.GetMovies(&ListFilter{SortBy: SortByRating, Order: order})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if movies[2].Rating == nil || movies[3].Rating != nil {
			t.Errorf("order %s: unrated movies must sort last", order)
		}
	}

	movies, _ := db.GetMovies(&ListFilter{SortBy: SortByRating, Order: OrderDesc})
	if *movies[0].Rating != 10 || *movies[1].Rating != 9 {
		t.Errorf("desc rating sort wrong: %d, %d", *movies[0].Rating, *movies[1].Rating)
	}
}

func TestGetMoviesMissingMetadata(t *testing.T) {
	db := newTestDB(t)
	seedMovies(t, db)

	missing, err := db.GetMoviesMissingMetadata()
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}

	// Inception has no IMDb id, Dune has neither poster nor id
	if len(missing) != 2 {
		t.Fatalf("expected 2 movies missing metadata, got %d", len(missing))
	}
	for _, m := range missing {
		if !m.MissingMetadata() {
			t.Errorf("complete movie reported as missing: %+v", m)
		}
	}
}

func TestParseSortField(t *testing.T) {
	if got := ParseSortField("year"); got != SortByYear {
		t.Errorf("got %q", got)
	}
	if got := ParseSortField("nonsense"); got != SortByTitle {
		t.Errorf("unknown field should fall back to title, got %q", got)
	}
	if got := ParseSortField(""); got != SortByTitle {
		t.Errorf("empty field should fall back to title, got %q", got)
	}
}
