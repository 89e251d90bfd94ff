package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// Database wraps the bolthold store
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// Movie operations

// CreateMovie creates a new movie in the database
func (db *Database) CreateMovie(movie *Movie) error {
	movie.CreatedAt = time.Now()
	movie.UpdatedAt = time.Now()
	return db.store.Insert(bolthold.NextSequence(), movie)
}

// UpdateMovie updates an existing movie
func (db *Database) UpdateMovie(movie *Movie) error {
	movie.UpdatedAt = time.Now()
	return db.store.Update(movie.ID, movie)
}

// GetMovieByID retrieves a movie by ID
func (db *Database) GetMovieByID(id uint64) (*Movie, error) {
	var movie Movie
	err := db.store.Get(id, &movie)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// GetMovies retrieves movies matching the filter, sorted per the filter.
// A nil filter returns all movies sorted by title ascending.
func (db *Database) GetMovies(filter *ListFilter) ([]*Movie, error) {
	if filter == nil {
		filter = &ListFilter{SortBy: SortByTitle, Order: OrderAsc}
	}

	var movies []*Movie
	var query *bolthold.Query
	if filter.Watched != nil {
		query = bolthold.Where("Watched").Eq(*filter.Watched)
	}

	if err := db.store.Find(&movies, query); err != nil {
		return nil, err
	}

	sortMovies(movies, filter.SortBy, filter.Order)
	return movies, nil
}

// GetMoviesMissingMetadata retrieves movies that still lack a poster or
// IMDb id, candidates for the scheduled metadata backfill.
func (db *Database) GetMoviesMissingMetadata() ([]*Movie, error) {
	all, err := db.GetMovies(nil)
	if err != nil {
		return nil, err
	}

	var missing []*Movie
	for _, movie := range all {
		if movie.MissingMetadata() {
			missing = append(missing, movie)
		}
	}
	return missing, nil
}

// DeleteMovie deletes a movie by ID
func (db *Database) DeleteMovie(id uint64) error {
	return db.store.Delete(id, &Movie{})
}

// sortMovies orders movies in place. Unrated movies sort after rated ones
// regardless of direction so they never crowd the top of a rating sort.
func sortMovies(movies []*Movie, field SortField, order SortOrder) {
	desc := order == OrderDesc

	less := func(i, j int) bool {
		a, b := movies[i], movies[j]
		switch field {
		case SortByYear:
			if a.Year != b.Year {
				return lessInt(a.Year, b.Year, desc)
			}
		case SortByRating:
			if a.Rating == nil && b.Rating == nil {
				break
			}
			if a.Rating == nil {
				return false
			}
			if b.Rating == nil {
				return true
			}
			if *a.Rating != *b.Rating {
				return lessInt(*a.Rating, *b.Rating, desc)
			}
		case SortByCreatedAt:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return lessTime(a.CreatedAt, b.CreatedAt, desc)
			}
		case SortByUpdatedAt:
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return lessTime(a.UpdatedAt, b.UpdatedAt, desc)
			}
		}
		// Tie-break (and the title sort itself) on title
		ta, tb := strings.ToLower(a.Title), strings.ToLower(b.Title)
		if ta != tb {
			if desc && field == SortByTitle {
				return ta > tb
			}
			return ta < tb
		}
		return a.ID < b.ID
	}

	sort.SliceStable(movies, less)
}

func lessInt(a, b int, desc bool) bool {
	if desc {
		return a > b
	}
	return a < b
}

func lessTime(a, b time.Time, desc bool) bool {
	if desc {
		return a.After(b)
	}
	return a.Before(b)
}
