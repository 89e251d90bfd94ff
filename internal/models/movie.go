package models

import "time"

// Movie represents one watchlist entry
type Movie struct {
	ID uint64 `boltholdKey:"ID" json:"id"`

	Title string `boltholdIndex:"Title" json:"title"`
	Year  int    `json:"year,omitempty"`
	Genre string `json:"genre,omitempty"` // comma-joined genre names

	Watched bool `boltholdIndex:"Watched" json:"watched"`
	Rating  *int `json:"rating,omitempty"` // 1..10, nil when unrated

	// TMDb enrichment
	PosterURL string `json:"posterUrl,omitempty"`
	IMDBID    string `json:"imdbID,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MissingMetadata reports whether the movie still lacks TMDb enrichment
// and is worth another lookup attempt.
func (m *Movie) MissingMetadata() bool {
	return m.PosterURL == "" || m.IMDBID == ""
}
