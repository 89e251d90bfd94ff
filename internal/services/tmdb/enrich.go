package tmdb

import (
	"context"
	"strings"
	"sync"
)

// Enrichment is the normalized metadata record assembled for one title
type Enrichment struct {
	Title         string   `json:"title"`
	OriginalTitle string   `json:"originalTitle,omitempty"`
	Year          *int     `json:"year,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	PosterURL     string   `json:"posterUrl,omitempty"`
	IMDBID        string   `json:"imdbID,omitempty"`
}

// Suggestion is a lightweight projection of a search result for typeahead UIs
type Suggestion struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	OriginalTitle string `json:"originalTitle,omitempty"`
	Year          *int   `json:"year,omitempty"`
	PosterURL     string `json:"posterUrl,omitempty"`
}

// Enrich turns a free-text title (and optional year) into a full metadata
// record: search, resolve the best candidate, then fetch genres and the
// IMDb id. Returns nil when the API key is missing, the title is blank, or
// the search comes back empty — no network call is made for the first two.
// It never returns an error: each metadata field degrades to absent on its
// own when the backing call fails.
func (c *Client) Enrich(ctx context.Context, title string, year *int) *Enrichment {
	trimmed := strings.TrimSpace(title)
	if c.apiKey == "" || trimmed == "" {
		return nil
	}

	results := c.Search(ctx, trimmed, SearchOptions{Year: year})
	if len(results) == 0 {
		c.logger.WithField("title", trimmed).Debug("TMDb search returned no candidates")
		return nil
	}

	candidate := Resolve(results, trimmed, year)
	if candidate == nil {
		return nil
	}

	enrichment := &Enrichment{
		Title:         candidate.Title,
		OriginalTitle: candidate.OriginalTitle,
		Year:          candidate.Year(),
		PosterURL:     PosterURL(candidate.PosterPath, PosterSizeFull),
	}

	// The two detail lookups are independent; issue both at once and wait
	// for both to settle before composing the record.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		enrichment.Genres = c.FetchGenres(ctx, candidate.ID, c.language)
	}()
	go func() {
		defer wg.Done()
		enrichment.IMDBID = c.FetchExternalID(ctx, candidate.ID)
	}()
	wg.Wait()

	return enrichment
}

// SearchSuggestions powers the typeahead: search and project, nothing more.
// No resolution and no detail fetches, so it stays cheap enough to run on
// every keystroke.
func (c *Client) SearchSuggestions(ctx context.Context, query string, opts SearchOptions) []Suggestion {
	results := c.Search(ctx, query, opts)

	suggestions := make([]Suggestion, 0, len(results))
	for _, result := range results {
		suggestions = append(suggestions, Suggestion{
			ID:            result.ID,
			Title:         result.Title,
			OriginalTitle: result.OriginalTitle,
			Year:          result.Year(),
			PosterURL:     PosterURL(result.PosterPath, PosterSizeThumb),
		})
	}
	return suggestions
}
