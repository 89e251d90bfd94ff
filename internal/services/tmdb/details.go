package tmdb

import (
	"context"
	"fmt"
	"net/url"
)

// movieDetails is the subset of the TMDb movie detail payload we read
type movieDetails struct {
	Genres []struct {
		Name string `json:"name"`
	} `json:"genres"`
}

// externalIDs is the subset of the TMDb external ids payload we read
type externalIDs struct {
	IMDBID string `json:"imdb_id"`
}

// FetchGenres looks up the genre names for a movie. Best-effort: a missing
// API key, a zero id, or any request failure degrades to nil. Empty genre
// names are filtered out, and nil (not an empty slice) means "no data".
// An empty language falls back to the client default.
func (c *Client) FetchGenres(ctx context.Context, id int, language string) []string {
	if c.apiKey == "" || id == 0 {
		return nil
	}
	if language == "" {
		language = c.language
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", language)

	var details movieDetails
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), params, &details); err != nil {
		c.logger.WithError(err).WithField("tmdb_id", id).Warn("TMDb detail fetch failed")
		return nil
	}

	var genres []string
	for _, genre := range details.Genres {
		if genre.Name != "" {
			genres = append(genres, genre.Name)
		}
	}
	return genres
}

// FetchExternalID looks up the IMDb identifier for a movie. Best-effort:
// a missing API key, a zero id, or any request failure degrades to an
// empty string.
func (c *Client) FetchExternalID(ctx context.Context, id int) string {
	if c.apiKey == "" || id == 0 {
		return ""
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)

	var ids externalIDs
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/external_ids", id), params, &ids); err != nil {
		c.logger.WithError(err).WithField("tmdb_id", id).Warn("TMDb external ids fetch failed")
		return ""
	}
	return ids.IMDBID
}
