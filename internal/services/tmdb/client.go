package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cinelog/cinelog/internal/config"
	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	imageBaseURL   = "https://image.tmdb.org/t/p/"

	// PosterSizeFull is the image size token used for full enrichment
	PosterSizeFull = "w500"
	// PosterSizeThumb is the smaller token used for typeahead thumbnails
	PosterSizeThumb = "w185"
)

// SearchResult represents one raw entry from a TMDb movie search
type SearchResult struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	ReleaseDate   string `json:"release_date"` // "YYYY-MM-DD", may be empty
	PosterPath    string `json:"poster_path"`
}

// HasPoster reports whether the result carries a poster image
func (r SearchResult) HasPoster() bool {
	return r.PosterPath != ""
}

// Year extracts the release year from the release date.
// Returns nil when the date is missing or unparsable.
func (r SearchResult) Year() *int {
	if len(r.ReleaseDate) < 4 {
		return nil
	}
	year, err := strconv.Atoi(r.ReleaseDate[:4])
	if err != nil {
		return nil
	}
	return &year
}

// searchResponse is the TMDb search envelope
type searchResponse struct {
	Results []SearchResult `json:"results"`
}

// SearchOptions narrow a catalog search
type SearchOptions struct {
	Year  *int // narrows the TMDb query when set
	Limit *int // when non-negative, truncates the result list
}

// Client wraps direct TMDb API HTTP calls
type Client struct {
	apiKey     string
	language   string
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new TMDb client. A missing API key is not an error:
// every call on a keyless client degrades to an empty result.
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	baseURL := cfg.TMDBBaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		apiKey:   cfg.TMDBAPIKey,
		language: cfg.TMDBLanguage,
		baseURL:  baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Enabled reports whether the client has an API key to work with
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Search queries the TMDb movie search endpoint. It is best-effort: a blank
// query or missing API key returns an empty list without a network call, and
// transport failures or non-2xx responses are logged and degrade to an empty
// list as well. Results keep TMDb's own relevance order.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) []SearchResult {
	q := strings.TrimSpace(query)
	if q == "" || c.apiKey == "" {
		return nil
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", q)
	params.Set("include_adult", "false")
	params.Set("language", c.language)
	if opts.Year != nil {
		params.Set("year", strconv.Itoa(*opts.Year))
	}

	var response searchResponse
	if err := c.get(ctx, "/search/movie", params, &response); err != nil {
		c.logger.WithError(err).WithField("query", q).Warn("TMDb search failed")
		return nil
	}

	results := response.Results
	if opts.Limit != nil && *opts.Limit >= 0 && *opts.Limit < len(results) {
		results = results[:*opts.Limit]
	}

	c.logger.WithFields(logrus.Fields{
		"query": q,
		"count": len(results),
	}).Debug("TMDb search completed")

	return results
}

// get performs a GET request against the TMDb API and decodes the JSON response
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	fullURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "cinelog/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("TMDb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("TMDb returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// PosterURL builds an absolute image URL for a poster path with the given
// size token. Returns an empty string when the path is empty.
func PosterURL(path, size string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + size + path
}
