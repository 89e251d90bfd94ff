package tmdb

import "strings"

// leading articles stripped during title normalization
var articles = []string{"the", "a", "an"}

// NormalizeTitle trims, lowercases, and strips at most one leading English
// article so "The Matrix" and "matrix" compare equal.
func NormalizeTitle(title string) string {
	t := strings.ToLower(strings.TrimSpace(title))
	for _, article := range articles {
		if strings.HasPrefix(t, article+" ") {
			return strings.TrimLeft(t[len(article):], " \t")
		}
	}
	return t
}

// Resolve picks the single best candidate from a search result set.
// Returns nil only when results is empty; otherwise it always picks
// something rather than failing on a weak match. Priority order, first
// match wins:
//
//  1. exact normalized-title match that has a poster
//  2. desired-year match that has a poster
//  3. any candidate with a poster, in catalog order
//  4. the first candidate, poster or not
//
// Deterministic and side-effect free.
func Resolve(results []SearchResult, desiredTitle string, desiredYear *int) *SearchResult {
	if len(results) == 0 {
		return nil
	}

	wanted := NormalizeTitle(desiredTitle)
	for i := range results {
		if results[i].HasPoster() && NormalizeTitle(results[i].Title) == wanted {
			return &results[i]
		}
	}

	if desiredYear != nil {
		for i := range results {
			year := results[i].Year()
			if results[i].HasPoster() && year != nil && *year == *desiredYear {
				return &results[i]
			}
		}
	}

	for i := range results {
		if results[i].HasPoster() {
			return &results[i]
		}
	}

	return &results[0]
}
