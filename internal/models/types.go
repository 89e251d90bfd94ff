package models

// SortField identifies a movie field the list endpoint can sort by
type SortField string

const (
	SortByTitle     SortField = "title"
	SortByYear      SortField = "year"
	SortByRating    SortField = "rating"
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
)

// SortOrder represents the direction of a sort
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortField maps a query-string value to a known sort field.
// Unknown values fall back to sorting by title.
func ParseSortField(s string) SortField {
	switch SortField(s) {
	case SortByYear, SortByRating, SortByCreatedAt, SortByUpdatedAt:
		return SortField(s)
	default:
		return SortByTitle
	}
}

// ListFilter narrows and orders the movie list
type ListFilter struct {
	Watched *bool // nil means both watched and unwatched
	SortBy  SortField
	Order   SortOrder
}
