package domain

import "strings"

// DefaultSearchLimit is applied when a search request omits the limit
// or supplies a non-positive one.
const DefaultSearchLimit = 10

// SearchCriteria describes a playlist discovery request. Exactly one of
// Genre or Artist must be set.
type SearchCriteria struct {
	Genre  string
	Artist string
	Limit  int
}

// Normalized validates the exactly-one-selector contract and applies the
// default limit. It has no side effects on the receiver.
func (c SearchCriteria) Normalized() (SearchCriteria, error) {
	genre := strings.TrimSpace(c.Genre)
	artist := strings.TrimSpace(c.Artist)

	if genre != "" && artist != "" {
		return SearchCriteria{}, InvalidCriteriaError{Reason: "provide a genre or an artist, not both"}
	}
	if genre == "" && artist == "" {
		return SearchCriteria{}, InvalidCriteriaError{Reason: "a genre or an artist is required"}
	}

	limit := c.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	return SearchCriteria{Genre: genre, Artist: artist, Limit: limit}, nil
}
