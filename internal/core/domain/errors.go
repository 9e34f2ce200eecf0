package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a requested entity does not exist.
var ErrNotFound = errors.New("domain: not found")

// ErrInvalidCriteria indicates a playlist search request violated the
// exactly-one-selector contract.
var ErrInvalidCriteria = errors.New("invalid search criteria")

// InvalidCriteriaError names the violated constraint so the HTTP layer
// can surface it to the caller.
type InvalidCriteriaError struct {
	Reason string
}

func (e InvalidCriteriaError) Error() string {
	if e.Reason == "" {
		return ErrInvalidCriteria.Error()
	}
	return fmt.Sprintf("invalid search criteria: %s", e.Reason)
}

func (e InvalidCriteriaError) Is(target error) bool {
	return target == ErrInvalidCriteria
}

// ErrArtistNotFound indicates artist-name resolution yielded nothing.
// Aggregate searches recover from it with an empty result set.
var ErrArtistNotFound = errors.New("artist not found")

// ArtistNotFoundError carries the unresolved artist name.
type ArtistNotFoundError struct {
	Name string
}

func (e ArtistNotFoundError) Error() string {
	if e.Name == "" {
		return ErrArtistNotFound.Error()
	}
	return fmt.Sprintf("no artist found matching %q", e.Name)
}

func (e ArtistNotFoundError) Is(target error) bool {
	return target == ErrArtistNotFound
}

// ErrCatalogAuth indicates the catalog rejected our credentials before
// any discovery work began. No partial result is meaningful after it.
var ErrCatalogAuth = errors.New("catalog authentication failed")
