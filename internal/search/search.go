// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the encyclopedia search service and reports every
// failure as a single SearchServiceError kind.
package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/bsearch/pkg/types"
)

// UserMessage is the only failure text shown to the user. Network failures,
// non-success statuses and malformed bodies all map to it.
const UserMessage = "Something went wrong. Check your connection and try again."

// ErrEmptyQuery is returned when a caller passes a blank query. Callers are
// expected to gate on non-empty input, so no request is ever sent for it.
var ErrEmptyQuery = errors.New("query is empty")

// ErrSearchService matches any *SearchServiceError via errors.Is.
var ErrSearchService = errors.New("search service error")

// Searcher runs one live query against the search service. Results come
// back in the service's order, which defines relevance.
type Searcher interface {
	Search(ctx context.Context, query string) ([]types.SearchResult, error)
}

// SearchServiceError wraps the cause of a failed search.
type SearchServiceError struct {
	Query string
	Err   error
}

func (e *SearchServiceError) Error() string {
	return fmt.Sprintf("searching %q: %v", e.Query, e.Err)
}

func (e *SearchServiceError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrSearchService) match without unwrapping the cause.
func (e *SearchServiceError) Is(target error) bool {
	return target == ErrSearchService
}

// UserMessage returns the generic retry message.
func (e *SearchServiceError) UserMessage() string { return UserMessage }

func serviceError(query string, err error) error {
	return &SearchServiceError{Query: query, Err: err}
}
