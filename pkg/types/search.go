// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for bsearch.
// SearchResult mirrors one entry of the encyclopedia's list=search response;
// SortMode and Status describe how a session presents it.
package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ArticleURLBase is the link target prefix for a result; the page ID is appended.
const ArticleURLBase = "https://en.wikipedia.org/?curid="

// SearchResult is one article returned by the search service. Results are
// immutable once received and are identified by PageID.
type SearchResult struct {
	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// Snippet is the matching excerpt. It may contain highlight markup
	// (<span class="searchmatch">) that must be stripped before display.
	Snippet string `json:"snippet" yaml:"snippet"`

	// PageID is unique per result within a response.
	PageID int64 `json:"pageid" yaml:"pageid"`

	// Timestamp is the last edit time. The zero value means the service
	// did not report one.
	Timestamp time.Time `json:"timestamp,omitzero" yaml:"timestamp,omitempty"`

	// WordCount is the article length in words. Absent counts decode as 0.
	WordCount int `json:"wordcount,omitempty" yaml:"wordcount,omitempty"`
}

// URL returns the article link for the result.
func (r SearchResult) URL() string {
	return ArticleURLBase + strconv.FormatInt(r.PageID, 10)
}

// HasTimestamp reports whether the service supplied a timestamp.
func (r SearchResult) HasTimestamp() bool {
	return !r.Timestamp.IsZero()
}

// SortMode selects the presentation order of a result set.
type SortMode string

const (
	// SortRelevance keeps the order the service returned.
	SortRelevance SortMode = "relevance"
	// SortDate orders by timestamp, newest first.
	SortDate SortMode = "date"
	// SortWordCount orders by word count, longest first.
	SortWordCount SortMode = "wordcount"
)

// SortModes lists the modes in the order the filter bar shows them.
var SortModes = []SortMode{SortRelevance, SortDate, SortWordCount}

// Label returns the filter bar caption for the mode.
func (m SortMode) Label() string {
	switch m {
	case SortDate:
		return "Recent"
	case SortWordCount:
		return "Longest"
	default:
		return "Relevant"
	}
}

// ParseSortMode accepts a mode name or its filter bar caption, case-insensitively.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "relevance", "relevant":
		return SortRelevance, nil
	case "date", "recent":
		return SortDate, nil
	case "wordcount", "longest", "length":
		return SortWordCount, nil
	}
	return "", fmt.Errorf("unknown sort mode %q (want relevance, date, or wordcount)", s)
}

// Status is the session lifecycle state. It is derived from session
// transitions and never set directly.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}
