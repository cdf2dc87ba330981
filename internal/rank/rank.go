// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank reorders a result set for presentation. Sorting is pure:
// it always works on a copy and leaves the stored order untouched.
package rank

import (
	"sort"
	"time"

	"github.com/pdiddy/bsearch/pkg/types"
)

// epoch stands in for a missing timestamp so undated results sort last.
var epoch = time.Unix(0, 0).UTC()

// Sort returns a new slice holding results in the order mode selects.
// Ties keep their input order in every mode. Unknown modes behave like
// relevance.
func Sort(results []types.SearchResult, mode types.SortMode) []types.SearchResult {
	out := make([]types.SearchResult, len(results))
	copy(out, results)

	switch mode {
	case types.SortDate:
		sort.SliceStable(out, func(i, j int) bool {
			return timestampKey(out[i]).After(timestampKey(out[j]))
		})
	case types.SortWordCount:
		sort.SliceStable(out, func(i, j int) bool {
			return wordCountKey(out[i]) > wordCountKey(out[j])
		})
	}
	return out
}

func timestampKey(r types.SearchResult) time.Time {
	if !r.HasTimestamp() {
		return epoch
	}
	return r.Timestamp
}

func wordCountKey(r types.SearchResult) int {
	if r.WordCount < 0 {
		return 0
	}
	return r.WordCount
}
