// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchResultURL(t *testing.T) {
	r := SearchResult{PageID: 25202}
	assert.Equal(t, "https://en.wikipedia.org/?curid=25202", r.URL())
}

func TestSearchResultHasTimestamp(t *testing.T) {
	assert.False(t, SearchResult{}.HasTimestamp())
	assert.True(t, SearchResult{Timestamp: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}.HasTimestamp())
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		in   string
		want SortMode
	}{
		{"", SortRelevance},
		{"relevance", SortRelevance},
		{"Relevant", SortRelevance},
		{"date", SortDate},
		{" RECENT ", SortDate},
		{"wordcount", SortWordCount},
		{"longest", SortWordCount},
		{"length", SortWordCount},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortMode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseSortMode("alphabetical")
	assert.ErrorContains(t, err, "unknown sort mode")
}

func TestSortModeLabels(t *testing.T) {
	var labels []string
	for _, m := range SortModes {
		labels = append(labels, m.Label())
	}
	assert.Equal(t, []string{"Relevant", "Recent", "Longest"}, labels)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "error", StatusError.String())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 12, cfg.Search.Limit)
	assert.Equal(t, 8, cfg.Session.HistoryLimit)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.NotEmpty(t, cfg.FunFact.Fallback)
}
