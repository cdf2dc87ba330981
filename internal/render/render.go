// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns session snapshots into terminal text and result
// sets into JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bsearch/internal/session"
	"github.com/pdiddy/bsearch/pkg/types"
)

// Fixed screen texts.
const (
	LoadingText  = "Searching|"
	NoResultText = "No results found. Try a different search term."
	FactHeading  = "DID YOU KNOW?"
)

// HistoryStripSize is how many history entries the strip shows.
const HistoryStripSize = 5

// Topics are the one-click searches offered on the idle screen.
var Topics = []string{"Science", "History", "Technology", "Philosophy", "Nature", "Space", "Culture", "Math"}

// IdleInfo carries the decorative content of the idle screen.
type IdleInfo struct {
	Fact string
}

// Snapshot writes the screen for snap. idle is only used before the first search.
func Snapshot(w io.Writer, snap session.Snapshot, idle IdleInfo) {
	History(w, snap.History)

	switch snap.Status {
	case types.StatusLoading:
		fmt.Fprintln(w, LoadingText)
	case types.StatusError:
		fmt.Fprintf(w, "! %s\n", snap.Err)
	case types.StatusSuccess:
		if len(snap.Results) == 0 {
			fmt.Fprintln(w, NoResultText)
			return
		}
		FilterBar(w, snap.Sort, len(snap.Results))
		fmt.Fprintln(w)
		Results(w, snap.Sorted())
	default:
		if !snap.HasSearched {
			Idle(w, idle)
		}
	}
}

// Idle writes the topic shortcuts and the fun fact.
func Idle(w io.Writer, info IdleInfo) {
	parts := make([]string, len(Topics))
	for i, t := range Topics {
		parts[i] = fmt.Sprintf("%02d %s", i+1, t)
	}
	fmt.Fprintln(w, strings.Join(parts, "   "))
	if info.Fact != "" {
		fmt.Fprintf(w, "\n%s\n%s\n", FactHeading, info.Fact)
	}
}

// History writes the recent-query strip. Nothing is written for an empty history.
func History(w io.Writer, history []string) {
	if len(history) == 0 {
		return
	}
	n := min(len(history), HistoryStripSize)
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("[%d] %s", i+1, history[i])
	}
	fmt.Fprintf(w, "recent: %s\n", strings.Join(parts, "  "))
}

// FilterBar writes the result count and the sort choices, marking the active one.
func FilterBar(w io.Writer, active types.SortMode, count int) {
	labels := make([]string, len(types.SortModes))
	for i, m := range types.SortModes {
		if m == active {
			labels[i] = "[" + m.Label() + "]"
		} else {
			labels[i] = " " + m.Label() + " "
		}
	}
	fmt.Fprintf(w, "%d results   %s\n", count, strings.Join(labels, " "))
}

// Results writes one block per result in the given order.
func Results(w io.Writer, results []types.SearchResult) {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%02d  %s\n", i+1, r.Title)
		if snippet := StripMarkup(r.Snippet); snippet != "" {
			fmt.Fprintf(w, "    %s\n", snippet)
		}
		fmt.Fprintf(w, "    %s\n", strings.Join(details(r), " · "))
	}
}

func details(r types.SearchResult) []string {
	var out []string
	if r.WordCount > 0 {
		out = append(out, humanize.Comma(int64(r.WordCount))+" words")
	}
	if r.HasTimestamp() {
		out = append(out, r.Timestamp.Format(time.DateOnly))
	}
	return append(out, r.URL())
}

// resultView is the machine-readable form of a result: markup stripped and
// the link spelled out.
type resultView struct {
	Rank      int        `json:"rank" yaml:"rank"`
	Title     string     `json:"title" yaml:"title"`
	Snippet   string     `json:"snippet" yaml:"snippet"`
	PageID    int64      `json:"pageid" yaml:"pageid"`
	URL       string     `json:"url" yaml:"url"`
	Timestamp *time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	WordCount int        `json:"wordcount" yaml:"wordcount"`
}

func views(results []types.SearchResult) []resultView {
	out := make([]resultView, len(results))
	for i, r := range results {
		v := resultView{
			Rank:      i + 1,
			Title:     r.Title,
			Snippet:   StripMarkup(r.Snippet),
			PageID:    r.PageID,
			URL:       r.URL(),
			WordCount: r.WordCount,
		}
		if r.HasTimestamp() {
			ts := r.Timestamp
			v.Timestamp = &ts
		}
		out[i] = v
	}
	return out
}

// FormatJSON writes results as indented JSON.
func FormatJSON(results []types.SearchResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(views(results))
}

// FormatYAML writes results as a YAML sequence.
func FormatYAML(results []types.SearchResult, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(views(results)); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
