// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bsearch/internal/httputil"
	"github.com/pdiddy/bsearch/pkg/types"
)

const sampleWikipediaJSON = `{
  "batchcomplete": "",
  "continue": {"sroffset": 12, "continue": "-||"},
  "query": {
    "searchinfo": {"totalhits": 48213},
    "search": [
      {"ns": 0, "title": "Quantum computing", "pageid": 25220,
       "snippet": "A <span class=\"searchmatch\">quantum</span> computer is a computer",
       "timestamp": "2025-03-14T09:26:53Z", "wordcount": 12854},
      {"ns": 0, "title": "Qubit", "pageid": 25284,
       "snippet": "In <span class=\"searchmatch\">quantum</span> computing, a qubit",
       "timestamp": "2024-11-02T17:00:00Z", "wordcount": 5120},
      {"ns": 0, "title": "Quantum supremacy", "pageid": 55413, "snippet": "no extras"}
    ]
  }
}`

func wikipediaTestServer(statusCode int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
}

func testClient(ts *httptest.Server) *WikipediaClient {
	return &WikipediaClient{Client: ts.Client(), Endpoint: ts.URL, UserAgent: "bsearch/test"}
}

func TestWikipediaClientSearch(t *testing.T) {
	ts := wikipediaTestServer(http.StatusOK, sampleWikipediaJSON)
	defer ts.Close()

	results, err := testClient(ts).Search(context.Background(), "quantum")
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Service order is relevance order and must be preserved.
	assert.Equal(t, []int64{25220, 25284, 55413}, []int64{results[0].PageID, results[1].PageID, results[2].PageID})

	r0 := results[0]
	assert.Equal(t, "Quantum computing", r0.Title)
	assert.Equal(t, `A <span class="searchmatch">quantum</span> computer is a computer`, r0.Snippet)
	assert.Equal(t, 12854, r0.WordCount)
	assert.Equal(t, time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC), r0.Timestamp.UTC())
	assert.Equal(t, "https://en.wikipedia.org/?curid=25220", r0.URL())

	r2 := results[2]
	assert.False(t, r2.HasTimestamp())
	assert.Zero(t, r2.WordCount)
}

func TestWikipediaClientRequestParameters(t *testing.T) {
	var got map[string]string
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = map[string]string{}
		for k := range r.URL.Query() {
			got[k] = r.URL.Query().Get(k)
		}
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"query":{"search":[]}}`)
	}))
	defer ts.Close()

	_, err := testClient(ts).Search(context.Background(), "  black holes & stars ")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"action":   "query",
		"list":     "search",
		"srsearch": "black holes & stars",
		"format":   "json",
		"origin":   "*",
		"srlimit":  "12",
		"srprop":   "snippet|timestamp|wordcount",
	}, got)
	assert.Equal(t, "bsearch/test", gotUA)
}

func TestWikipediaClientCustomLimit(t *testing.T) {
	var gotLimit string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("srlimit")
		fmt.Fprint(w, `{"query":{"search":[]}}`)
	}))
	defer ts.Close()

	c := NewWikipediaClient(ts.Client(), types.SearchConfig{Endpoint: ts.URL, Limit: 5}, "")
	_, err := c.Search(context.Background(), "mars")
	require.NoError(t, err)
	assert.Equal(t, "5", gotLimit)
}

func TestWikipediaClientDefaultEndpoint(t *testing.T) {
	ts := wikipediaTestServer(http.StatusOK, `{"query":{"search":[]}}`)
	defer ts.Close()

	old := wikipediaAPIBase
	wikipediaAPIBase = ts.URL
	defer func() { wikipediaAPIBase = old }()

	c := &WikipediaClient{Client: ts.Client()}
	results, err := c.Search(context.Background(), "mars")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestWikipediaClientFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http 500", http.StatusInternalServerError, `{}`},
		{"http 404", http.StatusNotFound, `not found`},
		{"malformed json", http.StatusOK, `{"query": {"search": [`},
		{"missing query", http.StatusOK, `{"batchcomplete": ""}`},
		{"missing search array", http.StatusOK, `{"query": {"searchinfo": {"totalhits": 0}}}`},
		{"api error object", http.StatusOK, `{"error": {"code": "badvalue", "info": "Unrecognized value"}}`},
		{"search not an array", http.StatusOK, `{"query": {"search": "nope"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := wikipediaTestServer(tt.status, tt.body)
			defer ts.Close()

			results, err := testClient(ts).Search(context.Background(), "mars")
			require.Error(t, err)
			assert.Nil(t, results)
			assert.ErrorIs(t, err, ErrSearchService)

			var se *SearchServiceError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, "mars", se.Query)
			assert.Equal(t, UserMessage, se.UserMessage())
		})
	}
}

func TestWikipediaClientStatusErrorUnwraps(t *testing.T) {
	ts := wikipediaTestServer(http.StatusInternalServerError, "")
	defer ts.Close()

	_, err := testClient(ts).Search(context.Background(), "mars")
	var status *httputil.StatusError
	require.True(t, errors.As(err, &status))
	assert.Equal(t, http.StatusInternalServerError, status.StatusCode)
}

func TestWikipediaClientTransportFailure(t *testing.T) {
	ts := wikipediaTestServer(http.StatusOK, "")
	c := testClient(ts)
	ts.Close()

	_, err := c.Search(context.Background(), "mars")
	assert.ErrorIs(t, err, ErrSearchService)
}

func TestWikipediaClientEmptyQueryNeverCalls(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := testClient(ts).Search(context.Background(), q)
		assert.ErrorIs(t, err, ErrEmptyQuery)
		assert.NotErrorIs(t, err, ErrSearchService)
	}
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestWikipediaClientNoCaching(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"query":{"search":[]}}`)
	}))
	defer ts.Close()

	c := testClient(ts)
	for i := 0; i < 3; i++ {
		_, err := c.Search(context.Background(), "mars")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestParseWikipediaResponseBadTimestamp(t *testing.T) {
	body := `{"query":{"search":[{"title":"X","pageid":1,"snippet":"","timestamp":"yesterday","wordcount":-4}]}}`
	results, err := parseWikipediaResponse(context.Background(), []byte(body))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].HasTimestamp())
	assert.Zero(t, results[0].WordCount)
}

func TestSearchServiceErrorMessage(t *testing.T) {
	err := &SearchServiceError{Query: "mars", Err: errors.New("boom")}
	assert.Equal(t, `searching "mars": boom`, err.Error())
	assert.ErrorIs(t, err, ErrSearchService)
}
