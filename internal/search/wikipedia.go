// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/bsearch/internal/httputil"
	"github.com/pdiddy/bsearch/pkg/types"
)

// wikipediaAPIBase is the MediaWiki API endpoint used when the client has
// no Endpoint configured. Declared as a var so tests can substitute an
// httptest server.
var wikipediaAPIBase = "https://en.wikipedia.org/w/api.php"

const (
	defaultLimit   = 12
	wikipediaProps = "snippet|timestamp|wordcount"
)

// WikipediaClient queries the list=search module of the MediaWiki API.
// Each call is independent: no retries and no caching.
type WikipediaClient struct {
	Client    *http.Client
	Endpoint  string
	Limit     int
	UserAgent string
}

// NewWikipediaClient builds a client from configuration.
func NewWikipediaClient(client *http.Client, cfg types.SearchConfig, userAgent string) *WikipediaClient {
	return &WikipediaClient{
		Client:    client,
		Endpoint:  cfg.Endpoint,
		Limit:     cfg.Limit,
		UserAgent: userAgent,
	}
}

// Search sends one request for query and returns the service's result
// array in order. query must be non-empty after trimming.
func (c *WikipediaClient) Search(ctx context.Context, query string) ([]types.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	body, err := httputil.Get(ctx, c.Client, c.requestURL(query), c.UserAgent)
	if err != nil {
		return nil, serviceError(query, err)
	}

	results, err := parseWikipediaResponse(ctx, body)
	if err != nil {
		return nil, serviceError(query, err)
	}

	zerolog.Ctx(ctx).Debug().Str("query", query).Int("results", len(results)).Msg("search complete")
	return results, nil
}

func (c *WikipediaClient) requestURL(query string) string {
	base := c.Endpoint
	if base == "" {
		base = wikipediaAPIBase
	}
	limit := c.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"format":   {"json"},
		"origin":   {"*"},
		"srlimit":  {strconv.Itoa(limit)},
		"srprop":   {wikipediaProps},
	}
	return base + "?" + params.Encode()
}

// parseWikipediaResponse maps the API body to results. A body without a
// query.search array, or with a MediaWiki error object, is malformed.
func parseWikipediaResponse(ctx context.Context, body []byte) ([]types.SearchResult, error) {
	var resp wikipediaResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("API error %s: %s", resp.Error.Code, resp.Error.Info)
	}
	if resp.Query == nil || resp.Query.Search == nil {
		return nil, fmt.Errorf("response has no query.search array")
	}

	results := make([]types.SearchResult, 0, len(resp.Query.Search))
	for _, hit := range resp.Query.Search {
		r := types.SearchResult{
			Title:     hit.Title,
			Snippet:   hit.Snippet,
			PageID:    hit.PageID,
			WordCount: hit.WordCount,
		}
		if hit.Timestamp != "" {
			if t, err := time.Parse(time.RFC3339, hit.Timestamp); err == nil {
				r.Timestamp = t
			} else {
				zerolog.Ctx(ctx).Debug().Int64("pageid", hit.PageID).Str("timestamp", hit.Timestamp).Msg("ignoring unparsable timestamp")
			}
		}
		if r.WordCount < 0 {
			r.WordCount = 0
		}
		results = append(results, r)
	}
	return results, nil
}

// MediaWiki API JSON structures.
type wikipediaResponse struct {
	Query *wikipediaQuery `json:"query"`
	Error *wikipediaError `json:"error"`
}

type wikipediaQuery struct {
	SearchInfo struct {
		TotalHits int `json:"totalhits"`
	} `json:"searchinfo"`
	Search []wikipediaHit `json:"search"`
}

type wikipediaHit struct {
	NS        int    `json:"ns"`
	Title     string `json:"title"`
	PageID    int64  `json:"pageid"`
	Snippet   string `json:"snippet"`
	Timestamp string `json:"timestamp"`
	WordCount int    `json:"wordcount"`
}

type wikipediaError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}
