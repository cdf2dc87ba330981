// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"github.com/rs/zerolog"

	"github.com/pdiddy/bsearch/internal/search"
	"github.com/pdiddy/bsearch/pkg/types"
)

// state is touched only by the goroutine in Session.Run.
type state struct {
	limit int

	status      types.Status
	query       string
	history     []string
	results     []types.SearchResult
	sort        types.SortMode
	errMsg      string
	hasSearched bool

	generation uint64
	waiters    map[uint64]chan Snapshot
	spawn      func(gen uint64, query string)
	log        zerolog.Logger
}

// begin performs the idle/success/error -> loading transition and starts
// the client call.
func (st *state) begin(query string) (uint64, chan Snapshot) {
	st.history = pushHistory(st.history, query, st.limit)
	st.errMsg = ""
	st.results = nil
	st.status = types.StatusLoading
	st.query = query
	st.hasSearched = true
	st.generation++

	gen := st.generation
	ch := make(chan Snapshot, 1)
	st.waiters[gen] = ch
	st.log.Debug().Uint64("generation", gen).Str("query", query).Msg("search started")
	st.spawn(gen, query)
	return gen, ch
}

// complete applies a client outcome. Outcomes from superseded searches are
// discarded so an older, slower response cannot overwrite a newer one.
func (st *state) complete(gen uint64, results []types.SearchResult, err error) {
	if gen != st.generation {
		st.log.Debug().Uint64("generation", gen).Uint64("current", st.generation).Msg("discarding stale response")
		st.notify(gen)
		return
	}

	if err != nil {
		st.log.Debug().Err(err).Str("query", st.query).Msg("search failed")
		st.results = nil
		st.errMsg = search.UserMessage
		st.status = types.StatusError
	} else {
		st.results = append([]types.SearchResult(nil), results...)
		st.sort = types.SortRelevance
		st.status = types.StatusSuccess
	}
	st.notify(gen)
}

func (st *state) notify(gen uint64) {
	ch, ok := st.waiters[gen]
	if !ok {
		return
	}
	delete(st.waiters, gen)
	ch <- st.snapshot()
	close(ch)
}

func (st *state) snapshot() Snapshot {
	return Snapshot{
		Status:      st.status,
		Query:       st.query,
		History:     append([]string(nil), st.history...),
		Results:     append([]types.SearchResult(nil), st.results...),
		Sort:        st.sort,
		Err:         st.errMsg,
		HasSearched: st.hasSearched,
		Generation:  st.generation,
	}
}

// pushHistory moves query to the front, dropping any earlier occurrence and
// anything beyond limit.
func pushHistory(history []string, query string, limit int) []string {
	out := make([]string, 0, limit)
	out = append(out, query)
	for _, q := range history {
		if len(out) == limit {
			break
		}
		if q != query {
			out = append(out, q)
		}
	}
	return out
}
