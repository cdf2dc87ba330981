// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session holds the state of one interactive search session: the
// current result set, the recent-query history, the sort mode, and the
// derived status.
//
// All state is owned by the goroutine running Session.Run. Callers and
// in-flight searches reach it only through messages, so no locks guard it.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/bsearch/internal/rank"
	"github.com/pdiddy/bsearch/internal/search"
	"github.com/pdiddy/bsearch/pkg/types"
)

// DefaultHistoryLimit caps the recent-query history when the config leaves it unset.
const DefaultHistoryLimit = 8

var (
	// ErrClosed is returned once Run has exited.
	ErrClosed = errors.New("session closed")

	// ErrNoSuchEntry is returned by Recall for an index outside the history.
	ErrNoSuchEntry = errors.New("no such history entry")
)

// Snapshot is a point-in-time copy of session state. It shares no memory
// with the session.
type Snapshot struct {
	Status      types.Status
	Query       string
	History     []string
	Results     []types.SearchResult // storage order, as the service returned them
	Sort        types.SortMode
	Err         string
	HasSearched bool
	Generation  uint64
}

// Sorted returns the results in presentation order.
func (s Snapshot) Sorted() []types.SearchResult {
	return rank.Sort(s.Results, s.Sort)
}

// Session is the state holder. Create one with New and drive it with Run.
type Session struct {
	searcher search.Searcher
	limit    int
	log      zerolog.Logger

	msgs    chan func(*state)
	done    chan struct{}
	started chan struct{}
}

// New creates a session that searches through searcher.
func New(searcher search.Searcher, cfg types.SessionConfig, log zerolog.Logger) *Session {
	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &Session{
		searcher: searcher,
		limit:    limit,
		log:      log.With().Str("component", "session").Logger(),
		msgs:     make(chan func(*state)),
		done:     make(chan struct{}),
		started:  make(chan struct{}),
	}
}

// Run owns the session state until ctx is done. In-flight searches are
// cancelled through ctx, and pending tickets are closed on return. Run must
// be called exactly once.
func (s *Session) Run(ctx context.Context) error {
	select {
	case <-s.started:
		return fmt.Errorf("session already running")
	default:
		close(s.started)
	}

	st := &state{
		limit:   s.limit,
		sort:    types.SortRelevance,
		waiters: make(map[uint64]chan Snapshot),
		log:     s.log,
	}
	st.spawn = func(gen uint64, query string) { go s.fetch(ctx, gen, query) }

	defer func() {
		close(s.done)
		for gen, ch := range st.waiters {
			close(ch)
			delete(st.waiters, gen)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-s.msgs:
			fn(st)
		}
	}
}

// Done is closed when Run returns.
func (s *Session) Done() <-chan struct{} { return s.done }

// Submit starts a search for query. The query is trimmed; a blank query is
// rejected with search.ErrEmptyQuery and leaves state untouched.
func (s *Session) Submit(ctx context.Context, query string) (*Ticket, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, search.ErrEmptyQuery
	}
	return s.start(ctx, func(*state) (string, error) { return query, nil })
}

// Recall re-submits the history entry at index, 0 being the most recent.
func (s *Session) Recall(ctx context.Context, index int) (*Ticket, error) {
	return s.start(ctx, func(st *state) (string, error) {
		if index < 0 || index >= len(st.history) {
			return "", fmt.Errorf("%w: %d", ErrNoSuchEntry, index)
		}
		return st.history[index], nil
	})
}

// SetSort changes the presentation order. Stored results are not reordered.
func (s *Session) SetSort(ctx context.Context, mode types.SortMode) error {
	switch mode {
	case types.SortRelevance, types.SortDate, types.SortWordCount:
	default:
		return fmt.Errorf("unknown sort mode %q", mode)
	}
	return s.do(ctx, func(st *state) { st.sort = mode })
}

// ClearHistory empties the history. Results and status are unaffected.
func (s *Session) ClearHistory(ctx context.Context) error {
	return s.do(ctx, func(st *state) { st.history = nil })
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.do(ctx, func(st *state) { snap = st.snapshot() })
	return snap, err
}

func (s *Session) start(ctx context.Context, pick func(*state) (string, error)) (*Ticket, error) {
	var (
		ticket  *Ticket
		pickErr error
	)
	err := s.do(ctx, func(st *state) {
		query, err := pick(st)
		if err != nil {
			pickErr = err
			return
		}
		gen, ch := st.begin(query)
		ticket = &Ticket{Generation: gen, Query: query, done: ch}
	})
	if err != nil {
		return nil, err
	}
	if pickErr != nil {
		return nil, pickErr
	}
	return ticket, nil
}

// do runs fn on the owning goroutine and waits for it to finish.
func (s *Session) do(ctx context.Context, fn func(*state)) error {
	ack := make(chan struct{})
	select {
	case s.msgs <- func(st *state) { fn(st); close(ack) }:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrClosed
	}
	<-ack
	return nil
}

// fetch performs one client call and delivers the outcome to the owner.
func (s *Session) fetch(ctx context.Context, gen uint64, query string) {
	results, err := s.searcher.Search(ctx, query)
	select {
	case s.msgs <- func(st *state) { st.complete(gen, results, err) }:
	case <-s.done:
	}
}

// Ticket tracks one submitted search.
type Ticket struct {
	Generation uint64
	Query      string
	done       chan Snapshot
}

// Done yields the snapshot taken when this search's outcome was applied or
// discarded, then closes. It closes without a value if the session stops first.
func (t *Ticket) Done() <-chan Snapshot { return t.done }

// Wait blocks until the search resolves. A snapshot whose Generation
// differs from the ticket's means a newer search superseded this one.
func (t *Ticket) Wait(ctx context.Context) (Snapshot, error) {
	select {
	case snap, ok := <-t.done:
		if !ok {
			return Snapshot{}, ErrClosed
		}
		return snap, nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Superseded reports whether snap reflects a newer search than t.
func (t *Ticket) Superseded(snap Snapshot) bool {
	return snap.Generation != t.Generation
}
