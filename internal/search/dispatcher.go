package search

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"scribe/internal/logging"
)

// DefaultResultLimit is the number of links requested per search.
const DefaultResultLimit = 5

// Searcher performs one search with one credential. Links must be empty when
// the status is not 200. A non-nil error means the call could not complete.
type Searcher interface {
	Search(ctx context.Context, query string, cred Credential, limit int) (int, []string, error)
}

// State holds run-wide dispatch counters. CallCount is the number of search
// attempts made so far and decides where the next rotation starts.
type State struct {
	CallCount int
}

// Dispatcher runs queries against a credential pool, rotating the starting
// credential by the cumulative call count and skipping rate-limited entries.
type Dispatcher struct {
	mu       sync.Mutex
	pool     *Pool
	state    *State
	searcher Searcher
	limit    int
	logger   *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithResultLimit overrides the number of links requested per call.
func WithResultLimit(limit int) Option {
	return func(d *Dispatcher) {
		if limit > 0 {
			d.limit = limit
		}
	}
}

// WithLogger attaches a logger for attempt diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDispatcher builds a dispatcher. A nil state starts a fresh run.
func NewDispatcher(pool *Pool, state *State, searcher Searcher, opts ...Option) *Dispatcher {
	if state == nil {
		state = &State{}
	}
	d := &Dispatcher{
		pool:     pool,
		state:    state,
		searcher: searcher,
		limit:    DefaultResultLimit,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Search returns the first link for query, or "" when every active credential
// is rate limited or no results came back.
func (d *Dispatcher) Search(ctx context.Context, query string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	actives := d.pool.ActiveIndices()
	if len(actives) == 0 {
		d.logger.Debug("no active search credentials", logging.String("query", query))
		return "", nil
	}

	// Each credential active at the start is tried at most once, beginning at
	// the rotation offset, until one answers with something other than 429.
	start := d.state.CallCount % len(actives)
	retries := 0
	var links []string
	for retries < len(actives) {
		idx := actives[(start+retries)%len(actives)]
		cred := d.pool.Credential(idx)

		status, found, err := d.searcher.Search(ctx, query, cred, d.limit)
		retries++
		if err != nil {
			d.state.CallCount += retries
			return "", fmt.Errorf("search with %s: %w", cred.Name, err)
		}
		d.pool.RecordStatus(idx, status)
		if status != StatusRateLimited {
			d.logger.Debug("search attempt",
				logging.String(logging.FieldCredential, cred.Name),
				logging.Int("status", status),
				logging.Int("links", len(found)),
			)
			links = found
			break
		}
		logging.WarnWithContext(d.logger, "search credential rate limited", "search_rate_limited",
			logging.String(logging.FieldCredential, cred.Name),
			logging.String(logging.FieldErrorHint, "quota resets daily; add credentials to spread load"),
			logging.String(logging.FieldImpact, "credential excluded for the rest of this run"),
		)
	}
	d.state.CallCount += retries

	if len(links) == 0 {
		return "", nil
	}
	return links[0], nil
}

// CallCount reports the attempts made so far in this run.
func (d *Dispatcher) CallCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.CallCount
}

// Pool exposes the credential pool for reporting.
func (d *Dispatcher) Pool() *Pool {
	return d.pool
}
