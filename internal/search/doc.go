// Package search dispatches web search queries across a pool of rate-limited
// credentials.
//
// A Pool tracks the last status seen for every credential and excludes the
// ones that answered 429 for the remainder of the run. The Dispatcher rotates
// its starting credential by the run-wide call count held in State, so
// consecutive queries spread load across accounts. The network call itself is
// a Searcher supplied by the caller.
package search
