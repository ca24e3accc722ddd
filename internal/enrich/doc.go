// Package enrich runs an enrichment pass over the catalog.
//
// A run queries items, groups them into works, resolves each work through the
// work cache or a fresh search and scrape, and writes the result to every item
// of the work. A manual search mode applies the result of a single query to
// all queried items instead. Pretend runs report changes without saving them.
//
// Output follows the command line conventions of the tool: progress messages
// go to the configured writer and are silenced by Quiet unless the run is
// interactive, while diagnostics go to the structured logger.
package enrich
