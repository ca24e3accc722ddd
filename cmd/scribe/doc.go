// Package main hosts the scribe CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, builds the catalog, search
// and scraping collaborators for the requested operation, and renders results
// as text, tables, JSON or YAML. The enrichment logic itself lives in the
// internal packages; commands here only wire and present.
package main
