// Package logging assembles the structured slog loggers used by the scribe
// CLI and its enrichment pipeline.
//
// It owns the console and JSON handlers, level and output plumbing, and the
// standard attribute keys (component, run_id, work, credential) so that a
// single enrichment run can be followed from the first catalog query to the
// last field update. A no-op logger is provided for tests and wiring code
// that has nothing to report.
package logging
