// Package config loads, normalizes, and validates scribe configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SCRIBE_SEARCH_API_KEY and SCRIBE_SEARCH_CSE_ID. Search credentials are kept
// in file order because that order seeds credential rotation.
package config
