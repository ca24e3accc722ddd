// Package workcache persists resolved works between runs.
//
// Entries map a work key to the page it resolved to and the metadata scraped
// from it, so repeated runs over the same library spend no search quota on
// works already seen. Keys are case folded. The cache is a single JSON file
// rewritten atomically on every change; an empty path disables it.
package workcache
