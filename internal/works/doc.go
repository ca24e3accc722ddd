// Package works groups catalog records into distinct (author, work) keys and
// resolves each key to reference metadata.
//
// Author names come from the composer sort field when present, otherwise the
// artist sort field, and are cleaned of duplicated fragments before they are
// used as part of a key. Resolution is a two step pipeline: a LinkFinder turns
// a query into a page URL and a Scraper turns the page into Metadata.
package works
