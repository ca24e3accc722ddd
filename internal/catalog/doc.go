// Package catalog reads and updates a beets-compatible SQLite music library.
//
// Items live in the items table; the work fields scribe writes are stored as
// flexible attributes in item_attributes, the same layout beets uses, so the
// library stays usable by beets itself. Open creates the minimal schema when
// pointed at an empty file, which keeps tests and fresh catalogs simple.
//
// Query parses command line terms into SQL filters. ItemsForWork narrows a
// query down to the items belonging to one work key.
package catalog
