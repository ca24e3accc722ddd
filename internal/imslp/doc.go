// Package imslp scrapes work pages of the International Music Score Library
// Project.
//
// Only the General Information table is read: the piece style, the genre
// categories and the first publication. Requests share a token bucket so a
// long enrichment run stays polite towards the site.
package imslp
