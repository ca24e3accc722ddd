package catalog

import (
	"strings"

	"scribe/internal/works"
)

// Flexible attribute names written by enrichment.
const (
	AttrWorkStyle        = "sc_work_style"
	AttrGenreCategories  = "sc_genre_categories"
	AttrFirstPublication = "sc_first_publication"
)

// Item is one track of the library.
type Item struct {
	ID           int64
	Artist       string
	ArtistSort   string
	ComposerSort string
	Album        string
	Title        string
	Work         string
	Genre        string
	Attributes   map[string]string
}

// Attr returns a flexible attribute, or "" when unset.
func (i *Item) Attr(key string) string {
	if i.Attributes == nil {
		return ""
	}
	return i.Attributes[key]
}

// SetAttr sets a flexible attribute.
func (i *Item) SetAttr(key, value string) {
	if i.Attributes == nil {
		i.Attributes = make(map[string]string)
	}
	i.Attributes[key] = value
}

// Label is the "artist - album - title" line used in reports.
func (i *Item) Label() string {
	return strings.Join([]string{i.Artist, i.Album, i.Title}, " - ")
}

// Record returns the fields work key collection needs.
func (i *Item) Record() works.Record {
	return works.Record{
		Artist:       i.Artist,
		ArtistSort:   i.ArtistSort,
		ComposerSort: i.ComposerSort,
		Work:         i.Work,
		Label:        i.Label(),
	}
}

// Records converts items for works.Collect.
func Records(items []*Item) []works.Record {
	out := make([]works.Record, 0, len(items))
	for _, item := range items {
		out = append(out, item.Record())
	}
	return out
}

// field returns a fixed column value by name.
func (i *Item) field(name string) string {
	switch name {
	case "artist":
		return i.Artist
	case "artist_sort":
		return i.ArtistSort
	case "composer_sort":
		return i.ComposerSort
	case "album":
		return i.Album
	case "title":
		return i.Title
	case "work":
		return i.Work
	case "genre":
		return i.Genre
	}
	return i.Attr(name)
}
