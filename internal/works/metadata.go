package works

import "strings"

// Metadata is the reference information scraped for a work.
type Metadata struct {
	Style            string   `json:"style" yaml:"style"`
	FirstPublication string   `json:"first_publication,omitempty" yaml:"first_publication,omitempty"`
	GenreCategories  []string `json:"genre_categories,omitempty" yaml:"genre_categories,omitempty"`
}

// Usable reports whether the page yielded a style.
func (m Metadata) Usable() bool {
	return m.Style != ""
}

// Genre combines the style with the first genre category, "Romantic; Symphonies".
func (m Metadata) Genre() string {
	if len(m.GenreCategories) == 0 {
		return m.Style
	}
	return m.Style + "; " + m.GenreCategories[0]
}

// Categories joins the genre categories for storage in a single field.
func (m Metadata) Categories() string {
	return strings.Join(m.GenreCategories, "; ")
}
