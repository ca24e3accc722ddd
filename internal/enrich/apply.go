package enrich

import (
	"fmt"
	"strings"

	"scribe/internal/catalog"
	"scribe/internal/config"
	"scribe/internal/works"
)

// apply writes meta into item according to fields. The work style is always
// written.
func apply(item *catalog.Item, meta works.Metadata, fields config.Fields) {
	item.SetAttr(catalog.AttrWorkStyle, meta.Style)
	if fields.FirstPublication {
		item.SetAttr(catalog.AttrFirstPublication, meta.FirstPublication)
	}
	if fields.GenreCategories {
		item.SetAttr(catalog.AttrGenreCategories, meta.Categories())
	}
	if fields.Genre {
		item.Genre = meta.Genre()
	}
}

// describe renders the fields a change touches, e.g.
// `sc_work_style = "Romantic", genre = "Romantic; Symphonies"`.
func describe(meta works.Metadata, fields config.Fields) string {
	parts := []string{fmt.Sprintf("%s = %q", catalog.AttrWorkStyle, truncate(meta.Style, 30))}
	if fields.Genre {
		parts = append(parts, fmt.Sprintf("genre = %q", truncate(meta.Genre(), 40)))
	}
	if fields.FirstPublication {
		parts = append(parts, fmt.Sprintf("%s = %q", catalog.AttrFirstPublication, truncate(meta.FirstPublication, 20)))
	}
	if fields.GenreCategories {
		parts = append(parts, fmt.Sprintf("%s = %s", catalog.AttrGenreCategories, truncate(categoryList(meta.GenreCategories), 60)))
	}
	return strings.Join(parts, ", ")
}

func categoryList(categories []string) string {
	quoted := make([]string, 0, len(categories))
	for _, c := range categories {
		quoted = append(quoted, fmt.Sprintf("%q", c))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// truncate shortens value to size runes, ending with "..." when cut.
func truncate(value string, size int) string {
	runes := []rune(value)
	if len(runes) <= size {
		return value
	}
	return string(runes[:size-3]) + "..."
}
