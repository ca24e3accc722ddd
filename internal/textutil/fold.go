package textutil

import (
	"strings"

	"golang.org/x/text/cases"
)

// FoldKey joins parts into a case-insensitive lookup key. Whitespace runs
// collapse to one space so "Bach,  J.S." and "bach, j.s." share a key.
func FoldKey(parts ...string) string {
	folder := cases.Fold()
	normalized := make([]string, 0, len(parts))
	for _, part := range parts {
		normalized = append(normalized, strings.Join(strings.Fields(folder.String(part)), " "))
	}
	return strings.Join(normalized, "\x1f")
}
