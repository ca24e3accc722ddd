package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// StripRepeated removes duplicated fragments from a catalog name. While the
// longest non-overlapping repeat is longer than minLen runes, its first
// occurrence is cut and the remainder trimmed of spaces, commas and
// semicolons. Callers pass the length of a trusted display name as minLen so
// short incidental repeats such as name particles survive.
func StripRepeated(content string, minLen int) string {
	repeat := LongestRepeat(content)
	for utf8.RuneCountInString(repeat) > minLen {
		content = TrimSeparators(strings.Replace(content, repeat, "", 1))
		repeat = LongestRepeat(content)
	}
	return content
}

// TrimSeparators trims whitespace, commas and semicolons from both ends.
func TrimSeparators(value string) string {
	return strings.TrimFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';'
	})
}
