package works

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"scribe/internal/logging"
	"scribe/internal/textutil"
)

// AuthorField names the catalog field a key's author was taken from.
type AuthorField string

const (
	// FieldArtistSort is the primary author field.
	FieldArtistSort AuthorField = "artist_sort"
	// FieldComposerSort is the secondary author field, preferred when set.
	FieldComposerSort AuthorField = "composer_sort"
)

// Key identifies one musical work. Keys are comparable and used directly as
// map keys.
type Key struct {
	Field  AuthorField `json:"field" yaml:"field"`
	Author string      `json:"author" yaml:"author"`
	Title  string      `json:"work" yaml:"work"`
}

// Query is the search string for the key.
func (k Key) Query() string {
	return k.Author + " " + k.Title
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%q, work:%q", k.Field, k.Author, k.Title)
}

// Matches reports whether a record with the given author field value and work
// belongs to the key: the author starts with the key author and the work is
// the key title, optionally followed by ": movement".
func (k Key) Matches(author, work string) bool {
	return k.Matcher()(author, work)
}

// Matcher returns Matches with the work pattern compiled once, for checking
// many records against the same key.
func (k Key) Matcher() func(author, work string) bool {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(k.Title) + `(\s*:.+)?$`)
	return func(author, work string) bool {
		return strings.HasPrefix(author, k.Author) && pattern.MatchString(work)
	}
}

// Record is the slice of a catalog item that key collection reads.
type Record struct {
	Artist       string
	ArtistSort   string
	ComposerSort string
	Work         string
	// Label identifies the record in diagnostics.
	Label string
}

// Author returns the field and raw value a key would be built from.
func (r Record) Author() (AuthorField, string) {
	if r.ComposerSort != "" {
		return FieldComposerSort, r.ComposerSort
	}
	return FieldArtistSort, r.ArtistSort
}

// KeyFor builds the key for a single record. ok is false when the record has
// no work or no author.
func KeyFor(r Record) (Key, bool) {
	if strings.TrimSpace(r.Work) == "" {
		return Key{}, false
	}
	field, author := r.Author()
	if author == "" {
		return Key{}, false
	}
	author = textutil.StripRepeated(author, utf8.RuneCountInString(r.Artist))
	title, _, _ := strings.Cut(r.Work, ":")
	return Key{
		Field:  field,
		Author: strings.Trim(author, " ,"),
		Title:  strings.TrimSpace(title),
	}, true
}

// Collect returns the distinct keys of records in first-seen order. Records
// without a work or an author are skipped with a diagnostic.
func Collect(records []Record, logger *slog.Logger) []Key {
	if logger == nil {
		logger = logging.NewNop()
	}
	seen := make(map[Key]struct{}, len(records))
	keys := make([]Key, 0)
	for _, r := range records {
		key, ok := KeyFor(r)
		if !ok {
			reason := "empty work field"
			if strings.TrimSpace(r.Work) != "" {
				reason = "empty author fields"
			}
			logger.Info("item discarded",
				logging.String("reason", reason),
				logging.String("item", r.Label),
			)
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	logger.Debug("works collected", logging.Int("records", len(records)), logging.Int("works", len(keys)))
	return keys
}
