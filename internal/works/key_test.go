package works_test

import (
	"slices"
	"testing"

	"scribe/internal/works"
)

func TestKeyForPrefersComposerSort(t *testing.T) {
	key, ok := works.KeyFor(works.Record{
		Artist:       "Gioachino Rossini",
		ArtistSort:   "Pavarotti, Luciano",
		ComposerSort: "Rossini, Gioachino, Rossini, Gioachino, Rossini, Gioachino",
		Work:         "Stabat Mater: I. Introduzione",
	})
	if !ok {
		t.Fatal("expected key")
	}
	want := works.Key{Field: works.FieldComposerSort, Author: "Rossini, Gioachino", Title: "Stabat Mater"}
	if key != want {
		t.Fatalf("got %+v, want %+v", key, want)
	}
}

func TestKeyForFallsBackToArtistSort(t *testing.T) {
	key, ok := works.KeyFor(works.Record{
		Artist:     "Ludwig van Beethoven",
		ArtistSort: "Beethoven, Ludwig van, ",
		Work:       " Symphony No. 5 ",
	})
	if !ok {
		t.Fatal("expected key")
	}
	want := works.Key{Field: works.FieldArtistSort, Author: "Beethoven, Ludwig van", Title: "Symphony No. 5"}
	if key != want {
		t.Fatalf("got %+v, want %+v", key, want)
	}
}

func TestKeyForRejectsIncompleteRecords(t *testing.T) {
	cases := []works.Record{
		{Artist: "Bach", ArtistSort: "Bach", Work: ""},
		{Artist: "Bach", ArtistSort: "Bach", Work: "   "},
		{Artist: "Bach", Work: "Mass in B minor"},
	}
	for _, r := range cases {
		if _, ok := works.KeyFor(r); ok {
			t.Fatalf("expected no key for %+v", r)
		}
	}
}

func TestCollectDeduplicatesInOrder(t *testing.T) {
	records := []works.Record{
		{Artist: "Bach", ComposerSort: "Bach, Johann Sebastian", Work: "Mass in B minor: Kyrie"},
		{Artist: "Bach", Work: "Mass in B minor", Label: "no author"},
		{Artist: "Haydn", ArtistSort: "Haydn, Joseph", Work: "The Creation"},
		{Artist: "Bach", ComposerSort: "Bach, Johann Sebastian", Work: "Mass in B minor: Gloria"},
		{Artist: "Bach", ComposerSort: "Bach, Johann Sebastian", Work: "", Label: "no work"},
	}
	got := works.Collect(records, nil)
	want := []works.Key{
		{Field: works.FieldComposerSort, Author: "Bach, Johann Sebastian", Title: "Mass in B minor"},
		{Field: works.FieldArtistSort, Author: "Haydn, Joseph", Title: "The Creation"},
	}
	if !slices.Equal(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestKeyMatches(t *testing.T) {
	key := works.Key{Field: works.FieldComposerSort, Author: "Bach, Johann Sebastian", Title: "Mass in B minor (BWV 232)"}
	tests := []struct {
		author string
		work   string
		want   bool
	}{
		{"Bach, Johann Sebastian", "Mass in B minor (BWV 232)", true},
		{"Bach, Johann Sebastian; Bach, J.S.", "Mass in B minor (BWV 232): Kyrie", true},
		{"Bach, Johann Sebastian", "Mass in B minor (BWV 232) :  Gloria", true},
		{"Bach, Johann Sebastian", "Mass in B minor (BWV 232) extended", false},
		{"Bach, Johann Sebastian", "Mass in B minor (BWV 232):", false},
		{"Bach, Carl Philipp Emanuel", "Mass in B minor (BWV 232)", false},
		{"Bach, Johann Sebastian", "Mass in B minor BWV 232", false},
	}
	matches := key.Matcher()
	for _, tt := range tests {
		if got := key.Matches(tt.author, tt.work); got != tt.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tt.author, tt.work, got, tt.want)
		}
		if got := matches(tt.author, tt.work); got != tt.want {
			t.Errorf("Matcher()(%q, %q) = %v, want %v", tt.author, tt.work, got, tt.want)
		}
	}
}

func TestKeyQueryAndString(t *testing.T) {
	key := works.Key{Field: works.FieldArtistSort, Author: "Haydn, Joseph", Title: "The Creation"}
	if got := key.Query(); got != "Haydn, Joseph The Creation" {
		t.Fatalf("unexpected query %q", got)
	}
	if got := key.String(); got != `artist_sort:"Haydn, Joseph", work:"The Creation"` {
		t.Fatalf("unexpected string %q", got)
	}
}

func TestMetadataGenre(t *testing.T) {
	meta := works.Metadata{Style: "Romantic", GenreCategories: []string{"Symphonies", "For orchestra"}}
	if !meta.Usable() {
		t.Fatal("expected usable metadata")
	}
	if got := meta.Genre(); got != "Romantic; Symphonies" {
		t.Fatalf("unexpected genre %q", got)
	}
	if got := meta.Categories(); got != "Symphonies; For orchestra" {
		t.Fatalf("unexpected categories %q", got)
	}
	if got := (works.Metadata{Style: "Baroque"}).Genre(); got != "Baroque" {
		t.Fatalf("unexpected genre without categories %q", got)
	}
	if (works.Metadata{}).Usable() {
		t.Fatal("expected empty metadata unusable")
	}
}
