package testsupport

import (
	"context"
	"testing"

	"scribe/internal/catalog"
)

// MustOpenCatalog opens a catalog.Store for tests and registers cleanup.
func MustOpenCatalog(t testing.TB, path string) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// InsertItems adds items to the store, filling in their ids.
func InsertItems(t testing.TB, store *catalog.Store, items ...*catalog.Item) {
	t.Helper()

	for _, item := range items {
		if _, err := store.Insert(context.Background(), item); err != nil {
			t.Fatalf("store.Insert: %v", err)
		}
	}
}

// Track is shorthand for a catalog item with the fields work grouping reads.
func Track(artist, composerSort, album, title, work string) *catalog.Item {
	return &catalog.Item{
		Artist:       artist,
		ArtistSort:   composerSort,
		ComposerSort: composerSort,
		Album:        album,
		Title:        title,
		Work:         work,
	}
}
