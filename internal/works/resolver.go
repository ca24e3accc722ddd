package works

import (
	"context"
	"fmt"
	"log/slog"

	"scribe/internal/logging"
)

// LinkFinder turns a search query into the URL of a work page. An empty URL
// means nothing was found.
type LinkFinder interface {
	Search(ctx context.Context, query string) (string, error)
}

// Scraper extracts metadata from a work page. A zero Metadata means the page
// held nothing usable.
type Scraper interface {
	Scrape(ctx context.Context, url string) (Metadata, error)
}

// Resolver drives a LinkFinder and a Scraper for each work.
type Resolver struct {
	finder  LinkFinder
	scraper Scraper
	logger  *slog.Logger
}

// NewResolver builds a resolver.
func NewResolver(finder LinkFinder, scraper Scraper, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{finder: finder, scraper: scraper, logger: logger}
}

// Resolve looks up metadata for key. It returns the page URL alongside the
// metadata; both are empty when no page was found, and the metadata is empty
// when the page had no style.
func (r *Resolver) Resolve(ctx context.Context, key Key) (Metadata, string, error) {
	return r.ResolveQuery(ctx, key.Query())
}

// ResolveQuery is Resolve for a caller-supplied query.
func (r *Resolver) ResolveQuery(ctx context.Context, query string) (Metadata, string, error) {
	url, err := r.finder.Search(ctx, query)
	if err != nil {
		return Metadata{}, "", fmt.Errorf("find page: %w", err)
	}
	if url == "" {
		r.logger.Debug("no page found", logging.String("query", query))
		return Metadata{}, "", nil
	}
	meta, err := r.scraper.Scrape(ctx, url)
	if err != nil {
		return Metadata{}, url, fmt.Errorf("scrape %s: %w", url, err)
	}
	r.logger.Debug("page scraped",
		logging.String("url", url),
		logging.String("style", meta.Style),
		logging.Int("genre_categories", len(meta.GenreCategories)),
	)
	if !meta.Usable() {
		return Metadata{}, url, nil
	}
	return meta, url, nil
}
