package enrich

import (
	"fmt"
	"log/slog"

	"scribe/internal/config"
	"scribe/internal/customsearch"
	"scribe/internal/imslp"
	"scribe/internal/logging"
	"scribe/internal/search"
)

// NewDispatcher builds the credential-rotating search dispatcher described by
// cfg. It fails with a *search.ConfigurationError when no usable credential
// is configured.
func NewDispatcher(cfg *config.Config, logger *slog.Logger) (*search.Dispatcher, error) {
	creds := make([]search.Credential, 0, len(cfg.Search.Credentials))
	for _, c := range cfg.Search.Credentials {
		creds = append(creds, search.Credential{Name: c.Name, APIKey: c.APIKey, CollectionID: c.CSEID})
	}
	pool, err := search.NewPool(creds)
	if err != nil {
		return nil, err
	}
	client, err := customsearch.New(cfg.Search.BaseURL, cfg.SearchTimeout(), customsearch.WithSite(cfg.Search.Site))
	if err != nil {
		return nil, fmt.Errorf("custom search client: %w", err)
	}
	return search.NewDispatcher(pool, &search.State{}, client,
		search.WithResultLimit(cfg.Search.ResultLimit),
		search.WithLogger(logging.NewComponentLogger(logger, "search")),
	), nil
}

// NewScraper builds the IMSLP scraper described by cfg.
func NewScraper(cfg *config.Config, logger *slog.Logger) *imslp.Scraper {
	return imslp.New(cfg.ScraperTimeout(),
		imslp.WithRequestsPerMinute(cfg.Scraper.RequestsPerMinute),
		imslp.WithUserAgent(cfg.Scraper.UserAgent),
		imslp.WithLogger(logging.NewComponentLogger(logger, "imslp")),
	)
}
