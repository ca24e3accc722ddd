package config

const (
	defaultConfigPath          = "~/.config/scribe/config.toml"
	defaultCatalogPath         = "~/.config/beets/library.db"
	defaultSearchBaseURL       = "https://www.googleapis.com/customsearch/v1"
	defaultSearchResultLimit   = 5
	defaultSearchTimeout       = 15
	defaultSearchSite          = "imslp.org"
	defaultScraperTimeout      = 30
	defaultScraperRequestsPerM = 30
	defaultScraperUserAgent    = "scribe/dev (+https://imslp.org)"
	defaultCachePath           = "~/.cache/scribe/works.json"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"

	// MaxResultLimit is the largest page size the Custom Search API accepts.
	MaxResultLimit = 10

	envSearchAPIKey = "SCRIBE_SEARCH_API_KEY"
	envSearchCSEID  = "SCRIBE_SEARCH_CSE_ID"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Catalog: Catalog{
			Path: defaultCatalogPath,
			Lock: true,
		},
		Search: Search{
			BaseURL:        defaultSearchBaseURL,
			ResultLimit:    defaultSearchResultLimit,
			TimeoutSeconds: defaultSearchTimeout,
			Site:           defaultSearchSite,
		},
		Scraper: Scraper{
			TimeoutSeconds:    defaultScraperTimeout,
			RequestsPerMinute: defaultScraperRequestsPerM,
			UserAgent:         defaultScraperUserAgent,
		},
		Cache: Cache{
			Enabled: true,
			Path:    defaultCachePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
