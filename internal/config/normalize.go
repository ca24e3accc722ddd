package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSearch()
	c.normalizeScraper()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Catalog.Path) == "" {
		c.Catalog.Path = defaultCatalogPath
	}
	if c.Catalog.Path, err = expandPath(strings.TrimSpace(c.Catalog.Path)); err != nil {
		return fmt.Errorf("catalog.path: %w", err)
	}
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = defaultCachePath
	}
	if c.Cache.Path, err = expandPath(strings.TrimSpace(c.Cache.Path)); err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSearch() {
	c.Search.BaseURL = strings.TrimRight(strings.TrimSpace(c.Search.BaseURL), "/")
	if c.Search.BaseURL == "" {
		c.Search.BaseURL = defaultSearchBaseURL
	}
	if c.Search.ResultLimit == 0 {
		c.Search.ResultLimit = defaultSearchResultLimit
	}
	if c.Search.TimeoutSeconds == 0 {
		c.Search.TimeoutSeconds = defaultSearchTimeout
	}
	c.Search.Site = strings.TrimSpace(c.Search.Site)
	if c.Search.Site == "" {
		c.Search.Site = defaultSearchSite
	}
	for i := range c.Search.Credentials {
		cred := &c.Search.Credentials[i]
		cred.Name = strings.TrimSpace(cred.Name)
		cred.APIKey = strings.TrimSpace(cred.APIKey)
		cred.CSEID = strings.TrimSpace(cred.CSEID)
	}
	if len(c.Search.Credentials) == 0 {
		apiKey := strings.TrimSpace(os.Getenv(envSearchAPIKey))
		cseID := strings.TrimSpace(os.Getenv(envSearchCSEID))
		if apiKey != "" || cseID != "" {
			c.Search.Credentials = append(c.Search.Credentials, Credential{
				Name:   "env",
				APIKey: apiKey,
				CSEID:  cseID,
			})
		}
	}
}

func (c *Config) normalizeScraper() {
	if c.Scraper.TimeoutSeconds == 0 {
		c.Scraper.TimeoutSeconds = defaultScraperTimeout
	}
	if c.Scraper.RequestsPerMinute == 0 {
		c.Scraper.RequestsPerMinute = defaultScraperRequestsPerM
	}
	c.Scraper.UserAgent = strings.TrimSpace(c.Scraper.UserAgent)
	if c.Scraper.UserAgent == "" {
		c.Scraper.UserAgent = defaultScraperUserAgent
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
