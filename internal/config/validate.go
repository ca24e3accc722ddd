package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable. Credentials are optional
// here because interactive runs never call the search API; a run that does
// needs at least one and fails when the credential pool is built.
func (c *Config) Validate() error {
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateScraper(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSearch() error {
	parsed, err := url.Parse(c.Search.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("search.base_url %q is not an absolute URL", c.Search.BaseURL)
	}
	if c.Search.ResultLimit < 1 || c.Search.ResultLimit > MaxResultLimit {
		return fmt.Errorf("search.result_limit must be between 1 and %d", MaxResultLimit)
	}
	if c.Search.TimeoutSeconds < 0 {
		return errors.New("search.timeout_seconds must be positive")
	}
	for i, cred := range c.Search.Credentials {
		var missing []string
		if cred.APIKey == "" {
			missing = append(missing, "api_key")
		}
		if cred.CSEID == "" {
			missing = append(missing, "cse_id")
		}
		if len(missing) > 0 {
			return fmt.Errorf("search.credentials[%d]: missing %s", i, strings.Join(missing, ", "))
		}
	}
	return nil
}

func (c *Config) validateScraper() error {
	if c.Scraper.TimeoutSeconds < 0 {
		return errors.New("scraper.timeout_seconds must be positive")
	}
	if c.Scraper.RequestsPerMinute < 0 {
		return errors.New("scraper.requests_per_minute must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not a known level", c.Logging.Level)
	}
	return nil
}
