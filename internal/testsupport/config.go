package testsupport

import (
	"path/filepath"
	"testing"

	"scribe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose catalog, cache and log paths live in a
// per-test temp directory. One search credential is configured.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Catalog.Path = filepath.Join(base, "library.db")
	cfgVal.Cache.Path = filepath.Join(base, "cache", "works.json")
	cfgVal.Logging.Dir = filepath.Join(base, "logs")
	cfgVal.Search.Credentials = []config.Credential{{Name: "test", APIKey: "key", CSEID: "engine"}}
	cfgVal.Scraper.RequestsPerMinute = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithSearchBaseURL points the search client at a test server.
func WithSearchBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Search.BaseURL = url
	}
}

// WithCredentials replaces the configured search credentials.
func WithCredentials(creds ...config.Credential) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Search.Credentials = creds
	}
}

// WithCacheDisabled turns the work cache off.
func WithCacheDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Catalog.Path)
}
