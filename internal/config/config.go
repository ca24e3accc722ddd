package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Catalog points at the beets-compatible SQLite library to enrich.
type Catalog struct {
	Path string `toml:"path"`
	Lock bool   `toml:"lock"`
}

// Credential is one Programmable Search account: an API key plus the search
// engine (collection) it is allowed to query.
type Credential struct {
	Name   string `toml:"name"`
	APIKey string `toml:"api_key"`
	CSEID  string `toml:"cse_id"`
}

// Search contains configuration for the Custom Search JSON API.
type Search struct {
	BaseURL        string       `toml:"base_url"`
	ResultLimit    int          `toml:"result_limit"`
	TimeoutSeconds int          `toml:"timeout_seconds"`
	Site           string       `toml:"site"`
	Credentials    []Credential `toml:"credentials"`
}

// Scraper contains configuration for fetching IMSLP work pages.
type Scraper struct {
	TimeoutSeconds    int    `toml:"timeout_seconds"`
	RequestsPerMinute int    `toml:"requests_per_minute"`
	UserAgent         string `toml:"user_agent"`
}

// Fields selects which optional catalog fields an enrichment run writes.
// sc_work_style is always written.
type Fields struct {
	Genre            bool `toml:"genre"`
	GenreCategories  bool `toml:"genre_categories"`
	FirstPublication bool `toml:"first_publication"`
}

// Cache contains configuration for the resolved work cache.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for scribe.
type Config struct {
	Catalog Catalog `toml:"catalog"`
	Search  Search  `toml:"search"`
	Scraper Scraper `toml:"scraper"`
	Fields  Fields  `toml:"fields"`
	Cache   Cache   `toml:"cache"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and environment fallbacks applied.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("scribe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// SearchTimeout bounds a single Custom Search request.
func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.Search.TimeoutSeconds) * time.Second
}

// ScraperTimeout bounds a single page fetch.
func (c *Config) ScraperTimeout() time.Duration {
	return time.Duration(c.Scraper.TimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	// The sample may later hold API keys.
	if err := os.WriteFile(path, []byte(sampleConfig), 0o600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
