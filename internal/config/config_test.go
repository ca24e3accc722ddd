package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("SCRIBE_SEARCH_API_KEY", "")
	t.Setenv("SCRIBE_SEARCH_CSE_ID", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "scribe", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if want := filepath.Join(tempHome, ".config", "beets", "library.db"); cfg.Catalog.Path != want {
		t.Fatalf("unexpected catalog path: got %q want %q", cfg.Catalog.Path, want)
	}
	if want := filepath.Join(tempHome, ".cache", "scribe", "works.json"); cfg.Cache.Path != want {
		t.Fatalf("unexpected cache path: got %q want %q", cfg.Cache.Path, want)
	}
	if cfg.Search.ResultLimit != 5 {
		t.Fatalf("expected default result limit 5, got %d", cfg.Search.ResultLimit)
	}
	if len(cfg.Search.Credentials) != 0 {
		t.Fatalf("expected no credentials, got %d", len(cfg.Search.Credentials))
	}
}

func TestLoadEnvCredentialFallback(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SCRIBE_SEARCH_API_KEY", "env-key")
	t.Setenv("SCRIBE_SEARCH_CSE_ID", "env-cx")

	path := writeConfig(t, "[search]\nresult_limit = 3\n")
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if len(cfg.Search.Credentials) != 1 {
		t.Fatalf("expected one env credential, got %d", len(cfg.Search.Credentials))
	}
	cred := cfg.Search.Credentials[0]
	if cred.APIKey != "env-key" || cred.CSEID != "env-cx" || cred.Name != "env" {
		t.Fatalf("unexpected env credential: %+v", cred)
	}
	if cfg.Search.ResultLimit != 3 {
		t.Fatalf("expected result limit from file, got %d", cfg.Search.ResultLimit)
	}
}

func TestLoadKeepsCredentialOrder(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, `
[[search.credentials]]
name = "a"
api_key = "k1"
cse_id = "c1"

[[search.credentials]]
api_key = " k2 "
cse_id = "c2"
`)
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.Search.Credentials) != 2 {
		t.Fatalf("expected two credentials, got %d", len(cfg.Search.Credentials))
	}
	if cfg.Search.Credentials[0].Name != "a" || cfg.Search.Credentials[1].APIKey != "k2" {
		t.Fatalf("unexpected credentials: %+v", cfg.Search.Credentials)
	}
}

func TestLoadRejectsIncompleteCredential(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, "[[search.credentials]]\nname = \"broken\"\napi_key = \"k\"\n")
	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "cse_id") {
		t.Fatalf("expected cse_id in error, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"result limit too large", func(c *config.Config) { c.Search.ResultLimit = 11 }},
		{"relative base url", func(c *config.Config) { c.Search.BaseURL = "customsearch/v1" }},
		{"unknown log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"unknown log level", func(c *config.Config) { c.Logging.Level = "loud" }},
		{"negative rate", func(c *config.Config) { c.Scraper.RequestsPerMinute = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, "[search]\nresults = 3\n")
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected parse error for unknown key")
	}
}

func TestCreateSampleLoads(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SCRIBE_SEARCH_API_KEY", "")
	t.Setenv("SCRIBE_SEARCH_CSE_ID", "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Search.Site != "imslp.org" {
		t.Fatalf("unexpected site %q", cfg.Search.Site)
	}
}
