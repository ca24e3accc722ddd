package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"scribe/internal/catalog"
	"scribe/internal/config"
	"scribe/internal/testsupport"
)

const massPage = `<html><body><span id="General_Information"></span><table>
<tr><th>First Publication</th><td>1845 - Zürich: Nägeli</td></tr>
<tr><th>Genre Categories</th><td><a>Masses</a>; <a>Sacred works</a></td></tr>
<tr><th>Piece Style</th><td><a>Baroque</a></td></tr>
</table></body></html>`

type cliTestEnv struct {
	cfg        *config.Config
	store      *catalog.Store
	server     *httptest.Server
	configPath string
	searches   atomic.Int32
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	env := &cliTestEnv{}
	mux := http.NewServeMux()
	mux.HandleFunc("/customsearch/v1", func(w http.ResponseWriter, r *http.Request) {
		env.searches.Add(1)
		_, _ = fmt.Fprintf(w, `{"items":[{"link":%q}]}`, env.server.URL+"/wiki/Mass_in_B_minor")
	})
	mux.HandleFunc("/wiki/Mass_in_B_minor", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(massPage))
	})
	env.server = httptest.NewServer(mux)
	t.Cleanup(env.server.Close)

	env.cfg = testsupport.NewConfig(t, testsupport.WithSearchBaseURL(env.server.URL+"/customsearch/v1"))
	env.configPath = filepath.Join(testsupport.BaseDir(env.cfg), "config.toml")
	writeTestConfig(t, env.configPath, env.cfg)

	env.store = testsupport.MustOpenCatalog(t, env.cfg.Catalog.Path)
	testsupport.InsertItems(t, env.store,
		testsupport.Track("Bach", "Bach, Johann Sebastian", "Mass in B minor", "Kyrie", "Mass in B minor: Kyrie"),
		testsupport.Track("Bach", "Bach, Johann Sebastian", "Mass in B minor", "Gloria", "Mass in B minor: Gloria"),
		testsupport.Track("Unknown", "", "Compilation", "Interlude", ""),
	)
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	var b strings.Builder
	fmt.Fprintf(&b, "[catalog]\npath = %q\nlock = true\n\n", cfg.Catalog.Path)
	fmt.Fprintf(&b, "[search]\nbase_url = %q\n\n", cfg.Search.BaseURL)
	for _, cred := range cfg.Search.Credentials {
		fmt.Fprintf(&b, "[[search.credentials]]\nname = %q\napi_key = %q\ncse_id = %q\n\n", cred.Name, cred.APIKey, cred.CSEID)
	}
	fmt.Fprintf(&b, "[scraper]\nrequests_per_minute = %d\n\n", cfg.Scraper.RequestsPerMinute)
	fmt.Fprintf(&b, "[cache]\nenabled = %t\npath = %q\n\n", cfg.Cache.Enabled, cfg.Cache.Path)
	b.WriteString("[logging]\nlevel = \"error\"\n")
	testsupport.WriteFile(t, path, b.String())
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\noutput:\n%s", needle, haystack)
	}
}

func requireNotContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Fatalf("expected output not to contain %q\noutput:\n%s", needle, haystack)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
