package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/config"
	"scribe/internal/logging"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Dir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg, "run-1")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello")

	content := readLog(t, filepath.Join(cfg.Logging.Dir, "scribe.log"))
	if !strings.Contains(content, "hello") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestConsoleLoggerHeaderAndFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger = logging.NewComponentLogger(logger, "dispatcher")
	logger.Info("search complete",
		logging.String(logging.FieldWork, "Rossini: Il barbiere"),
		logging.Int("attempts", 2),
		logging.String("query", "hidden at info"),
	)

	content := readLog(t, logPath)
	if !strings.Contains(content, "INFO [dispatcher] Rossini: Il barbiere – search complete") {
		t.Fatalf("unexpected header: %q", content)
	}
	if !strings.Contains(content, "    - attempts: 2") {
		t.Fatalf("expected attempts field, got %q", content)
	}
	if strings.Contains(content, "hidden at info") {
		t.Fatalf("expected debug-only key to be hidden, got %q", content)
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information at info level, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debug.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "debug",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debug("tracing", logging.String("query", "shown at debug"))

	content := readLog(t, logPath)
	if !strings.Contains(content, "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
	if !strings.Contains(content, "shown at debug") {
		t.Fatalf("expected debug-only key at debug level, got %q", content)
	}
}

func TestJSONLoggerAddsRunID(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{
		Format:      "json",
		Level:       "info",
		OutputPaths: []string{logPath},
		RunID:       "abc123",
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("rate limited", logging.String(logging.FieldCredential, "primary"))

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &entry); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if entry[logging.FieldRunID] != "abc123" {
		t.Fatalf("expected run_id, got %v", entry)
	}
	if entry["level"] != "warn" {
		t.Fatalf("expected lowercase level, got %v", entry["level"])
	}
	if entry[logging.FieldCredential] != "primary" {
		t.Fatalf("expected credential attribute, got %v", entry)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "scrape failed", "scrape_failed")

	content := readLog(t, logPath)
	for _, key := range []string{logging.FieldEventType, logging.FieldErrorHint, logging.FieldImpact} {
		if !strings.Contains(content, `"`+key+`"`) {
			t.Fatalf("expected %s in %q", key, content)
		}
	}
}
