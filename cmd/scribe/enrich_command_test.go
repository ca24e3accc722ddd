package main

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"scribe/internal/search"
)

func TestLogCredentialsReportsRateLimited(t *testing.T) {
	pool, err := search.NewPool([]search.Credential{
		{Name: "spent", APIKey: "k1", CollectionID: "cx"},
		{Name: "fresh", APIKey: "k2", CollectionID: "cx"},
	})
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logCredentials(logger, pool)
	if strings.Contains(buf.String(), "search_credentials_exhausted") {
		t.Fatalf("no credential was rate limited yet:\n%s", buf.String())
	}

	buf.Reset()
	pool.RecordStatus(0, http.StatusTooManyRequests)
	logCredentials(logger, pool)
	out := buf.String()
	requireContains(t, out, "event_type=search_credentials_exhausted")
	requireContains(t, out, "rate_limited=1")
	requireContains(t, out, "credentials=2")
	requireContains(t, out, "credential=spent last_status=429")
}
