package enrich_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"scribe/internal/enrich"
)

func TestPrompterReadsURL(t *testing.T) {
	var out bytes.Buffer
	p := enrich.NewPrompter(strings.NewReader("  https://imslp.org/wiki/Requiem  \n\n"), &out, "imslp.org")

	link, err := p.Search(context.Background(), "Mozart Requiem")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if link != "https://imslp.org/wiki/Requiem" {
		t.Fatalf("unexpected link %q", link)
	}
	if !strings.Contains(out.String(), "https://www.google.com/search?q=site%3Aimslp.org+Mozart+Requiem") {
		t.Fatalf("unexpected prompt:\n%s", out.String())
	}

	// A blank answer skips the work.
	link, err = p.Search(context.Background(), "Unknown")
	if err != nil || link != "" {
		t.Fatalf("expected skip, got %q %v", link, err)
	}
}

func TestPrompterClosedInput(t *testing.T) {
	p := enrich.NewPrompter(strings.NewReader(""), &bytes.Buffer{}, "")
	if _, err := p.Search(context.Background(), "q"); err == nil {
		t.Fatal("expected error when input is closed")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Search(ctx, "q"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
