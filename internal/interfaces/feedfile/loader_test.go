package feedfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/courtdata/courtsync/internal/usecase"
)

func writeFeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write feed: %v", err)
	}
	return path
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	loader := NewLoader()
	path := writeFeed(t, `{
		"source": "euroleague",
		"teams": [{"code": "MAD", "name": "Real Madrid"}],
		"rosters": {"MAD": [{"code": "P001", "name": "CAMPAZZO, FACUNDO"}]},
		"games": [{"gamecode": "E2024_1"}]
	}`)

	source, feed, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load feed: %v", err)
	}
	if source != "euroleague" {
		t.Fatalf("unexpected source: %q", source)
	}
	if len(feed.Teams) != 1 || len(feed.Games) != 1 {
		t.Fatalf("unexpected feed shape: %+v", feed)
	}
	if len(feed.Rosters["MAD"]) != 1 {
		t.Fatalf("unexpected roster: %+v", feed.Rosters)
	}
}

func TestLoader_MissingSource(t *testing.T) {
	t.Parallel()

	loader := NewLoader()
	path := writeFeed(t, `{"teams": []}`)

	if _, _, err := loader.Load(context.Background(), path); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLoader_MalformedJSON(t *testing.T) {
	t.Parallel()

	loader := NewLoader()
	path := writeFeed(t, `{"source": "euroleague",`)

	if _, _, err := loader.Load(context.Background(), path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLoader_MissingFile(t *testing.T) {
	t.Parallel()

	loader := NewLoader()
	if _, _, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected read error")
	}
}
