package postgres

import (
	"testing"

	"github.com/courtdata/courtsync/internal/domain/canonical"
)

func TestEncodeExternalIDs(t *testing.T) {
	t.Run("empty map renders empty object", func(t *testing.T) {
		got, err := encodeExternalIDs(nil)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if got != "{}" {
			t.Fatalf("expected {}, got %s", got)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		encoded, err := encodeExternalIDs(map[string]string{"euroleague": "P001", "winnerleague": "42"})
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		decoded, err := decodeExternalIDs([]byte(encoded))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if decoded["euroleague"] != "P001" || decoded["winnerleague"] != "42" {
			t.Fatalf("round trip lost entries: %v", decoded)
		}
	})

	t.Run("decode empty column", func(t *testing.T) {
		decoded, err := decodeExternalIDs(nil)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(decoded) != 0 {
			t.Fatalf("expected empty map, got %v", decoded)
		}
	})
}

func TestEncodePositions(t *testing.T) {
	got := encodePositions([]canonical.Position{canonical.PositionGuard, canonical.PositionForward})
	if got != "G,F" {
		t.Fatalf("expected G,F got %s", got)
	}

	back := decodePositions(got)
	if len(back) != 2 || back[0] != canonical.PositionGuard || back[1] != canonical.PositionForward {
		t.Fatalf("round trip lost positions: %v", back)
	}

	if decodePositions("") != nil {
		t.Fatal("empty column must decode to nil")
	}
}
