package canonical

import (
	"reflect"
	"testing"
)

func TestParsePosition(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want Position
	}{
		{"PG", PositionPointGuard},
		{"pg", PositionPointGuard},
		{"Point Guard", PositionPointGuard},
		{"Shooting Guard", PositionShootingGuard},
		{"centre", PositionCenter},
		{"C", PositionCenter},
		{"guard", PositionGuard},
		{"Forward", PositionForward},
		{"סנטר", PositionCenter},
		{"רכז", PositionPointGuard},
	}
	for _, tc := range cases {
		got, ok := ParsePosition(tc.raw)
		if !ok || got != tc.want {
			t.Fatalf("ParsePosition(%q) = %s ok=%v, want %s", tc.raw, got, ok, tc.want)
		}
	}

	for _, raw := range []string{"", "libero", "QB"} {
		if got, ok := ParsePosition(raw); ok {
			t.Fatalf("ParsePosition(%q) = %s, want no value", raw, got)
		}
	}
}

func TestParsePositions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want []Position
	}{
		{"PG/PG", []Position{PositionPointGuard}},
		{"SF/PG", []Position{PositionSmallForward, PositionPointGuard}},
		{"G-F", []Position{PositionGuard, PositionForward}},
		{"PG, SG", []Position{PositionPointGuard, PositionShootingGuard}},
		{"Guard/Libero", []Position{PositionGuard}},
		{"Libero/Sweeper", []Position{}},
		{"", []Position{}},
	}
	for _, tc := range cases {
		got := ParsePositions(tc.raw)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("ParsePositions(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}
