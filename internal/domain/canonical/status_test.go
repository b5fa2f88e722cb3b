package canonical

import (
	"testing"
)

func TestParseGameStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want GameStatus
	}{
		{"FT", GameFinal},
		{"finished", GameFinal},
		{"Final", GameFinal},
		{"forfeit", GameFinal},
		{"In Progress", GameLive},
		{"HALFTIME", GameLive},
		{"not started", GameScheduled},
		{"Scheduled", GameScheduled},
		{"postponed", GamePostponed},
		{"Suspended", GamePostponed},
		{"canceled", GameCancelled},
		{"Abandoned", GameCancelled},
	}
	for _, tc := range cases {
		got, ok := ParseGameStatus(tc.raw)
		if !ok || got != tc.want {
			t.Fatalf("ParseGameStatus(%q) = %s ok=%v, want %s", tc.raw, got, ok, tc.want)
		}
	}

	for _, raw := range []string{"", "weird", "maybe later"} {
		if got, ok := ParseGameStatus(raw); ok {
			t.Fatalf("ParseGameStatus(%q) = %s, want no value", raw, got)
		}
	}
}
