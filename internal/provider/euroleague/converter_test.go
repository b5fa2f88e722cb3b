package euroleague

import (
	"testing"

	"github.com/courtdata/courtsync/internal/domain/canonical"
	"github.com/courtdata/courtsync/internal/provider"
)

func TestConvertPlayer(t *testing.T) {
	t.Parallel()

	c := New()
	raw := provider.Record{
		"code":      "P001234",
		"name":      "WILBEKIN, SCOTTIE",
		"position":  "Guard",
		"height":    float64(185),
		"birthdate": "1993-05-05",
		"country":   "United States",
		"dorsal":    float64(1),
	}

	got, err := c.ConvertPlayer(raw)
	if err != nil {
		t.Fatalf("ConvertPlayer error: %v", err)
	}
	if got.ExternalID != "P001234" || got.Source != SourceName {
		t.Fatalf("identity = %s/%s", got.Source, got.ExternalID)
	}
	if got.FirstName != "Scottie" || got.LastName != "Wilbekin" {
		t.Fatalf("name = %q %q", got.FirstName, got.LastName)
	}
	if len(got.Positions) != 1 || got.Positions[0] != canonical.PositionGuard {
		t.Fatalf("positions = %v", got.Positions)
	}
	if got.Height == nil || got.Height.Cm() != 185 {
		t.Fatalf("height = %v", got.Height)
	}
	if got.BirthDate == nil || got.BirthDate.Year() != 1993 {
		t.Fatalf("birthdate = %v", got.BirthDate)
	}
	if got.Nationality == nil || *got.Nationality != "USA" {
		t.Fatalf("nationality = %v", got.Nationality)
	}
	if got.JerseyNumber == nil || *got.JerseyNumber != 1 {
		t.Fatalf("jersey = %v", got.JerseyNumber)
	}
}

func TestConvertPlayer_DegradesOptionalFields(t *testing.T) {
	t.Parallel()

	c := New()
	got, err := c.ConvertPlayer(provider.Record{
		"code":      "P009",
		"name":      "DOE, JOHN",
		"height":    "??",
		"birthdate": "soon",
		"country":   "Atlantis",
		"position":  "waterboy",
	})
	if err != nil {
		t.Fatalf("ConvertPlayer error: %v", err)
	}
	if got.Height != nil || got.BirthDate != nil || got.Nationality != nil {
		t.Fatalf("optional fields should be absent: %+v", got)
	}
	if len(got.Positions) != 0 {
		t.Fatalf("positions = %v, want empty", got.Positions)
	}
}

func TestConvertPlayer_MissingCode(t *testing.T) {
	t.Parallel()

	_, err := New().ConvertPlayer(provider.Record{"name": "DOE, JOHN"})
	if err == nil {
		t.Fatal("expected conversion error")
	}
	if !provider.IsConversion(err) {
		t.Fatalf("error is not a conversion error: %v", err)
	}
}

func TestMapPositions_Compound(t *testing.T) {
	t.Parallel()

	c := New()
	got := c.MapPositions("G-F")
	if len(got) != 2 || got[0] != canonical.PositionGuard || got[1] != canonical.PositionForward {
		t.Fatalf("MapPositions(G-F) = %v", got)
	}
	if got := c.MapPositions("mascot"); len(got) != 0 {
		t.Fatalf("MapPositions(mascot) = %v, want empty", got)
	}
}

func TestConvertGame_SeasonFromGameCode(t *testing.T) {
	t.Parallel()

	c := New()
	raw := provider.Record{
		"gamecode":    "E2024_1",
		"local_club":  "MAD",
		"road_club":   "TEL",
		"date":        "2024-10-03",
		"score_local": float64(89),
		"score_road":  float64(82),
	}
	got, err := c.ConvertGame(raw)
	if err != nil {
		t.Fatalf("ConvertGame error: %v", err)
	}
	if got.SeasonExternalID != "E2024" {
		t.Fatalf("season = %q, want E2024", got.SeasonExternalID)
	}
	if got.Status != canonical.GameFinal {
		t.Fatalf("status = %s, want FINAL (inferred from scores)", got.Status)
	}
	if got.HomeScore == nil || *got.HomeScore != 89 || got.AwayScore == nil || *got.AwayScore != 82 {
		t.Fatalf("scores = %v/%v", got.HomeScore, got.AwayScore)
	}
}

func TestConvertGame_ScheduledDropsScores(t *testing.T) {
	t.Parallel()

	got, err := New().ConvertGame(provider.Record{
		"gamecode":   "E2024_200",
		"local_club": "MAD",
		"road_club":  "TEL",
		"date":       "2024-12-24",
		"status":     "postponed",
		"score_local": float64(0),
		"score_road":  float64(0),
	})
	if err != nil {
		t.Fatalf("ConvertGame error: %v", err)
	}
	if got.Status != canonical.GamePostponed {
		t.Fatalf("status = %s", got.Status)
	}
	if got.HomeScore != nil || got.AwayScore != nil {
		t.Fatal("postponed game must not carry scores")
	}
}

func TestConvertGame_RequiredFields(t *testing.T) {
	t.Parallel()

	c := New()
	cases := []provider.Record{
		{"local_club": "MAD", "road_club": "TEL", "date": "2024-10-03"},
		{"gamecode": "E2024_1", "road_club": "TEL", "date": "2024-10-03"},
		{"gamecode": "E2024_1", "local_club": "MAD", "road_club": "TEL", "date": "whenever"},
	}
	for i, raw := range cases {
		if _, err := c.ConvertGame(raw); !provider.IsConversion(err) {
			t.Fatalf("case %d: expected conversion error, got %v", i, err)
		}
	}
}

func TestParseMinutesToSeconds(t *testing.T) {
	t.Parallel()

	c := New()
	cases := []struct {
		raw  any
		want int
	}{
		{"25:30", 1530},
		{"0:45", 45},
		{25, 1500},
		{float64(25), 1500},
		{"DNP", 0},
		{"dnp", 0},
		{"", 0},
		{nil, 0},
		{"25:99", 0},
	}
	for _, tc := range cases {
		if got := c.ParseMinutesToSeconds(tc.raw); got != tc.want {
			t.Fatalf("ParseMinutesToSeconds(%v) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestConvertPlayerStats_FoldsSplits(t *testing.T) {
	t.Parallel()

	got, err := New().ConvertPlayerStats(provider.Record{
		"player_code":            "P001234",
		"team_code":              "TEL",
		"gamecode":               "E2024_1",
		"minutes":                "31:12",
		"points":                 float64(22),
		"fieldgoals_made_2":      float64(5),
		"fieldgoals_attempted_2": float64(9),
		"fieldgoals_made_3":      float64(3),
		"fieldgoals_attempted_3": float64(7),
		"freethrows_made":        float64(3),
		"freethrows_attempted":   float64(4),
		"offensive_rebounds":     float64(1),
		"defensive_rebounds":     float64(4),
		"assistances":            float64(6),
	})
	if err != nil {
		t.Fatalf("ConvertPlayerStats error: %v", err)
	}
	if got.SecondsPlayed != 31*60+12 {
		t.Fatalf("seconds = %d", got.SecondsPlayed)
	}
	if got.FieldGoalsMade != 8 || got.FieldGoalsAtt != 16 {
		t.Fatalf("field goals = %d/%d, want 8/16", got.FieldGoalsMade, got.FieldGoalsAtt)
	}
	if got.TotalRebounds() != 5 {
		t.Fatalf("rebounds = %d", got.TotalRebounds())
	}
}

func TestConvertPBPEvent(t *testing.T) {
	t.Parallel()

	c := New()
	got, err := c.ConvertPBPEvent(provider.Record{
		"gamecode":     "E2024_1",
		"numberofplay": float64(42),
		"period":       float64(2),
		"markertime":   "7:31",
		"playtype":     "3FGM",
		"player_code":  "P001234",
		"team_code":    "TEL",
		"coord_x":      float64(-120.5),
		"coord_y":      float64(410),
	})
	if err != nil {
		t.Fatalf("ConvertPBPEvent error: %v", err)
	}
	if got == nil {
		t.Fatal("event should not be skipped")
	}
	if got.Type != canonical.EventShot || got.ShotType == nil || *got.ShotType != canonical.ShotThreePointer {
		t.Fatalf("type = %s subtype = %v", got.Type, got.ShotType)
	}
	if got.Success == nil || !*got.Success {
		t.Fatal("3FGM should be a made shot")
	}
	if got.ClockSeconds != 7*60+31 {
		t.Fatalf("clock = %d", got.ClockSeconds)
	}
	if got.ReboundType != nil || got.FoulType != nil || got.TurnoverType != nil {
		t.Fatal("only the shot subtype should be set")
	}

	// Untracked bookkeeping code: skip, not an error.
	skipped, err := c.ConvertPBPEvent(provider.Record{
		"gamecode": "E2024_1",
		"playtype": "AG",
	})
	if err != nil {
		t.Fatalf("ConvertPBPEvent(AG) error: %v", err)
	}
	if skipped != nil {
		t.Fatalf("AG should be skipped, got %+v", skipped)
	}
}

func TestConvertSeason(t *testing.T) {
	t.Parallel()

	c := New()
	got, err := c.ConvertSeason(provider.Record{"season_code": "E2024"})
	if err != nil {
		t.Fatalf("ConvertSeason error: %v", err)
	}
	if got.Name != "2024-25" {
		t.Fatalf("name = %s, want synthesized 2024-25", got.Name)
	}

	named, err := c.ConvertSeason(provider.Record{
		"season_code": "E2023",
		"name":        "2023-24",
		"is_current":  false,
	})
	if err != nil {
		t.Fatalf("ConvertSeason error: %v", err)
	}
	if named.Name != "2023-24" {
		t.Fatalf("name = %s", named.Name)
	}

	if _, err := c.ConvertSeason(provider.Record{}); !provider.IsConversion(err) {
		t.Fatalf("expected conversion error, got %v", err)
	}
}
