package usecase

import (
	"context"
	"testing"

	"github.com/courtdata/courtsync/internal/domain/canonical"
	"github.com/courtdata/courtsync/internal/infrastructure/repository/memory"
	"github.com/courtdata/courtsync/internal/platform/id"
	"github.com/courtdata/courtsync/internal/platform/logging"
	"github.com/courtdata/courtsync/internal/provider"
	"github.com/courtdata/courtsync/internal/provider/euroleague"
)

type pipelineFixture struct {
	svc        *PipelineService
	tracker    *SyncTrackerService
	playerRepo *memory.PlayerRepository
	teamRepo   *memory.TeamRepository
	gameRepo   *memory.GameRepository
	seasonRepo *memory.SeasonRepository
	statsRepo  *memory.StatsRepository
	pbpRepo    *memory.PBPRepository
	rawRepo    *memory.RawDataRepository
}

func newPipelineFixture(t *testing.T) pipelineFixture {
	t.Helper()
	playerRepo := memory.NewPlayerRepository()
	teamRepo := memory.NewTeamRepository()
	statsRepo := memory.NewStatsRepository()
	pbpRepo := memory.NewPBPRepository()
	gameRepo := memory.NewGameRepository(statsRepo, pbpRepo)
	seasonRepo := memory.NewSeasonRepository()
	rawRepo := memory.NewRawDataRepository()

	gen := id.NewRandomGenerator()
	logger := logging.NewNop()
	resolver := NewResolverService(playerRepo, teamRepo, gen, logger)
	tracker := NewSyncTrackerService(gameRepo, logger)

	return pipelineFixture{
		svc: NewPipelineService(
			resolver, tracker,
			teamRepo, gameRepo, seasonRepo, statsRepo, pbpRepo, rawRepo,
			gen, logger,
		),
		tracker:    tracker,
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		gameRepo:   gameRepo,
		seasonRepo: seasonRepo,
		statsRepo:  statsRepo,
		pbpRepo:    pbpRepo,
		rawRepo:    rawRepo,
	}
}

func euroleagueFeed() Feed {
	return Feed{
		Seasons: []provider.Record{
			{"season_code": "E2024", "year": 2024},
		},
		Teams: []provider.Record{
			{"code": "MAD", "name": "Real Madrid", "abbreviated_name": "RMB", "country": "Spain"},
			{"code": "PAN", "name": "Panathinaikos", "abbreviated_name": "PAO", "country": "Greece"},
		},
		Rosters: map[string][]provider.Record{
			"MAD": {
				{"code": "P001", "name": "CAMPAZZO, FACUNDO", "position": "point guard", "height": "1.79"},
				{"code": "P002", "name": "TAVARES, WALTER", "position": "center", "height": "221 cm"},
			},
			"PAN": {
				{"code": "P003", "name": "SLOUKAS, KOSTAS", "position": "guard", "height": "190"},
			},
		},
		Games: []provider.Record{
			{
				"gamecode":    "E2024_1",
				"local_club":  "MAD",
				"road_club":   "PAN",
				"date":        "2024-10-03T20:30:00",
				"score_local": 82,
				"score_road":  79,
				"stadium":     "WiZink Center",
			},
		},
		BoxScores: map[string][]provider.Record{
			"E2024_1": {
				{
					"gamecode": "E2024_1", "player_code": "P001", "team_code": "MAD",
					"minutes": "28:30", "points": 15,
					"fieldgoals_made_2": 3, "fieldgoals_attempted_2": 7,
					"fieldgoals_made_3": 2, "fieldgoals_attempted_3": 5,
					"freethrows_made": 3, "freethrows_attempted": 4,
					"assistances": 8, "turnovers": 2, "steals": 1,
				},
				{
					"gamecode": "E2024_1", "player_code": "P003", "team_code": "PAN",
					"minutes": "DNP",
				},
			},
		},
		Events: map[string][]provider.Record{
			"E2024_1": {
				{"gamecode": "E2024_1", "playtype": "3FGM", "player_code": "P001", "team_code": "MAD", "period": 1, "markertime": "7:42", "numberofplay": 12},
				{"gamecode": "E2024_1", "playtype": "AG", "period": 1, "numberofplay": 13},
				{"gamecode": "E2024_1", "playtype": "D", "player_code": "P002", "team_code": "MAD", "period": 1, "markertime": "7:30", "numberofplay": 14},
			},
		},
	}
}

func TestPipelineService_Ingest_FullFeed(t *testing.T) {
	t.Parallel()
	fix := newPipelineFixture(t)
	ctx := context.Background()
	conv := euroleague.New()

	result, err := fix.svc.Ingest(ctx, conv, PipelineInput{Feed: euroleagueFeed()})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	if result.SeasonCount != 1 || result.TeamCount != 2 || result.PlayerCount != 3 {
		t.Fatalf("counts = %+v", result)
	}
	if result.SuccessCount != 1 || result.FailedCount != 0 || result.SkippedCount != 0 {
		t.Fatalf("task counts = %+v", result)
	}

	stored, err := fix.tracker.GetByExternalID(ctx, "euroleague", "E2024_1")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if stored.Status != canonical.GameFinal {
		t.Fatalf("status = %s, want FINAL", stored.Status)
	}
	if stored.HomeScore == nil || *stored.HomeScore != 82 {
		t.Fatalf("home score = %v, want 82", stored.HomeScore)
	}
	if stored.Venue != "WiZink Center" {
		t.Fatalf("venue = %q", stored.Venue)
	}

	homeTeam, err := fix.teamRepo.GetByExternalID(ctx, "euroleague", "MAD")
	if err != nil || homeTeam == nil {
		t.Fatalf("home team: %v %v", homeTeam, err)
	}
	if stored.HomeTeamID != homeTeam.ID {
		t.Fatalf("game home team = %q, want %q", stored.HomeTeamID, homeTeam.ID)
	}

	season, err := fix.seasonRepo.GetByExternalID(ctx, "euroleague", "E2024")
	if err != nil || season == nil {
		t.Fatalf("season: %v %v", season, err)
	}
	if string(season.Name) != "2024-25" {
		t.Fatalf("season name = %q, want 2024-25", season.Name)
	}
	if stored.SeasonID != season.ID {
		t.Fatalf("game season = %q, want %q", stored.SeasonID, season.ID)
	}

	lines, err := fix.statsRepo.ListByGame(ctx, stored.ID)
	if err != nil {
		t.Fatalf("list stats: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d stat lines, want 2", len(lines))
	}
	campazzo, err := fix.playerRepo.GetByExternalID(ctx, "euroleague", "P001")
	if err != nil || campazzo == nil {
		t.Fatalf("player P001: %v %v", campazzo, err)
	}
	var campazzoLine bool
	for _, line := range lines {
		if line.PlayerID != campazzo.ID {
			continue
		}
		campazzoLine = true
		if line.SecondsPlayed != 28*60+30 {
			t.Fatalf("seconds played = %d, want 1710", line.SecondsPlayed)
		}
		if line.FieldGoalsMade != 5 || line.FieldGoalsAtt != 12 {
			t.Fatalf("field goals = %d/%d, want 5/12", line.FieldGoalsMade, line.FieldGoalsAtt)
		}
		if line.TotalRebounds() != 0 {
			t.Fatalf("rebounds = %d, want 0", line.TotalRebounds())
		}
	}
	if !campazzoLine {
		t.Fatal("no stat line for P001")
	}

	// Two tracked events; the "AG" bookkeeping code is dropped.
	events, err := fix.pbpRepo.ListByGame(ctx, stored.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	for _, ev := range events {
		if ev.Type == canonical.EventShot {
			if ev.ClockSeconds != 7*60+42 {
				t.Fatalf("shot clock = %d, want 462", ev.ClockSeconds)
			}
			if ev.PlayerID != campazzo.ID {
				t.Fatalf("shot player = %q, want %q", ev.PlayerID, campazzo.ID)
			}
		}
	}

	// One game payload, two box-score payloads, two event payloads.
	if got := len(fix.rawRepo.List()); got != 5 {
		t.Fatalf("got %d raw payloads, want 5", got)
	}
}

func TestPipelineService_Ingest_BoxScorePointsSumToGameScore(t *testing.T) {
	t.Parallel()
	fix := newPipelineFixture(t)
	ctx := context.Background()
	conv := euroleague.New()

	feed := Feed{
		Teams: []provider.Record{
			{"code": "MAD", "name": "Real Madrid", "abbreviated_name": "RMB"},
			{"code": "PAN", "name": "Panathinaikos", "abbreviated_name": "PAO"},
		},
		Rosters: map[string][]provider.Record{
			"MAD": {
				{"code": "P101", "name": "HEZONJA, MARIO"},
				{"code": "P102", "name": "MUSA, DZANAN"},
				{"code": "P103", "name": "LLULL, SERGIO"},
			},
			"PAN": {
				{"code": "P201", "name": "NUNN, KENDRICK"},
				{"code": "P202", "name": "MITOGLOU, KONSTANTINOS"},
			},
		},
		Games: []provider.Record{
			{
				"gamecode":    "E2024_7",
				"local_club":  "MAD",
				"road_club":   "PAN",
				"date":        "2024-11-12T20:45:00",
				"score_local": 82,
				"score_road":  79,
			},
		},
		BoxScores: map[string][]provider.Record{
			"E2024_7": {
				{"gamecode": "E2024_7", "player_code": "P101", "team_code": "MAD", "minutes": "31:10", "points": 35},
				{"gamecode": "E2024_7", "player_code": "P102", "team_code": "MAD", "minutes": "28:00", "points": 27},
				{"gamecode": "E2024_7", "player_code": "P103", "team_code": "MAD", "minutes": "19:45", "points": 20},
				{"gamecode": "E2024_7", "player_code": "P201", "team_code": "PAN", "minutes": "36:20", "points": 44},
				{"gamecode": "E2024_7", "player_code": "P202", "team_code": "PAN", "minutes": "30:00", "points": 35},
			},
		},
	}

	result, err := fix.svc.Ingest(ctx, conv, PipelineInput{Feed: feed})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if result.SuccessCount != 1 {
		t.Fatalf("success = %d, want 1", result.SuccessCount)
	}

	stored, err := fix.tracker.GetByExternalID(ctx, "euroleague", "E2024_7")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	lines, err := fix.statsRepo.ListByGame(ctx, stored.ID)
	if err != nil {
		t.Fatalf("list stats: %v", err)
	}
	if len(lines) != 5 {
		t.Fatalf("got %d stat lines, want 5", len(lines))
	}

	pointsByTeam := make(map[string]int, 2)
	for _, line := range lines {
		pointsByTeam[line.TeamID] += line.Points
	}
	if stored.HomeScore == nil || stored.AwayScore == nil {
		t.Fatalf("scores = %v / %v, want both recorded", stored.HomeScore, stored.AwayScore)
	}
	if got := pointsByTeam[stored.HomeTeamID]; got != *stored.HomeScore {
		t.Fatalf("home box score sums to %d, recorded score is %d", got, *stored.HomeScore)
	}
	if got := pointsByTeam[stored.AwayTeamID]; got != *stored.AwayScore {
		t.Fatalf("away box score sums to %d, recorded score is %d", got, *stored.AwayScore)
	}
}

func TestPipelineService_Ingest_SecondRunSkipsSyncedGame(t *testing.T) {
	t.Parallel()
	fix := newPipelineFixture(t)
	ctx := context.Background()
	conv := euroleague.New()

	if _, err := fix.svc.Ingest(ctx, conv, PipelineInput{Feed: euroleagueFeed()}); err != nil {
		t.Fatalf("first ingest: %v", err)
	}

	result, err := fix.svc.Ingest(ctx, conv, PipelineInput{Feed: euroleagueFeed()})
	if err != nil {
		t.Fatalf("second ingest: %v", err)
	}
	if result.SkippedCount != 1 || result.SuccessCount != 0 {
		t.Fatalf("second run = %+v, want 1 skipped", result)
	}

	// Re-running the roster must not duplicate players.
	all, err := fix.playerRepo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d players after re-run, want 3", len(all))
	}
}

func TestPipelineService_Ingest_DuplicateGameRecordIngestedOnce(t *testing.T) {
	t.Parallel()
	fix := newPipelineFixture(t)
	ctx := context.Background()
	conv := euroleague.New()

	feed := euroleagueFeed()
	feed.Games = append(feed.Games, feed.Games[0])

	result, err := fix.svc.Ingest(ctx, conv, PipelineInput{Feed: feed})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if result.GameCount != 1 {
		t.Fatalf("games = %d, want 1", result.GameCount)
	}
	if result.SuccessCount != 1 || result.SkippedCount != 1 || result.FailedCount != 0 {
		t.Fatalf("task counts = %+v, want 1 success and 1 skipped", result)
	}

	// One game payload, two box-score payloads, two event payloads; a second
	// stored game would have doubled this.
	if got := len(fix.rawRepo.List()); got != 5 {
		t.Fatalf("got %d raw payloads, want 5", got)
	}
}

func TestPipelineService_Ingest_SeasonRerunFillsMissingDates(t *testing.T) {
	t.Parallel()
	fix := newPipelineFixture(t)
	ctx := context.Background()
	conv := euroleague.New()

	if _, err := fix.svc.Ingest(ctx, conv, PipelineInput{Feed: Feed{
		Seasons: []provider.Record{{"season_code": "E2024", "year": 2024}},
	}}); err != nil {
		t.Fatalf("first ingest: %v", err)
	}

	if _, err := fix.svc.Ingest(ctx, conv, PipelineInput{Feed: Feed{
		Seasons: []provider.Record{{
			"season_code": "E2024",
			"year":        2024,
			"start_date":  "2024-10-01",
			"end_date":    "2025-05-25",
			"is_current":  true,
		}},
	}}); err != nil {
		t.Fatalf("second ingest: %v", err)
	}

	stored, err := fix.seasonRepo.GetByExternalID(ctx, "euroleague", "E2024")
	if err != nil || stored == nil {
		t.Fatalf("season: %v %v", stored, err)
	}
	if stored.StartDate == nil || stored.StartDate.Format("2006-01-02") != "2024-10-01" {
		t.Fatalf("start date = %v, want 2024-10-01", stored.StartDate)
	}
	if stored.EndDate == nil || stored.EndDate.Format("2006-01-02") != "2025-05-25" {
		t.Fatalf("end date = %v, want 2025-05-25", stored.EndDate)
	}
	if !stored.IsCurrent {
		t.Fatal("season not marked current after re-run")
	}
}

func TestPipelineService_Ingest_MalformedGameFailsItsTaskOnly(t *testing.T) {
	t.Parallel()
	fix := newPipelineFixture(t)
	ctx := context.Background()
	conv := euroleague.New()

	feed := euroleagueFeed()
	feed.Games = append(feed.Games, provider.Record{
		"gamecode": "E2024_2", "local_club": "MAD",
	})

	result, err := fix.svc.Ingest(ctx, conv, PipelineInput{Feed: feed})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if result.SuccessCount != 1 {
		t.Fatalf("success = %d, want 1", result.SuccessCount)
	}
	if result.FailedCount != 1 {
		t.Fatalf("failed = %d, want 1", result.FailedCount)
	}
}

func TestPipelineService_Ingest_DryRunWritesNothing(t *testing.T) {
	t.Parallel()
	fix := newPipelineFixture(t)
	ctx := context.Background()
	conv := euroleague.New()

	result, err := fix.svc.Ingest(ctx, conv, PipelineInput{Feed: euroleagueFeed(), DryRun: true})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if result.SuccessCount != 1 || result.PlayerCount != 3 {
		t.Fatalf("dry run counts = %+v", result)
	}

	all, err := fix.playerRepo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("dry run stored %d players", len(all))
	}
	synced, err := fix.tracker.IsSynced(ctx, "euroleague", "E2024_1")
	if err != nil {
		t.Fatalf("is synced: %v", err)
	}
	if synced {
		t.Fatal("dry run marked the game synced")
	}
	if got := len(fix.rawRepo.List()); got != 0 {
		t.Fatalf("dry run stored %d raw payloads", got)
	}
}

func TestPipelineService_Ingest_UnknownBoxScorePlayerIsDropped(t *testing.T) {
	t.Parallel()
	fix := newPipelineFixture(t)
	ctx := context.Background()
	conv := euroleague.New()

	feed := euroleagueFeed()
	feed.BoxScores["E2024_1"] = append(feed.BoxScores["E2024_1"], provider.Record{
		"gamecode": "E2024_1", "player_code": "P999", "team_code": "MAD", "minutes": "5:00",
	})

	result, err := fix.svc.Ingest(ctx, conv, PipelineInput{Feed: feed})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if result.SuccessCount != 1 {
		t.Fatalf("success = %d, want 1", result.SuccessCount)
	}

	stored, err := fix.tracker.GetByExternalID(ctx, "euroleague", "E2024_1")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	lines, err := fix.statsRepo.ListByGame(ctx, stored.ID)
	if err != nil {
		t.Fatalf("list stats: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d stat lines, want 2 (unknown player dropped)", len(lines))
	}
}
