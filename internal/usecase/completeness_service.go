package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/sourcegraph/conc"

	"github.com/courtdata/courtsync/internal/domain/game"
	"github.com/courtdata/courtsync/internal/domain/player"
	"github.com/courtdata/courtsync/internal/domain/team"
	"github.com/courtdata/courtsync/internal/platform/logging"
)

// Report lists every stored entity that still misses data a source could
// provide. Source scopes the answer: an empty Source means "missing from
// everywhere", a set Source means "this source has not contributed yet".
type Report struct {
	Source             string          `json:"source,omitempty"`
	IncompletePlayers  []player.Player `json:"incomplete_players"`
	IncompleteTeams    []team.Team     `json:"incomplete_teams"`
	GamesMissingStats  []game.Game     `json:"games_missing_stats"`
	GamesMissingEvents []game.Game     `json:"games_missing_events"`
}

// Empty reports whether nothing is missing.
func (r Report) Empty() bool {
	return len(r.IncompletePlayers) == 0 &&
		len(r.IncompleteTeams) == 0 &&
		len(r.GamesMissingStats) == 0 &&
		len(r.GamesMissingEvents) == 0
}

// WorkItem is one fetch a source should perform to fill a gap.
type WorkItem struct {
	Kind     string `json:"kind"`
	EntityID string `json:"entity_id"`
}

const (
	WorkPlayerBio  = "player_bio"
	WorkTeamInfo   = "team_info"
	WorkGameStats  = "game_stats"
	WorkGameEvents = "game_events"
)

// CompletenessService finds gaps in the stored data set. A game counts as
// missing stats or events only once it is final; players count as
// incomplete when height, birthdate and positions are all absent.
type CompletenessService struct {
	playerRepo player.Repository
	teamRepo   team.Repository
	gameRepo   game.Repository
	logger     *logging.Logger
}

func NewCompletenessService(
	playerRepo player.Repository,
	teamRepo team.Repository,
	gameRepo game.Repository,
	logger *logging.Logger,
) *CompletenessService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CompletenessService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		gameRepo:   gameRepo,
		logger:     logger,
	}
}

// Detect runs the four gap queries concurrently and folds the results into
// one report. source may be empty to scan across all sources.
func (s *CompletenessService) Detect(ctx context.Context, source string) (Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompletenessService.Detect")
	defer span.End()

	report := Report{Source: source}

	var (
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	var wg conc.WaitGroup
	wg.Go(func() {
		players, err := s.playerRepo.ListIncomplete(ctx, source)
		if err != nil {
			fail(fmt.Errorf("list incomplete players: %w", err))
			return
		}
		report.IncompletePlayers = players
	})
	wg.Go(func() {
		teams, err := s.teamRepo.ListIncomplete(ctx, source)
		if err != nil {
			fail(fmt.Errorf("list incomplete teams: %w", err))
			return
		}
		report.IncompleteTeams = teams
	})
	wg.Go(func() {
		games, err := s.gameRepo.ListFinalWithoutStats(ctx, source)
		if err != nil {
			fail(fmt.Errorf("list games missing stats: %w", err))
			return
		}
		report.GamesMissingStats = games
	})
	wg.Go(func() {
		games, err := s.gameRepo.ListFinalWithoutEvents(ctx, source)
		if err != nil {
			fail(fmt.Errorf("list games missing events: %w", err))
			return
		}
		report.GamesMissingEvents = games
	})
	wg.Wait()

	if firstErr != nil {
		return Report{}, firstErr
	}

	s.logger.InfoContext(ctx, "completeness scan finished",
		"source", source,
		"incomplete_players", len(report.IncompletePlayers),
		"incomplete_teams", len(report.IncompleteTeams),
		"games_missing_stats", len(report.GamesMissingStats),
		"games_missing_events", len(report.GamesMissingEvents),
	)
	return report, nil
}

// Worklist flattens a report into fetch items, one per gap. Order follows
// the report: bios, team info, then per-game stats and events.
func (s *CompletenessService) Worklist(report Report) []WorkItem {
	items := make([]WorkItem, 0,
		len(report.IncompletePlayers)+len(report.IncompleteTeams)+
			len(report.GamesMissingStats)+len(report.GamesMissingEvents))

	for _, p := range report.IncompletePlayers {
		items = append(items, WorkItem{Kind: WorkPlayerBio, EntityID: p.ID})
	}
	for _, t := range report.IncompleteTeams {
		items = append(items, WorkItem{Kind: WorkTeamInfo, EntityID: t.ID})
	}
	for _, g := range report.GamesMissingStats {
		items = append(items, WorkItem{Kind: WorkGameStats, EntityID: g.ID})
	}
	for _, g := range report.GamesMissingEvents {
		items = append(items, WorkItem{Kind: WorkGameEvents, EntityID: g.ID})
	}
	return items
}
