package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"

	"github.com/courtdata/courtsync/internal/domain/canonical"
	"github.com/courtdata/courtsync/internal/domain/game"
	"github.com/courtdata/courtsync/internal/domain/pbp"
	"github.com/courtdata/courtsync/internal/domain/rawdata"
	"github.com/courtdata/courtsync/internal/domain/season"
	"github.com/courtdata/courtsync/internal/domain/stats"
	"github.com/courtdata/courtsync/internal/domain/team"
	"github.com/courtdata/courtsync/internal/platform/id"
	"github.com/courtdata/courtsync/internal/platform/logging"
	"github.com/courtdata/courtsync/internal/provider"
)

// Feed is one provider's batch of raw records. Rosters, BoxScores and
// Events are keyed by the owning team or game external id.
type Feed struct {
	Seasons   []provider.Record
	Teams     []provider.Record
	Rosters   map[string][]provider.Record
	Games     []provider.Record
	BoxScores map[string][]provider.Record
	Events    map[string][]provider.Record
}

type PipelineInput struct {
	Feed       Feed
	MaxWorkers int
	// DryRun converts and counts without touching any repository.
	DryRun bool
}

type PipelineResult struct {
	SeasonCount  int                  `json:"season_count"`
	TeamCount    int                  `json:"team_count"`
	PlayerCount  int                  `json:"player_count"`
	GameCount    int                  `json:"game_count"`
	TaskCount    int                  `json:"task_count"`
	SuccessCount int                  `json:"success_count"`
	FailedCount  int                  `json:"failed_count"`
	SkippedCount int                  `json:"skipped_count"`
	WorkerCount  int                  `json:"worker_count"`
	Tasks        []PipelineTaskResult `json:"tasks"`
}

type PipelineTaskResult struct {
	GameExternalID string `json:"game_external_id"`
	Status         string `json:"status"`
	Records        int    `json:"records"`
	DurationMs     int64  `json:"duration_ms"`
	Message        string `json:"message,omitempty"`
}

const (
	pipelineStatusSuccess = "success"
	pipelineStatusFailed  = "failed"
	pipelineStatusSkipped = "skipped"
)

// PipelineService ingests one provider feed end to end: seasons and teams
// first, then rosters through the resolver, then one worker task per
// not-yet-synced game covering the game row, its box score, its
// play-by-play log and the raw payload archive.
type PipelineService struct {
	resolver   *ResolverService
	tracker    *SyncTrackerService
	teamRepo   team.Repository
	gameRepo   game.Repository
	seasonRepo season.Repository
	statsRepo  stats.Repository
	pbpRepo    pbp.Repository
	rawRepo    rawdata.Repository
	idGen      id.Generator
	logger     *logging.Logger
}

func NewPipelineService(
	resolver *ResolverService,
	tracker *SyncTrackerService,
	teamRepo team.Repository,
	gameRepo game.Repository,
	seasonRepo season.Repository,
	statsRepo stats.Repository,
	pbpRepo pbp.Repository,
	rawRepo rawdata.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *PipelineService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PipelineService{
		resolver:   resolver,
		tracker:    tracker,
		teamRepo:   teamRepo,
		gameRepo:   gameRepo,
		seasonRepo: seasonRepo,
		statsRepo:  statsRepo,
		pbpRepo:    pbpRepo,
		rawRepo:    rawRepo,
		idGen:      idGen,
		logger:     logger,
	}
}

func (s *PipelineService) Ingest(ctx context.Context, conv provider.Converter, input PipelineInput) (PipelineResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.Ingest")
	defer span.End()

	if conv == nil {
		return PipelineResult{}, fmt.Errorf("%w: converter is required", ErrInvalidInput)
	}
	if s.resolver == nil || s.tracker == nil {
		return PipelineResult{}, fmt.Errorf("%w: pipeline is not fully configured", ErrDependencyUnavailable)
	}
	source := conv.Source()

	result := PipelineResult{}

	seasonCount, err := s.syncSeasons(ctx, conv, input.Feed.Seasons, input.DryRun)
	if err != nil {
		return PipelineResult{}, err
	}
	result.SeasonCount = seasonCount

	teamCount, err := s.syncTeams(ctx, conv, input.Feed.Teams, input.DryRun)
	if err != nil {
		return PipelineResult{}, err
	}
	result.TeamCount = teamCount

	playerCount, err := s.syncRosters(ctx, conv, input.Feed.Rosters, input.DryRun)
	if err != nil {
		return PipelineResult{}, err
	}
	result.PlayerCount = playerCount

	// Conversion failures surface as failed tasks, not batch aborts: one
	// malformed game must not sink the rest of the feed. Repeated external
	// ids keep the first record only so a malformed feed cannot double-create
	// a game within one run.
	converted := make([]canonical.Game, 0, len(input.Feed.Games))
	gameRecords := make(map[string]provider.Record, len(input.Feed.Games))
	failedRows := make([]PipelineTaskResult, 0)
	skippedRows := make([]PipelineTaskResult, 0)
	for _, raw := range input.Feed.Games {
		cg, err := conv.ConvertGame(raw)
		if err != nil {
			failedRows = append(failedRows, PipelineTaskResult{
				Status:  pipelineStatusFailed,
				Message: err.Error(),
			})
			continue
		}
		if _, dup := gameRecords[cg.ExternalID]; dup {
			skippedRows = append(skippedRows, PipelineTaskResult{
				GameExternalID: cg.ExternalID,
				Status:         pipelineStatusSkipped,
				Message:        "duplicate game record in feed",
			})
			continue
		}
		converted = append(converted, cg)
		gameRecords[cg.ExternalID] = raw
	}

	externalIDs := make([]string, 0, len(converted))
	for _, cg := range converted {
		externalIDs = append(externalIDs, cg.ExternalID)
	}
	unsynced, err := s.tracker.FilterUnsynced(ctx, source, externalIDs)
	if err != nil {
		return PipelineResult{}, err
	}
	unsyncedSet := make(map[string]struct{}, len(unsynced))
	for _, extID := range unsynced {
		unsyncedSet[extID] = struct{}{}
	}

	tasks := make([]canonical.Game, 0, len(unsynced))
	for _, cg := range converted {
		if _, ok := unsyncedSet[cg.ExternalID]; ok {
			tasks = append(tasks, cg)
			continue
		}
		skippedRows = append(skippedRows, PipelineTaskResult{
			GameExternalID: cg.ExternalID,
			Status:         pipelineStatusSkipped,
			Message:        "already synced",
		})
	}

	workerCount := normalizePipelineWorkerCount(input.MaxWorkers, len(tasks))
	result.GameCount = len(converted)
	result.TaskCount = len(tasks)
	result.WorkerCount = workerCount
	result.Tasks = make([]PipelineTaskResult, 0, len(tasks)+len(skippedRows)+len(failedRows))
	result.Tasks = append(result.Tasks, skippedRows...)
	result.Tasks = append(result.Tasks, failedRows...)
	result.SkippedCount = len(skippedRows)

	var successCount atomic.Int32
	var failedCount atomic.Int32

	if len(tasks) > 0 {
		rows := make(chan PipelineTaskResult, len(tasks))

		pool, err := ants.NewPool(workerCount)
		if err != nil {
			return PipelineResult{}, fmt.Errorf("create worker pool: %w", err)
		}
		defer pool.Release()

		var workers sync.WaitGroup
		for _, task := range tasks {
			task := task
			workers.Add(1)
			if err := pool.Submit(func() {
				defer workers.Done()

				start := time.Now()
				row := PipelineTaskResult{GameExternalID: task.ExternalID}

				records, err := s.ingestGame(ctx, conv, task,
					input.Feed.BoxScores[task.ExternalID],
					input.Feed.Events[task.ExternalID],
					gameRecords[task.ExternalID],
					input.DryRun,
				)
				row.Records = records
				if err != nil {
					row.Status = pipelineStatusFailed
					row.Message = err.Error()
					failedCount.Add(1)
				} else {
					row.Status = pipelineStatusSuccess
					successCount.Add(1)
				}
				row.DurationMs = time.Since(start).Milliseconds()

				rows <- row
			}); err != nil {
				workers.Done()
				return PipelineResult{}, fmt.Errorf("submit game task to worker pool: %w", err)
			}
		}

		workers.Wait()
		close(rows)

		for row := range rows {
			result.Tasks = append(result.Tasks, row)
		}
	}

	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].GameExternalID < result.Tasks[j].GameExternalID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load()) + len(failedRows)

	s.logger.InfoContext(ctx, "feed ingested",
		"source", source,
		"seasons", result.SeasonCount,
		"teams", result.TeamCount,
		"players", result.PlayerCount,
		"games", result.GameCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
		"skipped", result.SkippedCount,
	)
	return result, nil
}

func (s *PipelineService) syncSeasons(ctx context.Context, conv provider.Converter, records []provider.Record, dryRun bool) (int, error) {
	count := 0
	for _, raw := range records {
		cs, err := conv.ConvertSeason(raw)
		if err != nil {
			return count, fmt.Errorf("convert season: %w", err)
		}
		if dryRun {
			count++
			continue
		}

		existing, err := s.seasonRepo.GetByExternalID(ctx, cs.Source, cs.ExternalID)
		if err != nil {
			return count, fmt.Errorf("lookup season %s: %w", cs.ExternalID, err)
		}
		if existing != nil {
			if enrichSeason(existing, cs) {
				if err := s.seasonRepo.Update(ctx, *existing); err != nil {
					return count, fmt.Errorf("update season %s: %w", existing.ID, err)
				}
			}
			count++
			continue
		}

		newID, err := s.idGen.NewID()
		if err != nil {
			return count, fmt.Errorf("generate season id: %w", err)
		}
		row := season.Season{
			ID:          newID,
			Name:        cs.Name,
			StartDate:   cs.StartDate,
			EndDate:     cs.EndDate,
			IsCurrent:   cs.IsCurrent,
			ExternalIDs: map[string]string{cs.Source: cs.ExternalID},
		}
		if err := s.seasonRepo.Create(ctx, row); err != nil {
			return count, fmt.Errorf("create season %s: %w", cs.ExternalID, err)
		}
		count++
	}
	return count, nil
}

func (s *PipelineService) syncTeams(ctx context.Context, conv provider.Converter, records []provider.Record, dryRun bool) (int, error) {
	count := 0
	for _, raw := range records {
		ct, err := conv.ConvertTeam(raw)
		if err != nil {
			return count, fmt.Errorf("convert team: %w", err)
		}
		if dryRun {
			count++
			continue
		}

		existing, err := s.teamRepo.GetByExternalID(ctx, ct.Source, ct.ExternalID)
		if err != nil {
			return count, fmt.Errorf("lookup team %s: %w", ct.ExternalID, err)
		}
		if existing != nil {
			if enrichTeam(existing, ct) {
				if err := s.teamRepo.Update(ctx, *existing); err != nil {
					return count, fmt.Errorf("update team %s: %w", existing.ID, err)
				}
			}
			count++
			continue
		}

		newID, err := s.idGen.NewID()
		if err != nil {
			return count, fmt.Errorf("generate team id: %w", err)
		}
		row := team.Team{
			ID:          newID,
			Name:        ct.Name,
			ShortName:   ct.ShortName,
			City:        ct.City,
			Country:     ct.Country,
			ExternalIDs: map[string]string{ct.Source: ct.ExternalID},
		}
		if err := row.Validate(); err != nil {
			return count, fmt.Errorf("%w: team %s: %v", ErrInvalidInput, ct.ExternalID, err)
		}
		if err := s.teamRepo.Create(ctx, row); err != nil {
			return count, fmt.Errorf("create team %s: %w", ct.ExternalID, err)
		}
		count++
	}
	return count, nil
}

// enrichSeason fills fields the stored row lacks. Existing values win,
// except IsCurrent which may flip on once a feed marks the season current.
func enrichSeason(stored *season.Season, cs canonical.Season) bool {
	changed := false
	if stored.StartDate == nil && cs.StartDate != nil {
		stored.StartDate = cs.StartDate
		changed = true
	}
	if stored.EndDate == nil && cs.EndDate != nil {
		stored.EndDate = cs.EndDate
		changed = true
	}
	if !stored.IsCurrent && cs.IsCurrent {
		stored.IsCurrent = true
		changed = true
	}
	return changed
}

// enrichTeam fills fields the stored row lacks. Existing values win.
func enrichTeam(stored *team.Team, ct canonical.Team) bool {
	changed := stored.MergeExternalID(ct.Source, ct.ExternalID)
	if stored.ShortName == "" && ct.ShortName != "" {
		stored.ShortName = ct.ShortName
		changed = true
	}
	if stored.City == "" && ct.City != "" {
		stored.City = ct.City
		changed = true
	}
	if stored.Country == "" && ct.Country != "" {
		stored.Country = ct.Country
		changed = true
	}
	return changed
}

func (s *PipelineService) syncRosters(ctx context.Context, conv provider.Converter, rosters map[string][]provider.Record, dryRun bool) (int, error) {
	source := conv.Source()
	count := 0
	for teamExternalID, records := range rosters {
		teamID := ""
		if !dryRun {
			stored, err := s.teamRepo.GetByExternalID(ctx, source, teamExternalID)
			if err != nil {
				return count, fmt.Errorf("lookup roster team %s: %w", teamExternalID, err)
			}
			if stored != nil {
				teamID = stored.ID
			}
		}

		for _, raw := range records {
			cp, err := conv.ConvertPlayer(raw)
			if err != nil {
				return count, fmt.Errorf("convert player for team %s: %w", teamExternalID, err)
			}
			if dryRun {
				count++
				continue
			}
			if _, err := s.resolver.Resolve(ctx, cp, teamID); err != nil {
				return count, fmt.Errorf("resolve player %s: %w", cp.ExternalID, err)
			}
			count++
		}
	}
	return count, nil
}

func (s *PipelineService) ingestGame(
	ctx context.Context,
	conv provider.Converter,
	cg canonical.Game,
	boxScore []provider.Record,
	events []provider.Record,
	raw provider.Record,
	dryRun bool,
) (int, error) {
	source := conv.Source()
	records := 1

	lines, lineRecords, err := s.convertBoxScore(conv, boxScore)
	if err != nil {
		return 0, err
	}
	records += len(lines)

	pbpEvents := make([]canonical.PBPEvent, 0, len(events))
	eventRecords := make([]provider.Record, 0, len(events))
	for _, rawEvent := range events {
		ev, err := conv.ConvertPBPEvent(rawEvent)
		if err != nil {
			return 0, fmt.Errorf("convert event for game %s: %w", cg.ExternalID, err)
		}
		if ev == nil {
			continue
		}
		pbpEvents = append(pbpEvents, *ev)
		eventRecords = append(eventRecords, rawEvent)
	}
	records += len(pbpEvents)

	if dryRun {
		return records, nil
	}

	homeTeamID, err := s.teamIDByExternal(ctx, source, cg.HomeTeamExternal)
	if err != nil {
		return 0, err
	}
	awayTeamID, err := s.teamIDByExternal(ctx, source, cg.AwayTeamExternal)
	if err != nil {
		return 0, err
	}
	seasonID := ""
	if cg.SeasonExternalID != "" {
		storedSeason, err := s.seasonRepo.GetByExternalID(ctx, source, cg.SeasonExternalID)
		if err != nil {
			return 0, fmt.Errorf("lookup season %s: %w", cg.SeasonExternalID, err)
		}
		if storedSeason != nil {
			seasonID = storedSeason.ID
		}
	}

	gameID, err := s.idGen.NewID()
	if err != nil {
		return 0, fmt.Errorf("generate game id: %w", err)
	}
	row := game.Game{
		ID:          gameID,
		SeasonID:    seasonID,
		HomeTeamID:  homeTeamID,
		AwayTeamID:  awayTeamID,
		Date:        cg.Date,
		Status:      cg.Status,
		HomeScore:   cg.HomeScore,
		AwayScore:   cg.AwayScore,
		Venue:       cg.Venue,
		ExternalIDs: map[string]string{source: cg.ExternalID},
	}
	if err := row.Validate(); err != nil {
		return 0, fmt.Errorf("%w: game %s: %v", ErrInvalidInput, cg.ExternalID, err)
	}
	if err := s.gameRepo.Create(ctx, row); err != nil {
		return 0, fmt.Errorf("create game %s: %w", cg.ExternalID, err)
	}

	storedLines, err := s.buildStatLines(ctx, source, gameID, lines)
	if err != nil {
		return 0, err
	}
	if len(storedLines) > 0 {
		if err := s.statsRepo.UpsertForGame(ctx, gameID, storedLines); err != nil {
			return 0, fmt.Errorf("upsert stats for game %s: %w", cg.ExternalID, err)
		}
	}

	storedEvents, err := s.buildEvents(ctx, source, gameID, pbpEvents)
	if err != nil {
		return 0, err
	}
	if len(storedEvents) > 0 {
		if err := s.pbpRepo.ReplaceForGame(ctx, gameID, storedEvents); err != nil {
			return 0, fmt.Errorf("replace events for game %s: %w", cg.ExternalID, err)
		}
	}

	payloads, err := buildRawPayloads(source, cg.ExternalID, gameID, raw, lineRecords, eventRecords)
	if err != nil {
		return 0, err
	}
	if len(payloads) > 0 {
		if err := s.rawRepo.UpsertMany(ctx, payloads); err != nil {
			return 0, fmt.Errorf("archive raw payloads for game %s: %w", cg.ExternalID, err)
		}
	}

	return records, nil
}

func (s *PipelineService) convertBoxScore(conv provider.Converter, records []provider.Record) ([]canonical.PlayerStats, []provider.Record, error) {
	lines := make([]canonical.PlayerStats, 0, len(records))
	kept := make([]provider.Record, 0, len(records))
	for _, raw := range records {
		line, err := conv.ConvertPlayerStats(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("convert stat line: %w", err)
		}
		lines = append(lines, line)
		kept = append(kept, raw)
	}
	return lines, kept, nil
}

func (s *PipelineService) buildStatLines(ctx context.Context, source, gameID string, lines []canonical.PlayerStats) ([]stats.Line, error) {
	out := make([]stats.Line, 0, len(lines))
	for _, line := range lines {
		playerID, err := s.playerIDByExternal(ctx, source, line.PlayerExternalID)
		if err != nil {
			return nil, err
		}
		if playerID == "" {
			// Box scores occasionally list players absent from the roster
			// feed. Nothing to attach the line to yet; the next roster sync
			// fills the gap.
			s.logger.WarnContext(ctx, "dropping stat line for unknown player",
				"source", source,
				"player_external_id", line.PlayerExternalID,
			)
			continue
		}
		teamID := ""
		if line.TeamExternalID != "" {
			teamID, err = s.teamIDByExternal(ctx, source, line.TeamExternalID)
			if err != nil {
				return nil, err
			}
		}

		lineID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate stat line id: %w", err)
		}
		row := stats.Line{
			ID:                lineID,
			GameID:            gameID,
			PlayerID:          playerID,
			TeamID:            teamID,
			Source:            source,
			SecondsPlayed:     line.SecondsPlayed,
			Points:            line.Points,
			FieldGoalsMade:    line.FieldGoalsMade,
			FieldGoalsAtt:     line.FieldGoalsAtt,
			TwoPointersMade:   line.TwoPointersMade,
			TwoPointersAtt:    line.TwoPointersAtt,
			ThreePointersMade: line.ThreePointersMade,
			ThreePointersAtt:  line.ThreePointersAtt,
			FreeThrowsMade:    line.FreeThrowsMade,
			FreeThrowsAtt:     line.FreeThrowsAtt,
			OffensiveRebounds: line.OffensiveRebounds,
			DefensiveRebounds: line.DefensiveRebounds,
			Assists:           line.Assists,
			Turnovers:         line.Turnovers,
			Steals:            line.Steals,
			Blocks:            line.Blocks,
			Fouls:             line.Fouls,
			PlusMinus:         line.PlusMinus,
		}
		if err := row.Validate(); err != nil {
			return nil, fmt.Errorf("%w: stat line player=%s: %v", ErrInvalidInput, line.PlayerExternalID, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *PipelineService) buildEvents(ctx context.Context, source, gameID string, events []canonical.PBPEvent) ([]pbp.Event, error) {
	out := make([]pbp.Event, 0, len(events))
	for _, ev := range events {
		playerID := ""
		if ev.PlayerExternal != "" {
			resolved, err := s.playerIDByExternal(ctx, source, ev.PlayerExternal)
			if err != nil {
				return nil, err
			}
			playerID = resolved
		}
		teamID := ""
		if ev.TeamExternal != "" {
			resolved, err := s.teamIDByExternal(ctx, source, ev.TeamExternal)
			if err != nil {
				return nil, err
			}
			teamID = resolved
		}

		eventID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate event id: %w", err)
		}
		row := pbp.Event{
			ID:            eventID,
			GameID:        gameID,
			Source:        source,
			EventNumber:   ev.EventNumber,
			Period:        ev.Period,
			ClockSeconds:  ev.ClockSeconds,
			Type:          ev.Type,
			ShotType:      ev.ShotType,
			ReboundType:   ev.ReboundType,
			FoulType:      ev.FoulType,
			TurnoverType:  ev.TurnoverType,
			PlayerID:      playerID,
			TeamID:        teamID,
			Success:       ev.Success,
			CoordX:        ev.CoordX,
			CoordY:        ev.CoordY,
			RelatedEvents: ev.RelatedEvents,
		}
		if err := row.Validate(); err != nil {
			return nil, fmt.Errorf("%w: event %d: %v", ErrInvalidInput, ev.EventNumber, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *PipelineService) teamIDByExternal(ctx context.Context, source, externalID string) (string, error) {
	if externalID == "" {
		return "", fmt.Errorf("%w: team external id is required", ErrInvalidInput)
	}
	stored, err := s.teamRepo.GetByExternalID(ctx, source, externalID)
	if err != nil {
		return "", fmt.Errorf("lookup team %s: %w", externalID, err)
	}
	if stored == nil {
		return "", fmt.Errorf("%w: team source=%s external_id=%s", ErrNotFound, source, externalID)
	}
	return stored.ID, nil
}

func (s *PipelineService) playerIDByExternal(ctx context.Context, source, externalID string) (string, error) {
	if externalID == "" {
		return "", nil
	}
	stored, err := s.resolver.playerRepo.GetByExternalID(ctx, source, externalID)
	if err != nil {
		return "", fmt.Errorf("lookup player %s: %w", externalID, err)
	}
	if stored == nil {
		return "", nil
	}
	return stored.ID, nil
}

func buildRawPayloads(source, gameExternalID, gameID string, raw provider.Record, lineRecords, eventRecords []provider.Record) ([]rawdata.Payload, error) {
	now := time.Now().UTC()
	out := make([]rawdata.Payload, 0, 1+len(lineRecords)+len(eventRecords))

	appendPayload := func(entityType, entityKey string, rec provider.Record) error {
		if rec == nil {
			return nil
		}
		body, err := sonic.MarshalString(rec)
		if err != nil {
			return fmt.Errorf("marshal raw %s payload: %w", entityType, err)
		}
		sum := sha256.Sum256([]byte(body))
		out = append(out, rawdata.Payload{
			Source:     source,
			EntityType: entityType,
			EntityKey:  entityKey,
			GameID:     gameID,
			JSON:       body,
			Hash:       hex.EncodeToString(sum[:]),
			FetchedAt:  &now,
		})
		return nil
	}

	if err := appendPayload("game", gameExternalID, raw); err != nil {
		return nil, err
	}
	for i, rec := range lineRecords {
		if err := appendPayload("boxscore", fmt.Sprintf("%s#%d", gameExternalID, i), rec); err != nil {
			return nil, err
		}
	}
	for i, rec := range eventRecords {
		if err := appendPayload("pbp", fmt.Sprintf("%s#%d", gameExternalID, i), rec); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func normalizePipelineWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 4
	}
	if value > 8 {
		value = 8
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
