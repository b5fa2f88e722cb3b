package memory

import (
	"context"
	"sync"

	"github.com/courtdata/courtsync/internal/domain/canonical"
	"github.com/courtdata/courtsync/internal/domain/game"
	"github.com/courtdata/courtsync/internal/domain/pbp"
	"github.com/courtdata/courtsync/internal/domain/stats"
)

// GameRepository is an in-memory game store. The completeness queries need
// to know which games have stats and events, so the stat and event stores
// are injected; nil means "no game has any".
type GameRepository struct {
	mu        sync.RWMutex
	games     map[string]game.Game
	statsRepo *StatsRepository
	pbpRepo   *PBPRepository
}

func NewGameRepository(statsRepo *StatsRepository, pbpRepo *PBPRepository) *GameRepository {
	return &GameRepository{
		games:     make(map[string]game.Game),
		statsRepo: statsRepo,
		pbpRepo:   pbpRepo,
	}
}

func (r *GameRepository) GetByID(_ context.Context, id string) (*game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.games[id]
	if !ok {
		return nil, nil
	}
	out := cloneGame(g)
	return &out, nil
}

func (r *GameRepository) GetByExternalID(_ context.Context, source, externalID string) (*game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.games {
		if g.ExternalIDs[source] == externalID && externalID != "" {
			out := cloneGame(g)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *GameRepository) FilterExistingExternalIDs(_ context.Context, source string, externalIDs []string) (map[string]struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	known := make(map[string]struct{}, len(r.games))
	for _, g := range r.games {
		if id, ok := g.ExternalIDs[source]; ok {
			known[id] = struct{}{}
		}
	}

	out := make(map[string]struct{})
	for _, id := range externalIDs {
		if _, ok := known[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

func (r *GameRepository) Create(_ context.Context, g game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.games[g.ID] = cloneGame(g)
	return nil
}

func (r *GameRepository) Update(_ context.Context, g game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.games[g.ID] = cloneGame(g)
	return nil
}

func (r *GameRepository) ListFinalWithoutStats(ctx context.Context, source string) ([]game.Game, error) {
	return r.listFinalLacking(ctx, source, func(gameID string) bool {
		if r.statsRepo == nil {
			return false
		}
		lines, _ := r.statsRepo.ListByGame(ctx, gameID)
		return len(lines) > 0
	})
}

func (r *GameRepository) ListFinalWithoutEvents(ctx context.Context, source string) ([]game.Game, error) {
	return r.listFinalLacking(ctx, source, func(gameID string) bool {
		if r.pbpRepo == nil {
			return false
		}
		events, _ := r.pbpRepo.ListByGame(ctx, gameID)
		return len(events) > 0
	})
}

func (r *GameRepository) listFinalLacking(_ context.Context, source string, has func(gameID string) bool) ([]game.Game, error) {
	r.mu.RLock()
	candidates := make([]game.Game, 0)
	for _, g := range r.games {
		if g.Status != canonical.GameFinal {
			continue
		}
		if source != "" {
			if _, mapped := g.ExternalIDs[source]; !mapped {
				continue
			}
		}
		candidates = append(candidates, cloneGame(g))
	}
	r.mu.RUnlock()

	out := make([]game.Game, 0, len(candidates))
	for _, g := range candidates {
		if has(g.ID) {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func cloneGame(g game.Game) game.Game {
	out := g
	if g.ExternalIDs != nil {
		out.ExternalIDs = make(map[string]string, len(g.ExternalIDs))
		for k, v := range g.ExternalIDs {
			out.ExternalIDs[k] = v
		}
	}
	if g.HomeScore != nil {
		score := *g.HomeScore
		out.HomeScore = &score
	}
	if g.AwayScore != nil {
		score := *g.AwayScore
		out.AwayScore = &score
	}
	return out
}

// StatsRepository is an in-memory box-score store keyed by game.
type StatsRepository struct {
	mu     sync.RWMutex
	byGame map[string][]stats.Line
}

func NewStatsRepository() *StatsRepository {
	return &StatsRepository{
		byGame: make(map[string][]stats.Line),
	}
}

func (r *StatsRepository) ListByGame(_ context.Context, gameID string) ([]stats.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lines := r.byGame[gameID]
	out := make([]stats.Line, 0, len(lines))
	out = append(out, lines...)
	return out, nil
}

func (r *StatsRepository) UpsertForGame(_ context.Context, gameID string, lines []stats.Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]stats.Line, 0, len(lines))
	stored = append(stored, lines...)
	r.byGame[gameID] = stored
	return nil
}

// PBPRepository is an in-memory play-by-play store keyed by game.
type PBPRepository struct {
	mu     sync.RWMutex
	byGame map[string][]pbp.Event
}

func NewPBPRepository() *PBPRepository {
	return &PBPRepository{
		byGame: make(map[string][]pbp.Event),
	}
}

func (r *PBPRepository) ListByGame(_ context.Context, gameID string) ([]pbp.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := r.byGame[gameID]
	out := make([]pbp.Event, 0, len(events))
	out = append(out, events...)
	return out, nil
}

func (r *PBPRepository) ReplaceForGame(_ context.Context, gameID string, events []pbp.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]pbp.Event, 0, len(events))
	stored = append(stored, events...)
	r.byGame[gameID] = stored
	return nil
}
