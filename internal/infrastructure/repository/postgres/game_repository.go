package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/courtdata/courtsync/internal/domain/canonical"
	"github.com/courtdata/courtsync/internal/domain/game"
	qb "github.com/courtdata/courtsync/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

var gameSelectColumns = []string{
	"id",
	"season_id",
	"home_team_id",
	"away_team_id",
	"game_date",
	"status",
	"home_score",
	"away_score",
	"venue",
	"external_ids",
	"created_at",
	"updated_at",
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) GetByID(ctx context.Context, id string) (*game.Game, error) {
	return r.getOne(ctx, qb.Eq("id", id))
}

func (r *GameRepository) GetByExternalID(ctx context.Context, source, externalID string) (*game.Game, error) {
	return r.getOne(ctx, qb.Expr("external_ids ->> ? = ?", source, externalID))
}

func (r *GameRepository) getOne(ctx context.Context, cond qb.Condition) (*game.Game, error) {
	query, args, err := qb.Select(gameSelectColumns...).From("games").
		Where(cond).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("select game: %w", err)
	}

	out, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *GameRepository) FilterExistingExternalIDs(ctx context.Context, source string, externalIDs []string) (map[string]struct{}, error) {
	if len(externalIDs) == 0 {
		return map[string]struct{}{}, nil
	}

	// $1 in the select list is the source, bound by the WHERE clause below.
	query, args, err := qb.Select("external_ids ->> $1 AS external_id").From("games").
		Where(qb.Expr("external_ids ->> ? = ANY(?)", source, pq.Array(externalIDs))).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build filter game external ids query: %w", err)
	}

	var found []string
	if err := r.db.SelectContext(ctx, &found, query, args...); err != nil {
		return nil, fmt.Errorf("filter game external ids: %w", err)
	}

	out := make(map[string]struct{}, len(found))
	for _, id := range found {
		out[id] = struct{}{}
	}
	return out, nil
}

func (r *GameRepository) Create(ctx context.Context, g game.Game) error {
	model, err := gameToInsertModel(g)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("games", model, "")
	if err != nil {
		return fmt.Errorf("build insert game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert game %s: %w", g.ID, err)
	}
	return nil
}

func (r *GameRepository) Update(ctx context.Context, g game.Game) error {
	model, err := gameToInsertModel(g)
	if err != nil {
		return err
	}

	query, args, err := qb.Update("games").
		Set("season_id", model.SeasonID).
		Set("home_team_id", model.HomeTeamID).
		Set("away_team_id", model.AwayTeamID).
		Set("game_date", model.GameDate).
		Set("status", model.Status).
		Set("home_score", model.HomeScore).
		Set("away_score", model.AwayScore).
		Set("venue", model.Venue).
		Set("external_ids", model.ExternalIDs).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", g.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update game %s: %w", g.ID, err)
	}
	return nil
}

func (r *GameRepository) ListFinalWithoutStats(ctx context.Context, source string) ([]game.Game, error) {
	return r.listFinalLacking(ctx, source,
		qb.Expr("NOT EXISTS (SELECT 1 FROM stat_lines sl WHERE sl.game_id = games.id)"))
}

func (r *GameRepository) ListFinalWithoutEvents(ctx context.Context, source string) ([]game.Game, error) {
	return r.listFinalLacking(ctx, source,
		qb.Expr("NOT EXISTS (SELECT 1 FROM pbp_events pe WHERE pe.game_id = games.id)"))
}

func (r *GameRepository) listFinalLacking(ctx context.Context, source string, lacking qb.Condition) ([]game.Game, error) {
	conditions := []qb.Condition{
		qb.Eq("status", string(canonical.GameFinal)),
		lacking,
	}
	if source != "" {
		conditions = append(conditions, qb.Expr("external_ids ->> ? IS NOT NULL", source))
	}

	query, args, err := qb.Select(gameSelectColumns...).From("games").
		Where(conditions...).
		OrderBy("game_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select incomplete games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select incomplete games: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		g, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}
