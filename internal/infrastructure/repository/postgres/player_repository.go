package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/courtdata/courtsync/internal/domain/player"
	qb "github.com/courtdata/courtsync/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"first_name",
	"last_name",
	"normalized_name",
	"positions",
	"height_cm",
	"birth_date",
	"nationality",
	"jersey_number",
	"external_ids",
	"created_at",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (*player.Player, error) {
	return r.getOne(ctx, qb.Eq("id", id))
}

func (r *PlayerRepository) GetByExternalID(ctx context.Context, source, externalID string) (*player.Player, error) {
	return r.getOne(ctx, qb.Expr("external_ids ->> ? = ?", source, externalID))
}

func (r *PlayerRepository) getOne(ctx context.Context, cond qb.Condition) (*player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(cond).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("select player: %w", err)
	}

	out, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PlayerRepository) ListByNormalizedName(ctx context.Context, normalizedName string) ([]player.Player, error) {
	return r.list(ctx, qb.Eq("normalized_name", normalizedName))
}

func (r *PlayerRepository) ListAll(ctx context.Context) ([]player.Player, error) {
	return r.list(ctx)
}

func (r *PlayerRepository) ListIncomplete(ctx context.Context, source string) ([]player.Player, error) {
	conditions := []qb.Condition{
		qb.IsNull("height_cm"),
		qb.IsNull("birth_date"),
		qb.Eq("positions", ""),
	}
	if source != "" {
		conditions = append(conditions, qb.Expr("external_ids ->> ? IS NOT NULL", source))
	}
	return r.list(ctx, conditions...)
}

func (r *PlayerRepository) list(ctx context.Context, conditions ...qb.Condition) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PlayerRepository) FilterExistingExternalIDs(ctx context.Context, source string, externalIDs []string) (map[string]struct{}, error) {
	if len(externalIDs) == 0 {
		return map[string]struct{}{}, nil
	}

	// $1 in the select list is the source, bound by the WHERE clause below.
	query, args, err := qb.Select("external_ids ->> $1 AS external_id").From("players").
		Where(qb.Expr("external_ids ->> ? = ANY(?)", source, pq.Array(externalIDs))).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build filter player external ids query: %w", err)
	}

	var found []string
	if err := r.db.SelectContext(ctx, &found, query, args...); err != nil {
		return nil, fmt.Errorf("filter player external ids: %w", err)
	}

	out := make(map[string]struct{}, len(found))
	for _, id := range found {
		out[id] = struct{}{}
	}
	return out, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	model, err := playerToInsertModel(p)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("players", model, "")
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player %s: %w", p.ID, err)
	}
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	model, err := playerToInsertModel(p)
	if err != nil {
		return err
	}

	query, args, err := qb.Update("players").
		Set("first_name", model.FirstName).
		Set("last_name", model.LastName).
		Set("normalized_name", model.NormalizedName).
		Set("positions", model.Positions).
		Set("height_cm", model.HeightCm).
		Set("birth_date", model.BirthDate).
		Set("nationality", model.Nationality).
		Set("jersey_number", model.JerseyNumber).
		Set("external_ids", model.ExternalIDs).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", p.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update player %s: %w", p.ID, err)
	}
	return nil
}
