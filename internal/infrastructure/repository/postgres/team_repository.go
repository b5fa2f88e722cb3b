package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/courtdata/courtsync/internal/domain/team"
	qb "github.com/courtdata/courtsync/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

var teamSelectColumns = []string{
	"id",
	"name",
	"short_name",
	"city",
	"country",
	"external_ids",
	"created_at",
	"updated_at",
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (*team.Team, error) {
	return r.getOne(ctx, qb.Eq("id", id))
}

func (r *TeamRepository) GetByExternalID(ctx context.Context, source, externalID string) (*team.Team, error) {
	return r.getOne(ctx, qb.Expr("external_ids ->> ? = ?", source, externalID))
}

func (r *TeamRepository) getOne(ctx context.Context, cond qb.Condition) (*team.Team, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		Where(cond).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("select team: %w", err)
	}

	out, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *TeamRepository) ListAll(ctx context.Context) ([]team.Team, error) {
	return r.list(ctx)
}

func (r *TeamRepository) ListIncomplete(ctx context.Context, source string) ([]team.Team, error) {
	conditions := []qb.Condition{
		qb.Expr("(name = '' OR short_name = '')"),
	}
	if source != "" {
		conditions = append(conditions, qb.Expr("external_ids ->> ? IS NOT NULL", source))
	}
	return r.list(ctx, conditions...)
}

func (r *TeamRepository) list(ctx context.Context, conditions ...qb.Condition) ([]team.Team, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		t, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	model, err := teamToInsertModel(t)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("teams", model, "")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team %s: %w", t.ID, err)
	}
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) error {
	model, err := teamToInsertModel(t)
	if err != nil {
		return err
	}

	query, args, err := qb.Update("teams").
		Set("name", model.Name).
		Set("short_name", model.ShortName).
		Set("city", model.City).
		Set("country", model.Country).
		Set("external_ids", model.ExternalIDs).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", t.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update team %s: %w", t.ID, err)
	}
	return nil
}

func (r *TeamRepository) ListMemberIDs(ctx context.Context, teamID string) ([]string, error) {
	query, args, err := qb.Select("player_id").From("team_rosters").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster query: %w", err)
	}

	var out []string
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("select roster for team %s: %w", teamID, err)
	}
	return out, nil
}

func (r *TeamRepository) AddMember(ctx context.Context, m team.Membership) error {
	query, args, err := qb.InsertInto("team_rosters").
		Columns("team_id", "player_id").
		Values(m.TeamID, m.PlayerID).
		Suffix("ON CONFLICT (team_id, player_id) DO NOTHING").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert roster member query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert roster member team=%s player=%s: %w", m.TeamID, m.PlayerID, err)
	}
	return nil
}
