package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtdata/courtsync/internal/domain/canonical"
	"github.com/courtdata/courtsync/internal/domain/season"
	qb "github.com/courtdata/courtsync/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

var seasonSelectColumns = []string{
	"id",
	"name",
	"start_date",
	"end_date",
	"is_current",
	"external_ids",
	"created_at",
	"updated_at",
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

type seasonTableModel struct {
	ID          string     `db:"id"`
	Name        string     `db:"name"`
	StartDate   *time.Time `db:"start_date"`
	EndDate     *time.Time `db:"end_date"`
	IsCurrent   bool       `db:"is_current"`
	ExternalIDs []byte     `db:"external_ids"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (row seasonTableModel) toDomain() (season.Season, error) {
	externalIDs, err := decodeExternalIDs(row.ExternalIDs)
	if err != nil {
		return season.Season{}, fmt.Errorf("season %s: %w", row.ID, err)
	}
	return season.Season{
		ID:          row.ID,
		Name:        canonical.SeasonName(row.Name),
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		IsCurrent:   row.IsCurrent,
		ExternalIDs: externalIDs,
	}, nil
}

type seasonInsertModel struct {
	ID          string     `db:"id"`
	Name        string     `db:"name"`
	StartDate   *time.Time `db:"start_date"`
	EndDate     *time.Time `db:"end_date"`
	IsCurrent   bool       `db:"is_current"`
	ExternalIDs string     `db:"external_ids"`
}

func seasonToInsertModel(s season.Season) (seasonInsertModel, error) {
	externalIDs, err := encodeExternalIDs(s.ExternalIDs)
	if err != nil {
		return seasonInsertModel{}, fmt.Errorf("season %s: %w", s.ID, err)
	}
	return seasonInsertModel{
		ID:          s.ID,
		Name:        string(s.Name),
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		IsCurrent:   s.IsCurrent,
		ExternalIDs: externalIDs,
	}, nil
}

func (r *SeasonRepository) GetByExternalID(ctx context.Context, source, externalID string) (*season.Season, error) {
	query, args, err := qb.Select(seasonSelectColumns...).From("seasons").
		Where(qb.Expr("external_ids ->> ? = ?", source, externalID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("select season: %w", err)
	}

	out, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	query, args, err := qb.Select(seasonSelectColumns...).From("seasons").
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		s, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *SeasonRepository) Create(ctx context.Context, s season.Season) error {
	model, err := seasonToInsertModel(s)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("seasons", model, "")
	if err != nil {
		return fmt.Errorf("build insert season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert season %s: %w", s.ID, err)
	}
	return nil
}

func (r *SeasonRepository) Update(ctx context.Context, s season.Season) error {
	model, err := seasonToInsertModel(s)
	if err != nil {
		return err
	}

	query, args, err := qb.Update("seasons").
		Set("name", model.Name).
		Set("start_date", model.StartDate).
		Set("end_date", model.EndDate).
		Set("is_current", model.IsCurrent).
		Set("external_ids", model.ExternalIDs).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", s.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update season %s: %w", s.ID, err)
	}
	return nil
}
