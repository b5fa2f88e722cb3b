package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/courtdata/courtsync/internal/domain/canonical"
	"github.com/courtdata/courtsync/internal/domain/pbp"
	qb "github.com/courtdata/courtsync/internal/platform/querybuilder"
)

type PBPRepository struct {
	db *sqlx.DB
}

func NewPBPRepository(db *sqlx.DB) *PBPRepository {
	return &PBPRepository{db: db}
}

type pbpEventTableModel struct {
	ID            string          `db:"id"`
	GameID        string          `db:"game_id"`
	Source        string          `db:"source"`
	EventNumber   int             `db:"event_number"`
	Period        int             `db:"period"`
	ClockSeconds  int             `db:"clock_seconds"`
	EventType     string          `db:"event_type"`
	ShotType      sql.NullString  `db:"shot_type"`
	ReboundType   sql.NullString  `db:"rebound_type"`
	FoulType      sql.NullString  `db:"foul_type"`
	TurnoverType  sql.NullString  `db:"turnover_type"`
	PlayerID      sql.NullString  `db:"player_id"`
	TeamID        sql.NullString  `db:"team_id"`
	Success       sql.NullBool    `db:"success"`
	CoordX        sql.NullFloat64 `db:"coord_x"`
	CoordY        sql.NullFloat64 `db:"coord_y"`
	RelatedEvents []byte          `db:"related_events"`
}

var pbpEventSelectColumns = []string{
	"id",
	"game_id",
	"source",
	"event_number",
	"period",
	"clock_seconds",
	"event_type",
	"shot_type",
	"rebound_type",
	"foul_type",
	"turnover_type",
	"player_id",
	"team_id",
	"success",
	"coord_x",
	"coord_y",
	"related_events",
}

func (row pbpEventTableModel) toDomain() (pbp.Event, error) {
	out := pbp.Event{
		ID:           row.ID,
		GameID:       row.GameID,
		Source:       row.Source,
		EventNumber:  row.EventNumber,
		Period:       row.Period,
		ClockSeconds: row.ClockSeconds,
		Type:         canonical.EventType(row.EventType),
		PlayerID:     row.PlayerID.String,
		TeamID:       row.TeamID.String,
	}
	if row.ShotType.Valid {
		v := canonical.ShotType(row.ShotType.String)
		out.ShotType = &v
	}
	if row.ReboundType.Valid {
		v := canonical.ReboundType(row.ReboundType.String)
		out.ReboundType = &v
	}
	if row.FoulType.Valid {
		v := canonical.FoulType(row.FoulType.String)
		out.FoulType = &v
	}
	if row.TurnoverType.Valid {
		v := canonical.TurnoverType(row.TurnoverType.String)
		out.TurnoverType = &v
	}
	if row.Success.Valid {
		v := row.Success.Bool
		out.Success = &v
	}
	if row.CoordX.Valid {
		v := row.CoordX.Float64
		out.CoordX = &v
	}
	if row.CoordY.Valid {
		v := row.CoordY.Float64
		out.CoordY = &v
	}
	if len(row.RelatedEvents) > 0 {
		if err := sonic.Unmarshal(row.RelatedEvents, &out.RelatedEvents); err != nil {
			return pbp.Event{}, fmt.Errorf("event %s: decode related events: %w", row.ID, err)
		}
	}
	return out, nil
}

type pbpEventInsertModel struct {
	ID            string          `db:"id"`
	GameID        string          `db:"game_id"`
	Source        string          `db:"source"`
	EventNumber   int             `db:"event_number"`
	Period        int             `db:"period"`
	ClockSeconds  int             `db:"clock_seconds"`
	EventType     string          `db:"event_type"`
	ShotType      sql.NullString  `db:"shot_type"`
	ReboundType   sql.NullString  `db:"rebound_type"`
	FoulType      sql.NullString  `db:"foul_type"`
	TurnoverType  sql.NullString  `db:"turnover_type"`
	PlayerID      sql.NullString  `db:"player_id"`
	TeamID        sql.NullString  `db:"team_id"`
	Success       sql.NullBool    `db:"success"`
	CoordX        sql.NullFloat64 `db:"coord_x"`
	CoordY        sql.NullFloat64 `db:"coord_y"`
	RelatedEvents string          `db:"related_events"`
}

func pbpEventToInsertModel(ev pbp.Event) (pbpEventInsertModel, error) {
	out := pbpEventInsertModel{
		ID:            ev.ID,
		GameID:        ev.GameID,
		Source:        ev.Source,
		EventNumber:   ev.EventNumber,
		Period:        ev.Period,
		ClockSeconds:  ev.ClockSeconds,
		EventType:     string(ev.Type),
		PlayerID:      nullableString(ev.PlayerID),
		TeamID:        nullableString(ev.TeamID),
		RelatedEvents: "[]",
	}
	if ev.ShotType != nil {
		out.ShotType = sql.NullString{String: string(*ev.ShotType), Valid: true}
	}
	if ev.ReboundType != nil {
		out.ReboundType = sql.NullString{String: string(*ev.ReboundType), Valid: true}
	}
	if ev.FoulType != nil {
		out.FoulType = sql.NullString{String: string(*ev.FoulType), Valid: true}
	}
	if ev.TurnoverType != nil {
		out.TurnoverType = sql.NullString{String: string(*ev.TurnoverType), Valid: true}
	}
	if ev.Success != nil {
		out.Success = sql.NullBool{Bool: *ev.Success, Valid: true}
	}
	if ev.CoordX != nil {
		out.CoordX = sql.NullFloat64{Float64: *ev.CoordX, Valid: true}
	}
	if ev.CoordY != nil {
		out.CoordY = sql.NullFloat64{Float64: *ev.CoordY, Valid: true}
	}
	if len(ev.RelatedEvents) > 0 {
		encoded, err := sonic.MarshalString(ev.RelatedEvents)
		if err != nil {
			return pbpEventInsertModel{}, fmt.Errorf("event %s: encode related events: %w", ev.ID, err)
		}
		out.RelatedEvents = encoded
	}
	return out, nil
}

func (r *PBPRepository) ListByGame(ctx context.Context, gameID string) ([]pbp.Event, error) {
	query, args, err := qb.Select(pbpEventSelectColumns...).From("pbp_events").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("period", "event_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select events query: %w", err)
	}

	var rows []pbpEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select events for game %s: %w", gameID, err)
	}

	out := make([]pbp.Event, 0, len(rows))
	for _, row := range rows {
		ev, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

// ReplaceForGame swaps the game's stored event log atomically.
func (r *PBPRepository) ReplaceForGame(ctx context.Context, gameID string, events []pbp.Event) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace events: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM pbp_events WHERE game_id = $1", gameID); err != nil {
		return fmt.Errorf("delete events for game %s: %w", gameID, err)
	}

	for _, ev := range events {
		model, err := pbpEventToInsertModel(ev)
		if err != nil {
			return err
		}
		query, args, err := qb.InsertModel("pbp_events", model, "")
		if err != nil {
			return fmt.Errorf("build insert event query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert event %d game=%s: %w", ev.EventNumber, gameID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace events tx: %w", err)
	}
	return nil
}
