package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/courtdata/courtsync/internal/domain/stats"
	qb "github.com/courtdata/courtsync/internal/platform/querybuilder"
)

type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

type statLineTableModel struct {
	ID                string `db:"id"`
	GameID            string `db:"game_id"`
	PlayerID          string `db:"player_id"`
	TeamID            string `db:"team_id"`
	Source            string `db:"source"`
	SecondsPlayed     int    `db:"seconds_played"`
	Points            int    `db:"points"`
	FieldGoalsMade    int    `db:"fg_made"`
	FieldGoalsAtt     int    `db:"fg_att"`
	TwoPointersMade   int    `db:"fg2_made"`
	TwoPointersAtt    int    `db:"fg2_att"`
	ThreePointersMade int    `db:"fg3_made"`
	ThreePointersAtt  int    `db:"fg3_att"`
	FreeThrowsMade    int    `db:"ft_made"`
	FreeThrowsAtt     int    `db:"ft_att"`
	OffensiveRebounds int    `db:"reb_off"`
	DefensiveRebounds int    `db:"reb_def"`
	Assists           int    `db:"assists"`
	Turnovers         int    `db:"turnovers"`
	Steals            int    `db:"steals"`
	Blocks            int    `db:"blocks"`
	Fouls             int    `db:"fouls"`
	PlusMinus         int    `db:"plus_minus"`
}

var statLineSelectColumns = []string{
	"id",
	"game_id",
	"player_id",
	"team_id",
	"source",
	"seconds_played",
	"points",
	"fg_made",
	"fg_att",
	"fg2_made",
	"fg2_att",
	"fg3_made",
	"fg3_att",
	"ft_made",
	"ft_att",
	"reb_off",
	"reb_def",
	"assists",
	"turnovers",
	"steals",
	"blocks",
	"fouls",
	"plus_minus",
}

func (row statLineTableModel) toDomain() stats.Line {
	return stats.Line{
		ID:                row.ID,
		GameID:            row.GameID,
		PlayerID:          row.PlayerID,
		TeamID:            row.TeamID,
		Source:            row.Source,
		SecondsPlayed:     row.SecondsPlayed,
		Points:            row.Points,
		FieldGoalsMade:    row.FieldGoalsMade,
		FieldGoalsAtt:     row.FieldGoalsAtt,
		TwoPointersMade:   row.TwoPointersMade,
		TwoPointersAtt:    row.TwoPointersAtt,
		ThreePointersMade: row.ThreePointersMade,
		ThreePointersAtt:  row.ThreePointersAtt,
		FreeThrowsMade:    row.FreeThrowsMade,
		FreeThrowsAtt:     row.FreeThrowsAtt,
		OffensiveRebounds: row.OffensiveRebounds,
		DefensiveRebounds: row.DefensiveRebounds,
		Assists:           row.Assists,
		Turnovers:         row.Turnovers,
		Steals:            row.Steals,
		Blocks:            row.Blocks,
		Fouls:             row.Fouls,
		PlusMinus:         row.PlusMinus,
	}
}

func statLineToModel(line stats.Line) statLineTableModel {
	return statLineTableModel{
		ID:                line.ID,
		GameID:            line.GameID,
		PlayerID:          line.PlayerID,
		TeamID:            line.TeamID,
		Source:            line.Source,
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
}

func (r *StatsRepository) ListByGame(ctx context.Context, gameID string) ([]stats.Line, error) {
	query, args, err := qb.Select(statLineSelectColumns...).From("stat_lines").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select stat lines query: %w", err)
	}

	var rows []statLineTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select stat lines for game %s: %w", gameID, err)
	}

	out := make([]stats.Line, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// UpsertForGame replaces the game's stored box score atomically.
func (r *StatsRepository) UpsertForGame(ctx context.Context, gameID string, lines []stats.Line) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert stat lines: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM stat_lines WHERE game_id = $1", gameID); err != nil {
		return fmt.Errorf("delete stat lines for game %s: %w", gameID, err)
	}

	for _, line := range lines {
		query, args, err := qb.InsertModel("stat_lines", statLineToModel(line), "")
		if err != nil {
			return fmt.Errorf("build insert stat line query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert stat line player=%s game=%s: %w", line.PlayerID, gameID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert stat lines tx: %w", err)
	}
	return nil
}
