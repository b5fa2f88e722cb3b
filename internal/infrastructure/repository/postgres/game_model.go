package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/courtdata/courtsync/internal/domain/canonical"
	"github.com/courtdata/courtsync/internal/domain/game"
)

type gameTableModel struct {
	ID          string         `db:"id"`
	SeasonID    sql.NullString `db:"season_id"`
	HomeTeamID  string         `db:"home_team_id"`
	AwayTeamID  string         `db:"away_team_id"`
	GameDate    time.Time      `db:"game_date"`
	Status      string         `db:"status"`
	HomeScore   sql.NullInt64  `db:"home_score"`
	AwayScore   sql.NullInt64  `db:"away_score"`
	Venue       string         `db:"venue"`
	ExternalIDs []byte         `db:"external_ids"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (row gameTableModel) toDomain() (game.Game, error) {
	externalIDs, err := decodeExternalIDs(row.ExternalIDs)
	if err != nil {
		return game.Game{}, fmt.Errorf("game %s: %w", row.ID, err)
	}
	return game.Game{
		ID:          row.ID,
		SeasonID:    row.SeasonID.String,
		HomeTeamID:  row.HomeTeamID,
		AwayTeamID:  row.AwayTeamID,
		Date:        row.GameDate,
		Status:      canonical.GameStatus(row.Status),
		HomeScore:   intFromNull(row.HomeScore),
		AwayScore:   intFromNull(row.AwayScore),
		Venue:       row.Venue,
		ExternalIDs: externalIDs,
	}, nil
}

type gameInsertModel struct {
	ID          string         `db:"id"`
	SeasonID    sql.NullString `db:"season_id"`
	HomeTeamID  string         `db:"home_team_id"`
	AwayTeamID  string         `db:"away_team_id"`
	GameDate    time.Time      `db:"game_date"`
	Status      string         `db:"status"`
	HomeScore   sql.NullInt64  `db:"home_score"`
	AwayScore   sql.NullInt64  `db:"away_score"`
	Venue       string         `db:"venue"`
	ExternalIDs string         `db:"external_ids"`
}

func gameToInsertModel(g game.Game) (gameInsertModel, error) {
	externalIDs, err := encodeExternalIDs(g.ExternalIDs)
	if err != nil {
		return gameInsertModel{}, fmt.Errorf("game %s: %w", g.ID, err)
	}
	return gameInsertModel{
		ID:          g.ID,
		SeasonID:    nullableString(g.SeasonID),
		HomeTeamID:  g.HomeTeamID,
		AwayTeamID:  g.AwayTeamID,
		GameDate:    g.Date,
		Status:      string(g.Status),
		HomeScore:   nullableInt(g.HomeScore),
		AwayScore:   nullableInt(g.AwayScore),
		Venue:       g.Venue,
		ExternalIDs: externalIDs,
	}, nil
}
