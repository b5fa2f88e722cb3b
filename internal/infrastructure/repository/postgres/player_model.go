package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/courtdata/courtsync/internal/domain/canonical"
	"github.com/courtdata/courtsync/internal/domain/player"
)

type playerTableModel struct {
	ID             string         `db:"id"`
	FirstName      string         `db:"first_name"`
	LastName       string         `db:"last_name"`
	NormalizedName string         `db:"normalized_name"`
	Positions      string         `db:"positions"`
	HeightCm       sql.NullInt64  `db:"height_cm"`
	BirthDate      *time.Time     `db:"birth_date"`
	Nationality    sql.NullString `db:"nationality"`
	JerseyNumber   sql.NullInt64  `db:"jersey_number"`
	ExternalIDs    []byte         `db:"external_ids"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (row playerTableModel) toDomain() (player.Player, error) {
	externalIDs, err := decodeExternalIDs(row.ExternalIDs)
	if err != nil {
		return player.Player{}, fmt.Errorf("player %s: %w", row.ID, err)
	}

	out := player.Player{
		ID:          row.ID,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		Positions:   decodePositions(row.Positions),
		BirthDate:   row.BirthDate,
		ExternalIDs: externalIDs,
	}
	if row.HeightCm.Valid {
		h := canonical.Height(row.HeightCm.Int64)
		out.Height = &h
	}
	if row.Nationality.Valid {
		nat := canonical.Nationality(row.Nationality.String)
		out.Nationality = &nat
	}
	out.JerseyNumber = intFromNull(row.JerseyNumber)
	return out, nil
}

type playerInsertModel struct {
	ID             string         `db:"id"`
	FirstName      string         `db:"first_name"`
	LastName       string         `db:"last_name"`
	NormalizedName string         `db:"normalized_name"`
	Positions      string         `db:"positions"`
	HeightCm       sql.NullInt64  `db:"height_cm"`
	BirthDate      *time.Time     `db:"birth_date"`
	Nationality    sql.NullString `db:"nationality"`
	JerseyNumber   sql.NullInt64  `db:"jersey_number"`
	ExternalIDs    string         `db:"external_ids"`
}

func playerToInsertModel(p player.Player) (playerInsertModel, error) {
	externalIDs, err := encodeExternalIDs(p.ExternalIDs)
	if err != nil {
		return playerInsertModel{}, fmt.Errorf("player %s: %w", p.ID, err)
	}

	out := playerInsertModel{
		ID:             p.ID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		NormalizedName: p.NormalizedName(),
		Positions:      encodePositions(p.Positions),
		BirthDate:      p.BirthDate,
		ExternalIDs:    externalIDs,
	}
	if p.Height != nil {
		out.HeightCm = sql.NullInt64{Int64: int64(p.Height.Cm()), Valid: true}
	}
	if p.Nationality != nil {
		out.Nationality = sql.NullString{String: string(*p.Nationality), Valid: true}
	}
	out.JerseyNumber = nullableInt(p.JerseyNumber)
	return out, nil
}
