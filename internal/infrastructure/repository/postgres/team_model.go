package postgres

import (
	"fmt"
	"time"

	"github.com/courtdata/courtsync/internal/domain/team"
)

type teamTableModel struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	ShortName   string    `db:"short_name"`
	City        string    `db:"city"`
	Country     string    `db:"country"`
	ExternalIDs []byte    `db:"external_ids"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (row teamTableModel) toDomain() (team.Team, error) {
	externalIDs, err := decodeExternalIDs(row.ExternalIDs)
	if err != nil {
		return team.Team{}, fmt.Errorf("team %s: %w", row.ID, err)
	}
	return team.Team{
		ID:          row.ID,
		Name:        row.Name,
		ShortName:   row.ShortName,
		City:        row.City,
		Country:     row.Country,
		ExternalIDs: externalIDs,
	}, nil
}

type teamInsertModel struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	ShortName   string `db:"short_name"`
	City        string `db:"city"`
	Country     string `db:"country"`
	ExternalIDs string `db:"external_ids"`
}

func teamToInsertModel(t team.Team) (teamInsertModel, error) {
	externalIDs, err := encodeExternalIDs(t.ExternalIDs)
	if err != nil {
		return teamInsertModel{}, fmt.Errorf("team %s: %w", t.ID, err)
	}
	return teamInsertModel{
		ID:          t.ID,
		Name:        t.Name,
		ShortName:   t.ShortName,
		City:        t.City,
		Country:     t.Country,
		ExternalIDs: externalIDs,
	}, nil
}
