package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtdata/courtsync/internal/domain/rawdata"
	qb "github.com/courtdata/courtsync/internal/platform/querybuilder"
)

type RawDataRepository struct {
	db *sqlx.DB
}

func NewRawDataRepository(db *sqlx.DB) *RawDataRepository {
	return &RawDataRepository{db: db}
}

type rawPayloadInsertModel struct {
	Source     string         `db:"source"`
	EntityType string         `db:"entity_type"`
	EntityKey  string         `db:"entity_key"`
	GameID     sql.NullString `db:"game_id"`
	Payload    string         `db:"payload"`
	Hash       string         `db:"payload_hash"`
	FetchedAt  *time.Time     `db:"fetched_at"`
}

func (r *RawDataRepository) UpsertMany(ctx context.Context, items []rawdata.Payload) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert raw payloads: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		model := rawPayloadInsertModel{
			Source:     item.Source,
			EntityType: item.EntityType,
			EntityKey:  item.EntityKey,
			GameID:     nullableString(item.GameID),
			Payload:    item.JSON,
			Hash:       item.Hash,
			FetchedAt:  item.FetchedAt,
		}

		query, args, err := qb.InsertModel("raw_payloads", model, `ON CONFLICT (source, entity_type, entity_key)
DO UPDATE SET
    game_id = EXCLUDED.game_id,
    payload = EXCLUDED.payload,
    payload_hash = EXCLUDED.payload_hash,
    fetched_at = EXCLUDED.fetched_at`)
		if err != nil {
			return fmt.Errorf("build upsert raw payload query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert raw payload entity=%s key=%s: %w", item.EntityType, item.EntityKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert raw payloads tx: %w", err)
	}
	return nil
}
