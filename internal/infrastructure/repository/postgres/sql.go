package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/courtdata/courtsync/internal/domain/canonical"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// encodeExternalIDs renders the side-map as the jsonb column value.
func encodeExternalIDs(ids map[string]string) (string, error) {
	if len(ids) == 0 {
		return "{}", nil
	}
	out, err := sonic.MarshalString(ids)
	if err != nil {
		return "", fmt.Errorf("encode external ids: %w", err)
	}
	return out, nil
}

func decodeExternalIDs(raw []byte) (map[string]string, error) {
	if len(raw) == 0 {
		return map[string]string{}, nil
	}
	out := make(map[string]string)
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode external ids: %w", err)
	}
	return out, nil
}

func encodePositions(positions []canonical.Position) string {
	if len(positions) == 0 {
		return ""
	}
	parts := make([]string, 0, len(positions))
	for _, pos := range positions {
		parts = append(parts, string(pos))
	}
	return strings.Join(parts, ",")
}

func decodePositions(raw string) []canonical.Position {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]canonical.Position, 0, len(parts))
	for _, part := range parts {
		out = append(out, canonical.Position(strings.TrimSpace(part)))
	}
	return out
}

func nullableInt(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

func intFromNull(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	v := int(value.Int64)
	return &v
}

func nullableString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
