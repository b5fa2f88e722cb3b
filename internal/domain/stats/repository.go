package stats

import "context"

// Repository describes stat-line persistence needs from use cases.
type Repository interface {
	ListByGame(ctx context.Context, gameID string) ([]Line, error)
	// UpsertForGame replaces the stat lines stored for gameID.
	UpsertForGame(ctx context.Context, gameID string, lines []Line) error
}
