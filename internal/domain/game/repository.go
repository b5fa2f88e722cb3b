package game

import "context"

// Repository describes game persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Game, error)
	GetByExternalID(ctx context.Context, source, externalID string) (*Game, error)
	// FilterExistingExternalIDs reports which of externalIDs already have a
	// stored game mapped for source, in one query.
	FilterExistingExternalIDs(ctx context.Context, source string, externalIDs []string) (map[string]struct{}, error)
	Create(ctx context.Context, g Game) error
	Update(ctx context.Context, g Game) error

	// ListFinalWithoutStats returns FINAL games with no stored stat lines.
	ListFinalWithoutStats(ctx context.Context, source string) ([]Game, error)
	// ListFinalWithoutEvents returns FINAL games with no stored play-by-play rows.
	ListFinalWithoutEvents(ctx context.Context, source string) ([]Game, error)
}
