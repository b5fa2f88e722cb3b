package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Player, error)
	// GetByExternalID returns the player whose external-id side-map contains
	// (source, externalID), or nil when no such player exists.
	GetByExternalID(ctx context.Context, source, externalID string) (*Player, error)
	ListByNormalizedName(ctx context.Context, normalizedName string) ([]Player, error)
	ListAll(ctx context.Context) ([]Player, error)
	// ListIncomplete returns players missing height, birthdate and positions
	// all at once. source narrows to players mapped for that source; empty
	// means all.
	ListIncomplete(ctx context.Context, source string) ([]Player, error)
	// FilterExistingExternalIDs reports which of externalIDs are already
	// mapped for source, in one query.
	FilterExistingExternalIDs(ctx context.Context, source string, externalIDs []string) (map[string]struct{}, error)
	Create(ctx context.Context, p Player) error
	Update(ctx context.Context, p Player) error
}
