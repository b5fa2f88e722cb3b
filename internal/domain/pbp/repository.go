package pbp

import "context"

// Repository describes play-by-play persistence needs from use cases.
type Repository interface {
	ListByGame(ctx context.Context, gameID string) ([]Event, error)
	// ReplaceForGame swaps the stored event log for gameID.
	ReplaceForGame(ctx context.Context, gameID string, events []Event) error
}
