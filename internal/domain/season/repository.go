package season

import "context"

// Repository describes season persistence needs from use cases.
type Repository interface {
	GetByExternalID(ctx context.Context, source, externalID string) (*Season, error)
	List(ctx context.Context) ([]Season, error)
	Create(ctx context.Context, s Season) error
	Update(ctx context.Context, s Season) error
}
