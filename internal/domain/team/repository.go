package team

import "context"

// Repository describes team and roster persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Team, error)
	GetByExternalID(ctx context.Context, source, externalID string) (*Team, error)
	ListAll(ctx context.Context) ([]Team, error)
	// ListIncomplete returns teams with an empty name or short name.
	ListIncomplete(ctx context.Context, source string) ([]Team, error)
	Create(ctx context.Context, t Team) error
	Update(ctx context.Context, t Team) error

	// ListMemberIDs returns the player ids on teamID's roster.
	ListMemberIDs(ctx context.Context, teamID string) ([]string, error)
	// AddMember records the membership; adding twice is a no-op.
	AddMember(ctx context.Context, m Membership) error
}
