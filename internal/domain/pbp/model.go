package pbp

import (
	"fmt"

	"github.com/courtdata/courtsync/internal/domain/canonical"
)

// Event is one stored play-by-play row. ClockSeconds is time remaining in
// the period. At most one subtype pointer is set, matching Type.
type Event struct {
	ID            string
	GameID        string
	Source        string
	EventNumber   int
	Period        int
	ClockSeconds  int
	Type          canonical.EventType
	ShotType      *canonical.ShotType
	ReboundType   *canonical.ReboundType
	FoulType      *canonical.FoulType
	TurnoverType  *canonical.TurnoverType
	PlayerID      string
	TeamID        string
	Success       *bool
	CoordX        *float64
	CoordY        *float64
	RelatedEvents []int
}

func (e Event) Validate() error {
	if e.ID == "" || e.GameID == "" {
		return fmt.Errorf("event id and game id are required")
	}
	if e.Period < 1 {
		return fmt.Errorf("event period must be positive")
	}
	if e.ClockSeconds < 0 {
		return fmt.Errorf("event clock cannot be negative")
	}
	if e.Type == "" {
		return fmt.Errorf("event type is required")
	}
	return nil
}
