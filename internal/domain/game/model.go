package game

import (
	"fmt"
	"time"

	"github.com/courtdata/courtsync/internal/domain/canonical"
)

// Game is a stored game row with its per-source external-id side-map.
type Game struct {
	ID          string
	SeasonID    string
	HomeTeamID  string
	AwayTeamID  string
	Date        time.Time
	Status      canonical.GameStatus
	HomeScore   *int
	AwayScore   *int
	Venue       string
	ExternalIDs map[string]string
}

func (g Game) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("game id is required")
	}
	if g.HomeTeamID == "" || g.AwayTeamID == "" {
		return fmt.Errorf("game team ids are required")
	}
	if g.Date.IsZero() {
		return fmt.Errorf("game date is required")
	}
	if _, ok := canonical.AllGameStatuses[g.Status]; !ok {
		return fmt.Errorf("invalid game status: %s", g.Status)
	}
	return nil
}

func (g Game) ExternalIDFor(source string) (string, bool) {
	id, ok := g.ExternalIDs[source]
	return id, ok
}

func (g *Game) MergeExternalID(source, externalID string) bool {
	if source == "" || externalID == "" {
		return false
	}
	if g.ExternalIDs == nil {
		g.ExternalIDs = make(map[string]string, 1)
	}
	if _, exists := g.ExternalIDs[source]; exists {
		return false
	}
	g.ExternalIDs[source] = externalID
	return true
}
