package player

import (
	"fmt"
	"time"

	"github.com/courtdata/courtsync/internal/domain/canonical"
)

// Player is a stored, deduplicated player. ExternalIDs is the side-map from
// source name to that source's identifier; it is the only durable state the
// sync pipeline depends on for idempotence.
type Player struct {
	ID           string
	FirstName    string
	LastName     string
	Positions    []canonical.Position
	Height       *canonical.Height
	BirthDate    *time.Time
	Nationality  *canonical.Nationality
	JerseyNumber *int
	ExternalIDs  map[string]string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.FirstName == "" && p.LastName == "" {
		return fmt.Errorf("player name is required")
	}
	for _, pos := range p.Positions {
		if _, ok := canonical.AllPositions[pos]; !ok {
			return fmt.Errorf("invalid player position: %s", pos)
		}
	}
	return nil
}

func (p Player) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

func (p Player) NormalizedName() string {
	return canonical.NormalizeName(p.FullName())
}

// ExternalIDFor looks up the identifier this player has in source, if any.
func (p Player) ExternalIDFor(source string) (string, bool) {
	id, ok := p.ExternalIDs[source]
	return id, ok
}

// MergeExternalID records externalID for source. The merge is additive and
// commutative: repeating it is a no-op and an existing mapping for a
// different source is never touched. An existing mapping for the same source
// is kept as-is rather than overwritten. Reports whether the map changed.
func (p *Player) MergeExternalID(source, externalID string) bool {
	if source == "" || externalID == "" {
		return false
	}
	if p.ExternalIDs == nil {
		p.ExternalIDs = make(map[string]string, 1)
	}
	if _, exists := p.ExternalIDs[source]; exists {
		return false
	}
	p.ExternalIDs[source] = externalID
	return true
}

// HasBio reports whether any of the three bio fields is known. A player with
// at least one of height, birthdate or positions is considered complete.
func (p Player) HasBio() bool {
	return p.Height != nil || p.BirthDate != nil || len(p.Positions) > 0
}
