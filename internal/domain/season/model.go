package season

import (
	"fmt"
	"time"

	"github.com/courtdata/courtsync/internal/domain/canonical"
)

// Season is a stored season with its per-source external-id side-map.
type Season struct {
	ID          string
	Name        canonical.SeasonName
	StartDate   *time.Time
	EndDate     *time.Time
	IsCurrent   bool
	ExternalIDs map[string]string
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if _, err := canonical.NewSeasonName(string(s.Name)); err != nil {
		return fmt.Errorf("invalid season name: %w", err)
	}
	return nil
}

func (s Season) ExternalIDFor(source string) (string, bool) {
	id, ok := s.ExternalIDs[source]
	return id, ok
}

func (s *Season) MergeExternalID(source, externalID string) bool {
	if source == "" || externalID == "" {
		return false
	}
	if s.ExternalIDs == nil {
		s.ExternalIDs = make(map[string]string, 1)
	}
	if _, exists := s.ExternalIDs[source]; exists {
		return false
	}
	s.ExternalIDs[source] = externalID
	return true
}
