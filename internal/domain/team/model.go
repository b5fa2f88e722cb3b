package team

import "fmt"

// Team is a stored team with its per-source external-id side-map.
type Team struct {
	ID          string
	Name        string
	ShortName   string
	City        string
	Country     string
	ExternalIDs map[string]string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}

// IsComplete reports whether both display fields are filled in.
func (t Team) IsComplete() bool {
	return t.Name != "" && t.ShortName != ""
}

func (t Team) ExternalIDFor(source string) (string, bool) {
	id, ok := t.ExternalIDs[source]
	return id, ok
}

func (t *Team) MergeExternalID(source, externalID string) bool {
	if source == "" || externalID == "" {
		return false
	}
	if t.ExternalIDs == nil {
		t.ExternalIDs = make(map[string]string, 1)
	}
	if _, exists := t.ExternalIDs[source]; exists {
		return false
	}
	t.ExternalIDs[source] = externalID
	return true
}

// Membership links a player to a team roster. The resolver uses it to scope
// name matching to one roster.
type Membership struct {
	TeamID   string
	PlayerID string
}
