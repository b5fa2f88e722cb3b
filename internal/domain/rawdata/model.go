package rawdata

import "time"

// Payload is one raw provider document kept for audit and replay.
type Payload struct {
	Source     string
	EntityType string
	EntityKey  string
	GameID     string
	JSON       string
	Hash       string
	FetchedAt  *time.Time
}
