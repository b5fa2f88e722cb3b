package canonical

import (
	"strings"
	"time"
)

// Entities in this file are the source-agnostic records every converter
// produces. They are transient: a converter builds one per raw record, the
// resolver or sync tracker maps it onto a stored row, and the value is
// discarded. Optional bio fields are pointers, never sentinel values.

// Player is a converted player record from one source.
type Player struct {
	ExternalID   string
	Source       string
	FirstName    string
	LastName     string
	Positions    []Position
	Height       *Height
	BirthDate    *time.Time
	Nationality  *Nationality
	JerseyNumber *int
}

// FullName joins first and last name with a single space.
func (p Player) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// NormalizedName is the case-folded, whitespace-collapsed full name used for
// entity resolution.
func (p Player) NormalizedName() string {
	return NormalizeName(p.FullName())
}

// AddPosition appends pos unless it is already present, preserving order.
func (p *Player) AddPosition(pos Position) {
	for _, existing := range p.Positions {
		if existing == pos {
			return
		}
	}
	p.Positions = append(p.Positions, pos)
}

// NormalizeName lowercases a name and collapses runs of whitespace so that
// "Scottie  Wilbekin" and "scottie wilbekin" compare equal.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Team is a converted team record from one source.
type Team struct {
	ExternalID string
	Source     string
	Name       string
	ShortName  string
	City       string
	Country    string
}

// Game is a converted game record from one source. Scores are present iff the
// status reflects a live or finished game; converters enforce that, not the
// type.
type Game struct {
	ExternalID       string
	Source           string
	SeasonExternalID string
	HomeTeamExternal string
	AwayTeamExternal string
	Date             time.Time
	Status           GameStatus
	HomeScore        *int
	AwayScore        *int
	Venue            string
}

// PlayerStats is one player's box-score line for one game. Playing time is
// always seconds; converters own the minutes-to-seconds conversion.
type PlayerStats struct {
	PlayerExternalID  string
	TeamExternalID    string
	GameExternalID    string
	Source            string
	SecondsPlayed     int
	Points            int
	FieldGoalsMade    int
	FieldGoalsAtt     int
	TwoPointersMade   int
	TwoPointersAtt    int
	ThreePointersMade int
	ThreePointersAtt  int
	FreeThrowsMade    int
	FreeThrowsAtt     int
	OffensiveRebounds int
	DefensiveRebounds int
	Assists           int
	Turnovers         int
	Steals            int
	Blocks            int
	Fouls             int
	PlusMinus         int
}

// TotalRebounds derives the combined rebound count.
func (s PlayerStats) TotalRebounds() int {
	return s.OffensiveRebounds + s.DefensiveRebounds
}

// PBPEvent is one converted play-by-play action. ClockSeconds counts down:
// it is the time remaining in the period. Exactly one of the subtype fields
// is set, matching Type.
type PBPEvent struct {
	GameExternalID string
	Source         string
	EventNumber    int
	Period         int
	ClockSeconds   int
	Type           EventType
	ShotType       *ShotType
	ReboundType    *ReboundType
	FoulType       *FoulType
	TurnoverType   *TurnoverType
	PlayerExternal string
	TeamExternal   string
	Success        *bool
	CoordX         *float64
	CoordY         *float64
	RelatedEvents  []int
}

// Season is a converted season record from one source.
type Season struct {
	ExternalID string
	Source     string
	Name       SeasonName
	StartDate  *time.Time
	EndDate    *time.Time
	IsCurrent  bool
}
