package stats

import "fmt"

// Line is one player's stored box-score line for one game. Playing time is
// kept in seconds; the converters own the unit conversion.
type Line struct {
	ID                string
	GameID            string
	PlayerID          string
	TeamID            string
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

func (l Line) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("stat line id is required")
	}
	if l.GameID == "" || l.PlayerID == "" {
		return fmt.Errorf("stat line game and player ids are required")
	}
	if l.SecondsPlayed < 0 {
		return fmt.Errorf("seconds played cannot be negative")
	}
	return nil
}

func (l Line) TotalRebounds() int {
	return l.OffensiveRebounds + l.DefensiveRebounds
}
