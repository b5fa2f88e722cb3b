// Package winnerleague adapts the Israeli Winner League feed. The feed writes
// positions and nationalities in Hebrew, heights in meters, dates day-first,
// and the play-by-play clock counts seconds elapsed in the period rather than
// remaining.
package winnerleague

import (
	"strconv"
	"strings"
	"time"

	"github.com/courtdata/courtsync/internal/domain/canonical"
	"github.com/courtdata/courtsync/internal/provider"
)

// SourceName keys the external-id side-maps for this provider.
const SourceName = "winnerleague"

// didNotPlayToken is the feed's Hebrew "did not play" marker.
const didNotPlayToken = "לא שיחק"

const (
	regulationPeriodSeconds = 600
	overtimePeriodSeconds   = 300
	regulationPeriods       = 4
)

type Converter struct{}

func New() *Converter { return &Converter{} }

func (c *Converter) Source() string { return SourceName }

func (c *Converter) ConvertPlayer(raw provider.Record) (canonical.Player, error) {
	externalID := provider.FirstString(raw, "PlayerId", "Id")
	if externalID == "" {
		return canonical.Player{}, provider.Conversionf(SourceName, "player record has no PlayerId")
	}

	out := canonical.Player{
		ExternalID: externalID,
		Source:     SourceName,
		FirstName:  provider.String(raw, "FirstName"),
		LastName:   provider.String(raw, "LastName"),
		Positions:  c.MapPositions(provider.FirstString(raw, "Pos", "Position")),
	}
	if out.FirstName == "" && out.LastName == "" {
		if first, last := splitDisplayName(provider.String(raw, "Name")); last != "" {
			out.FirstName, out.LastName = first, last
		}
	}

	if h, ok := canonical.ParseHeight(raw["Height"]); ok {
		out.Height = &h
	}
	if born, ok := canonical.ParseBirthDate(raw["BirthDate"]); ok {
		out.BirthDate = &born
	}
	if nat, ok := canonical.ParseNationality(provider.FirstString(raw, "Nationality", "Country")); ok {
		out.Nationality = &nat
	}
	if jersey, ok := provider.Int(raw, "Jersey"); ok && jersey >= 0 {
		out.JerseyNumber = &jersey
	}

	return out, nil
}

// MapPositions understands the feed's Hebrew role names and slash-compound
// forms like "רכז/קלע" alongside the occasional English abbreviation.
func (c *Converter) MapPositions(raw string) []canonical.Position {
	return canonical.ParsePositions(raw)
}

func (c *Converter) ConvertTeam(raw provider.Record) (canonical.Team, error) {
	externalID := provider.FirstString(raw, "TeamId", "Id")
	if externalID == "" {
		return canonical.Team{}, provider.Conversionf(SourceName, "team record has no TeamId")
	}
	name := provider.FirstString(raw, "TeamName", "Name")
	if name == "" {
		return canonical.Team{}, provider.Conversionf(SourceName, "team %s has no name", externalID)
	}

	country := provider.String(raw, "Country")
	if country == "" {
		country = "Israel"
	}

	return canonical.Team{
		ExternalID: externalID,
		Source:     SourceName,
		Name:       name,
		ShortName:  provider.String(raw, "ShortName"),
		City:       provider.String(raw, "City"),
		Country:    country,
	}, nil
}

// statusTable maps the feed's Hebrew game states; English fallbacks go
// through the canonical table.
var statusTable = map[string]canonical.GameStatus{
	"טרם החל":  canonical.GameScheduled,
	"משחק חי":  canonical.GameLive,
	"מחצית":    canonical.GameLive,
	"הסתיים":   canonical.GameFinal,
	"נדחה":     canonical.GamePostponed,
	"בוטל":     canonical.GameCancelled,
	"הופסק":    canonical.GamePostponed,
}

func mapStatus(raw string) (canonical.GameStatus, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}
	if status, ok := statusTable[value]; ok {
		return status, true
	}
	return canonical.ParseGameStatus(value)
}

func (c *Converter) ConvertGame(raw provider.Record) (canonical.Game, error) {
	externalID := provider.FirstString(raw, "GameId", "Id")
	if externalID == "" {
		return canonical.Game{}, provider.Conversionf(SourceName, "game record has no GameId")
	}

	home := provider.String(raw, "HomeTeamId")
	away := provider.String(raw, "AwayTeamId")
	if home == "" || away == "" {
		return canonical.Game{}, provider.Conversionf(SourceName, "game %s is missing team ids", externalID)
	}

	date, ok := parseGameDate(provider.FirstString(raw, "GameDate", "Date"))
	if !ok {
		return canonical.Game{}, provider.Conversionf(SourceName, "game %s has no parseable date", externalID)
	}

	out := canonical.Game{
		ExternalID:       externalID,
		Source:           SourceName,
		SeasonExternalID: provider.FirstString(raw, "SeasonId", "Season"),
		HomeTeamExternal: home,
		AwayTeamExternal: away,
		Date:             date,
		Venue:            provider.String(raw, "Arena"),
		HomeScore:        provider.IntPtr(raw, "HomeScore"),
		AwayScore:        provider.IntPtr(raw, "AwayScore"),
	}

	status, hasStatus := mapStatus(provider.String(raw, "Status"))
	switch {
	case hasStatus:
		out.Status = status
	case out.HomeScore != nil && out.AwayScore != nil:
		out.Status = canonical.GameFinal
	default:
		out.Status = canonical.GameScheduled
	}
	if out.Status == canonical.GameScheduled || out.Status == canonical.GamePostponed || out.Status == canonical.GameCancelled {
		out.HomeScore = nil
		out.AwayScore = nil
	}

	return out, nil
}

var gameDateLayouts = []string{
	"02/01/2006 15:04",
	"02/01/2006",
	"02.01.2006",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseGameDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range gameDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

func (c *Converter) ConvertPlayerStats(raw provider.Record) (canonical.PlayerStats, error) {
	playerID := provider.String(raw, "PlayerId")
	if playerID == "" {
		return canonical.PlayerStats{}, provider.Conversionf(SourceName, "stat line has no PlayerId")
	}
	gameID := provider.String(raw, "GameId")
	if gameID == "" {
		return canonical.PlayerStats{}, provider.Conversionf(SourceName, "stat line for %s has no GameId", playerID)
	}

	twoMade := provider.IntOr(raw, "FG2M", 0)
	twoAtt := provider.IntOr(raw, "FG2A", 0)
	threeMade := provider.IntOr(raw, "FG3M", 0)
	threeAtt := provider.IntOr(raw, "FG3A", 0)

	return canonical.PlayerStats{
		PlayerExternalID:  playerID,
		TeamExternalID:    provider.String(raw, "TeamId"),
		GameExternalID:    gameID,
		Source:            SourceName,
		SecondsPlayed:     c.ParseMinutesToSeconds(raw["Min"]),
		Points:            provider.IntOr(raw, "Pts", 0),
		FieldGoalsMade:    twoMade + threeMade,
		FieldGoalsAtt:     twoAtt + threeAtt,
		TwoPointersMade:   twoMade,
		TwoPointersAtt:    twoAtt,
		ThreePointersMade: threeMade,
		ThreePointersAtt:  threeAtt,
		FreeThrowsMade:    provider.IntOr(raw, "FTM", 0),
		FreeThrowsAtt:     provider.IntOr(raw, "FTA", 0),
		OffensiveRebounds: provider.IntOr(raw, "RebO", 0),
		DefensiveRebounds: provider.IntOr(raw, "RebD", 0),
		Assists:           provider.IntOr(raw, "Ast", 0),
		Turnovers:         provider.IntOr(raw, "To", 0),
		Steals:            provider.IntOr(raw, "Stl", 0),
		Blocks:            provider.IntOr(raw, "Blk", 0),
		Fouls:             provider.IntOr(raw, "Pf", 0),
		PlusMinus:         provider.IntOr(raw, "PlusMinus", 0),
	}, nil
}

// ParseMinutesToSeconds handles "MM:SS", whole minutes and the feed's Hebrew
// did-not-play marker.
func (c *Converter) ParseMinutesToSeconds(raw any) int {
	switch v := raw.(type) {
	case nil:
		return 0
	case int:
		return maxZero(v) * 60
	case int64:
		return maxZero(int(v)) * 60
	case float64:
		return maxZero(int(v)) * 60
	case string:
		value := strings.TrimSpace(v)
		if value == "" || value == didNotPlayToken {
			return 0
		}
		if mm, ss, ok := strings.Cut(value, ":"); ok {
			minutes, errM := strconv.Atoi(strings.TrimSpace(mm))
			seconds, errS := strconv.Atoi(strings.TrimSpace(ss))
			if errM != nil || errS != nil || minutes < 0 || seconds < 0 || seconds > 59 {
				return 0
			}
			return minutes*60 + seconds
		}
		if minutes, err := strconv.Atoi(value); err == nil {
			return maxZero(minutes) * 60
		}
		return 0
	default:
		return 0
	}
}

func (c *Converter) ConvertPBPEvent(raw provider.Record) (*canonical.PBPEvent, error) {
	gameID := provider.String(raw, "GameId")
	if gameID == "" {
		return nil, provider.Conversionf(SourceName, "play record has no GameId")
	}

	mapping := c.MapEventType(provider.FirstString(raw, "ActionType", "Type"))
	if !mapping.Known {
		return nil, nil
	}

	period := provider.IntOr(raw, "Period", 1)
	event := &canonical.PBPEvent{
		GameExternalID: gameID,
		Source:         SourceName,
		EventNumber:    provider.IntOr(raw, "Seq", 0),
		Period:         period,
		ClockSeconds:   remainingSeconds(period, provider.IntOr(raw, "SecondsElapsed", 0)),
		Type:           mapping.Type,
		ShotType:       mapping.ShotType,
		ReboundType:    mapping.ReboundType,
		FoulType:       mapping.FoulType,
		TurnoverType:   mapping.TurnoverType,
		PlayerExternal: provider.String(raw, "PlayerId"),
		TeamExternal:   provider.String(raw, "TeamId"),
		Success:        mapping.Success,
	}
	if x, ok := provider.Float(raw, "LocX"); ok {
		event.CoordX = &x
	}
	if y, ok := provider.Float(raw, "LocY"); ok {
		event.CoordY = &y
	}
	if related, ok := provider.Int(raw, "RelatedSeq"); ok && related > 0 {
		event.RelatedEvents = []int{related}
	}

	return event, nil
}

// remainingSeconds flips the feed's elapsed clock into time remaining.
// Regulation periods run 10 minutes, overtimes 5.
func remainingSeconds(period, elapsed int) int {
	length := regulationPeriodSeconds
	if period > regulationPeriods {
		length = overtimePeriodSeconds
	}
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > length {
		elapsed = length
	}
	return length - elapsed
}

func (c *Converter) ConvertSeason(raw provider.Record) (canonical.Season, error) {
	externalID := provider.FirstString(raw, "SeasonId", "Id")
	if externalID == "" {
		return canonical.Season{}, provider.Conversionf(SourceName, "season record has no SeasonId")
	}

	out := canonical.Season{
		ExternalID: externalID,
		Source:     SourceName,
	}

	if start, ok := parseGameDate(provider.String(raw, "StartDate")); ok {
		out.StartDate = &start
	}
	if end, ok := parseGameDate(provider.String(raw, "EndDate")); ok {
		out.EndDate = &end
	}
	if current, ok := provider.Bool(raw, "IsCurrent"); ok {
		out.IsCurrent = current
	}

	if name := provider.String(raw, "Name"); name != "" {
		parsed, err := canonical.NewSeasonName(name)
		if err != nil {
			return canonical.Season{}, provider.Conversionf(SourceName, "season %s name %q: %v", externalID, name, err)
		}
		out.Name = parsed
		return out, nil
	}

	year := 0
	if y, ok := provider.Int(raw, "StartYear"); ok {
		year = y
	} else if out.StartDate != nil {
		year = out.StartDate.Year()
	}
	if year == 0 {
		return canonical.Season{}, provider.Conversionf(SourceName, "season %s has no name or start year", externalID)
	}
	name, err := canonical.SeasonNameFromStartYear(year)
	if err != nil {
		return canonical.Season{}, provider.Conversionf(SourceName, "season %s start year %d: %v", externalID, year, err)
	}
	out.Name = name

	return out, nil
}

// splitDisplayName splits "First Last" on the final space.
func splitDisplayName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	if idx := strings.LastIndexByte(full, ' '); idx > 0 {
		return full[:idx], full[idx+1:]
	}
	return "", full
}

func maxZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
