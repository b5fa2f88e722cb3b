// Package euroleague adapts the Euroleague feed format. Game codes embed the
// season ("E2024_1" is game 1 of season E2024), minutes come as "MM:SS" with
// a "DNP" sentinel, and play-by-play actions use mnemonic playtype codes.
package euroleague

import (
	"strconv"
	"strings"
	"time"

	"github.com/courtdata/courtsync/internal/domain/canonical"
	"github.com/courtdata/courtsync/internal/provider"
)

// SourceName keys the external-id side-maps for this provider.
const SourceName = "euroleague"

const didNotPlayToken = "DNP"

type Converter struct{}

func New() *Converter { return &Converter{} }

func (c *Converter) Source() string { return SourceName }

func (c *Converter) ConvertPlayer(raw provider.Record) (canonical.Player, error) {
	externalID := provider.FirstString(raw, "code", "player_code", "Player_ID")
	if externalID == "" {
		return canonical.Player{}, provider.Conversionf(SourceName, "player record has no code")
	}

	first, last := splitFeedName(provider.FirstString(raw, "name", "Player"))
	if explicit := provider.String(raw, "first_name"); explicit != "" {
		first = explicit
	}
	if explicit := provider.String(raw, "last_name"); explicit != "" {
		last = explicit
	}

	out := canonical.Player{
		ExternalID: externalID,
		Source:     SourceName,
		FirstName:  first,
		LastName:   last,
		Positions:  c.MapPositions(provider.FirstString(raw, "position", "position_name")),
	}

	if h, ok := canonical.ParseHeight(raw["height"]); ok {
		out.Height = &h
	}
	if born, ok := canonical.ParseBirthDate(raw["birthdate"]); ok {
		out.BirthDate = &born
	} else if born, ok := canonical.ParseBirthDate(raw["birth_date"]); ok {
		out.BirthDate = &born
	}
	if nat, ok := canonical.ParseNationality(provider.FirstString(raw, "country", "country_name", "nationality")); ok {
		out.Nationality = &nat
	}
	if jersey, ok := provider.Int(raw, "dorsal"); ok && jersey >= 0 {
		out.JerseyNumber = &jersey
	}

	return out, nil
}

// positionTable covers the feed's numeric roles and English role names.
var positionTable = map[string][]canonical.Position{
	"guard":          {canonical.PositionGuard},
	"forward":        {canonical.PositionForward},
	"center":         {canonical.PositionCenter},
	"point guard":    {canonical.PositionPointGuard},
	"shooting guard": {canonical.PositionShootingGuard},
	"small forward":  {canonical.PositionSmallForward},
	"power forward":  {canonical.PositionPowerForward},
	"g":              {canonical.PositionGuard},
	"f":              {canonical.PositionForward},
	"c":              {canonical.PositionCenter},
	"g-f":            {canonical.PositionGuard, canonical.PositionForward},
	"f-g":            {canonical.PositionForward, canonical.PositionGuard},
	"f-c":            {canonical.PositionForward, canonical.PositionCenter},
	"c-f":            {canonical.PositionCenter, canonical.PositionForward},
	"1":              {canonical.PositionPointGuard},
	"2":              {canonical.PositionShootingGuard},
	"3":              {canonical.PositionSmallForward},
	"4":              {canonical.PositionPowerForward},
	"5":              {canonical.PositionCenter},
}

func (c *Converter) MapPositions(raw string) []canonical.Position {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return []canonical.Position{}
	}
	if mapped, ok := positionTable[value]; ok {
		out := make([]canonical.Position, len(mapped))
		copy(out, mapped)
		return out
	}
	return canonical.ParsePositions(value)
}

func (c *Converter) ConvertTeam(raw provider.Record) (canonical.Team, error) {
	externalID := provider.FirstString(raw, "code", "club_code", "tv_code")
	if externalID == "" {
		return canonical.Team{}, provider.Conversionf(SourceName, "team record has no code")
	}
	name := provider.FirstString(raw, "name", "club_name")
	if name == "" {
		return canonical.Team{}, provider.Conversionf(SourceName, "team %s has no name", externalID)
	}

	return canonical.Team{
		ExternalID: externalID,
		Source:     SourceName,
		Name:       name,
		ShortName:  provider.FirstString(raw, "abbreviated_name", "tv_code"),
		City:       provider.String(raw, "city"),
		Country:    provider.String(raw, "country"),
	}, nil
}

func (c *Converter) ConvertGame(raw provider.Record) (canonical.Game, error) {
	externalID := provider.FirstString(raw, "gamecode", "game_code", "code")
	if externalID == "" {
		return canonical.Game{}, provider.Conversionf(SourceName, "game record has no gamecode")
	}

	home := provider.FirstString(raw, "local_club", "home_code", "codeteam_a")
	away := provider.FirstString(raw, "road_club", "away_code", "codeteam_b")
	if home == "" || away == "" {
		return canonical.Game{}, provider.Conversionf(SourceName, "game %s is missing team codes", externalID)
	}

	date, ok := parseGameDate(provider.FirstString(raw, "date", "game_date"))
	if !ok {
		return canonical.Game{}, provider.Conversionf(SourceName, "game %s has no parseable date", externalID)
	}

	out := canonical.Game{
		ExternalID:       externalID,
		Source:           SourceName,
		SeasonExternalID: seasonFromGameCode(externalID, provider.String(raw, "season_code")),
		HomeTeamExternal: home,
		AwayTeamExternal: away,
		Date:             date,
		Venue:            provider.FirstString(raw, "stadium", "venue"),
		HomeScore:        provider.IntPtr(raw, "score_local"),
		AwayScore:        provider.IntPtr(raw, "score_road"),
	}

	status, hasStatus := canonical.ParseGameStatus(provider.FirstString(raw, "status", "state"))
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

// seasonFromGameCode strips the game number off "E2024_1". The explicit
// season field wins only when the gamecode carries no separator.
func seasonFromGameCode(gameCode, explicit string) string {
	if idx := strings.IndexByte(gameCode, '_'); idx > 0 {
		return gameCode[:idx]
	}
	return explicit
}

var gameDateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
	"02/01/2006",
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
	playerID := provider.FirstString(raw, "player_code", "Player_ID", "code")
	if playerID == "" {
		return canonical.PlayerStats{}, provider.Conversionf(SourceName, "stat line has no player code")
	}
	gameID := provider.FirstString(raw, "gamecode", "game_code")
	if gameID == "" {
		return canonical.PlayerStats{}, provider.Conversionf(SourceName, "stat line for %s has no gamecode", playerID)
	}

	twoMade := provider.IntOr(raw, "fieldgoals_made_2", 0)
	twoAtt := provider.IntOr(raw, "fieldgoals_attempted_2", 0)
	threeMade := provider.IntOr(raw, "fieldgoals_made_3", 0)
	threeAtt := provider.IntOr(raw, "fieldgoals_attempted_3", 0)

	return canonical.PlayerStats{
		PlayerExternalID:  playerID,
		TeamExternalID:    provider.FirstString(raw, "team_code", "codeteam"),
		GameExternalID:    gameID,
		Source:            SourceName,
		SecondsPlayed:     c.ParseMinutesToSeconds(raw["minutes"]),
		Points:            provider.IntOr(raw, "points", 0),
		FieldGoalsMade:    twoMade + threeMade,
		FieldGoalsAtt:     twoAtt + threeAtt,
		TwoPointersMade:   twoMade,
		TwoPointersAtt:    twoAtt,
		ThreePointersMade: threeMade,
		ThreePointersAtt:  threeAtt,
		FreeThrowsMade:    provider.IntOr(raw, "freethrows_made", 0),
		FreeThrowsAtt:     provider.IntOr(raw, "freethrows_attempted", 0),
		OffensiveRebounds: provider.IntOr(raw, "offensive_rebounds", 0),
		DefensiveRebounds: provider.IntOr(raw, "defensive_rebounds", 0),
		Assists:           provider.IntOr(raw, "assistances", 0),
		Turnovers:         provider.IntOr(raw, "turnovers", 0),
		Steals:            provider.IntOr(raw, "steals", 0),
		Blocks:            provider.IntOr(raw, "blocks_favour", 0),
		Fouls:             provider.IntOr(raw, "fouls_commited", 0),
		PlusMinus:         provider.IntOr(raw, "plusminus", 0),
	}, nil
}

// ParseMinutesToSeconds handles "MM:SS", whole minutes and the DNP sentinel.
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
		if value == "" || strings.EqualFold(value, didNotPlayToken) {
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
	gameID := provider.FirstString(raw, "gamecode", "game_code")
	if gameID == "" {
		return nil, provider.Conversionf(SourceName, "play record has no gamecode")
	}

	mapping := c.MapEventType(provider.FirstString(raw, "playtype", "play_type"))
	if !mapping.Known {
		return nil, nil
	}

	event := &canonical.PBPEvent{
		GameExternalID: gameID,
		Source:         SourceName,
		EventNumber:    provider.IntOr(raw, "numberofplay", 0),
		Period:         provider.IntOr(raw, "period", 1),
		ClockSeconds:   markerToSeconds(provider.String(raw, "markertime")),
		Type:           mapping.Type,
		ShotType:       mapping.ShotType,
		ReboundType:    mapping.ReboundType,
		FoulType:       mapping.FoulType,
		TurnoverType:   mapping.TurnoverType,
		PlayerExternal: provider.FirstString(raw, "player_code", "Player_ID"),
		TeamExternal:   provider.FirstString(raw, "team_code", "codeteam"),
		Success:        mapping.Success,
	}
	if x, ok := provider.Float(raw, "coord_x"); ok {
		event.CoordX = &x
	}
	if y, ok := provider.Float(raw, "coord_y"); ok {
		event.CoordY = &y
	}
	if related, ok := provider.Int(raw, "related_play"); ok && related > 0 {
		event.RelatedEvents = []int{related}
	}

	return event, nil
}

// markerToSeconds converts the "MM:SS" clock (time remaining in the period).
func markerToSeconds(raw string) int {
	mm, ss, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return 0
	}
	minutes, errM := strconv.Atoi(strings.TrimSpace(mm))
	seconds, errS := strconv.Atoi(strings.TrimSpace(ss))
	if errM != nil || errS != nil || minutes < 0 || seconds < 0 || seconds > 59 {
		return 0
	}
	return minutes*60 + seconds
}

func (c *Converter) ConvertSeason(raw provider.Record) (canonical.Season, error) {
	externalID := provider.FirstString(raw, "season_code", "code")
	if externalID == "" {
		return canonical.Season{}, provider.Conversionf(SourceName, "season record has no code")
	}

	out := canonical.Season{
		ExternalID: externalID,
		Source:     SourceName,
	}

	if name := provider.String(raw, "name"); name != "" {
		parsed, err := canonical.NewSeasonName(name)
		if err != nil {
			return canonical.Season{}, provider.Conversionf(SourceName, "season %s name %q: %v", externalID, name, err)
		}
		out.Name = parsed
	} else {
		year, ok := provider.Int(raw, "year")
		if !ok {
			year, ok = yearFromSeasonCode(externalID)
		}
		if !ok {
			return canonical.Season{}, provider.Conversionf(SourceName, "season %s has no name or start year", externalID)
		}
		name, err := canonical.SeasonNameFromStartYear(year)
		if err != nil {
			return canonical.Season{}, provider.Conversionf(SourceName, "season %s start year %d: %v", externalID, year, err)
		}
		out.Name = name
	}

	if start, ok := parseGameDate(provider.String(raw, "start_date")); ok {
		out.StartDate = &start
	}
	if end, ok := parseGameDate(provider.String(raw, "end_date")); ok {
		out.EndDate = &end
	}
	if current, ok := provider.Bool(raw, "is_current"); ok {
		out.IsCurrent = current
	}

	return out, nil
}

// yearFromSeasonCode pulls the year out of codes like "E2024".
func yearFromSeasonCode(code string) (int, bool) {
	trimmed := strings.TrimLeft(code, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	year, err := strconv.Atoi(trimmed)
	if err != nil || year < 1900 || year > 2100 {
		return 0, false
	}
	return year, true
}

// splitFeedName handles the feed's "LAST, FIRST" convention; a name without
// a comma splits on the last space instead.
func splitFeedName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	if lastPart, firstPart, ok := strings.Cut(full, ","); ok {
		return titleCase(strings.TrimSpace(firstPart)), titleCase(strings.TrimSpace(lastPart))
	}
	if idx := strings.LastIndexByte(full, ' '); idx > 0 {
		return full[:idx], full[idx+1:]
	}
	return "", full
}

// titleCase lowercases an all-caps feed surname, keeping the leading capital
// of each word.
func titleCase(value string) string {
	words := strings.Fields(strings.ToLower(value))
	for i, word := range words {
		runes := []rune(word)
		if len(runes) > 0 {
			words[i] = strings.ToUpper(string(runes[0])) + string(runes[1:])
		}
	}
	return strings.Join(words, " ")
}

func maxZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
