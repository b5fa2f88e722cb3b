package winnerleague

import (
	"strings"

	"github.com/courtdata/courtsync/internal/domain/canonical"
	"github.com/courtdata/courtsync/internal/provider"
)

// actionTable maps the feed's numeric action codes. Broadcast and derived
// markers (score updates, possession arrows) are absent on purpose; lookups
// for them return Known=false and the play is skipped.
var actionTable = map[string]provider.EventMapping{
	"1":  shot(canonical.ShotTwoPointer, true),
	"2":  shot(canonical.ShotTwoPointer, false),
	"3":  shot(canonical.ShotThreePointer, true),
	"4":  shot(canonical.ShotThreePointer, false),
	"5":  freeThrow(true),
	"6":  freeThrow(false),
	"7":  rebound(canonical.ReboundOffensive),
	"8":  rebound(canonical.ReboundDefensive),
	"9":  rebound(canonical.ReboundTeam),
	"10": {Known: true, Type: canonical.EventAssist},
	"11": turnover(canonical.TurnoverOther),
	"12": {Known: true, Type: canonical.EventSteal},
	"13": {Known: true, Type: canonical.EventBlock},
	"14": foul(canonical.FoulPersonal),
	"15": foul(canonical.FoulTechnical),
	"16": foul(canonical.FoulUnsportsman),
	"17": foul(canonical.FoulDrawn),
	"18": {Known: true, Type: canonical.EventSubstitution},
	"19": {Known: true, Type: canonical.EventSubstitution},
	"20": {Known: true, Type: canonical.EventTimeout},
	"21": {Known: true, Type: canonical.EventJumpBall},
	"22": {Known: true, Type: canonical.EventPeriodStart},
	"23": {Known: true, Type: canonical.EventPeriodEnd},
	"24": shot(canonical.ShotDunk, true),
	"25": shot(canonical.ShotLayup, true),
	"26": shot(canonical.ShotLayup, false),
	"27": turnover(canonical.TurnoverBadPass),
	"28": turnover(canonical.TurnoverTravel),
	"29": turnover(canonical.TurnoverShotClock),
}

func (c *Converter) MapEventType(raw string) provider.EventMapping {
	mapping, ok := actionTable[strings.TrimSpace(raw)]
	if !ok {
		return provider.EventMapping{}
	}
	return mapping
}

func shot(kind canonical.ShotType, made bool) provider.EventMapping {
	success := made
	shotType := kind
	return provider.EventMapping{
		Known:    true,
		Type:     canonical.EventShot,
		ShotType: &shotType,
		Success:  &success,
	}
}

func freeThrow(made bool) provider.EventMapping {
	success := made
	shotType := canonical.ShotFreeThrow
	return provider.EventMapping{
		Known:    true,
		Type:     canonical.EventFreeThrow,
		ShotType: &shotType,
		Success:  &success,
	}
}

func rebound(kind canonical.ReboundType) provider.EventMapping {
	reboundType := kind
	return provider.EventMapping{
		Known:       true,
		Type:        canonical.EventRebound,
		ReboundType: &reboundType,
	}
}

func foul(kind canonical.FoulType) provider.EventMapping {
	foulType := kind
	return provider.EventMapping{
		Known:    true,
		Type:     canonical.EventFoul,
		FoulType: &foulType,
	}
}

func turnover(kind canonical.TurnoverType) provider.EventMapping {
	turnoverType := kind
	return provider.EventMapping{
		Known:        true,
		Type:         canonical.EventTurnover,
		TurnoverType: &turnoverType,
	}
}
