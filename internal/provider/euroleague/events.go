package euroleague

import (
	"strings"

	"github.com/courtdata/courtsync/internal/domain/canonical"
	"github.com/courtdata/courtsync/internal/provider"
)

// playTypeTable maps the feed's mnemonic playtype codes to canonical event
// types. Codes the pipeline does not track (game bookkeeping like "BG"/"EG",
// the aggregate "AG" block-against mirror rows) are intentionally absent:
// lookups for them return Known=false and the caller skips the play.
var playTypeTable = map[string]provider.EventMapping{
	"2FGM":  shot(canonical.ShotTwoPointer, true),
	"2FGA":  shot(canonical.ShotTwoPointer, false),
	"2FGAB": shot(canonical.ShotTwoPointer, false),
	"3FGM":  shot(canonical.ShotThreePointer, true),
	"3FGA":  shot(canonical.ShotThreePointer, false),
	"3FGAB": shot(canonical.ShotThreePointer, false),
	"DUNK":  shot(canonical.ShotDunk, true),
	"LAYUPMD": shot(canonical.ShotLayup, true),
	"LAYUPATT": shot(canonical.ShotLayup, false),

	"FTM": freeThrow(true),
	"FTA": freeThrow(false),

	"O": rebound(canonical.ReboundOffensive),
	"D": rebound(canonical.ReboundDefensive),

	"AS": {Known: true, Type: canonical.EventAssist},
	"ST": {Known: true, Type: canonical.EventSteal},
	"FV": {Known: true, Type: canonical.EventBlock},

	"TO":  turnover(canonical.TurnoverOther),
	"BP":  turnover(canonical.TurnoverBadPass),
	"BH":  turnover(canonical.TurnoverBallHandling),
	"TW":  turnover(canonical.TurnoverTravel),
	"OB":  turnover(canonical.TurnoverOutOfBounds),
	"24S": turnover(canonical.TurnoverShotClock),

	"CM":  foul(canonical.FoulPersonal),
	"OF":  foul(canonical.FoulOffensive),
	"T":   foul(canonical.FoulTechnical),
	"U":   foul(canonical.FoulUnsportsman),
	"B":   foul(canonical.FoulDisqualified),
	"RV":  foul(canonical.FoulDrawn),

	"IN":   {Known: true, Type: canonical.EventSubstitution},
	"OUT":  {Known: true, Type: canonical.EventSubstitution},
	"TOUT": {Known: true, Type: canonical.EventTimeout},
	"JB":   {Known: true, Type: canonical.EventJumpBall},
	"BGP":  {Known: true, Type: canonical.EventPeriodStart},
	"EGP":  {Known: true, Type: canonical.EventPeriodEnd},
}

func (c *Converter) MapEventType(raw string) provider.EventMapping {
	mapping, ok := playTypeTable[strings.ToUpper(strings.TrimSpace(raw))]
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
