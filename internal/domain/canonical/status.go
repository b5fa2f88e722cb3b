package canonical

import (
	"strings"
)

// GameStatus is the canonical lifecycle state of a game.
type GameStatus string

const (
	GameScheduled GameStatus = "SCHEDULED"
	GameLive      GameStatus = "LIVE"
	GameFinal     GameStatus = "FINAL"
	GamePostponed GameStatus = "POSTPONED"
	GameCancelled GameStatus = "CANCELLED"
)

var AllGameStatuses = map[GameStatus]struct{}{
	GameScheduled: {},
	GameLive:      {},
	GameFinal:     {},
	GamePostponed: {},
	GameCancelled: {},
}

var gameStatusTable = map[string]GameStatus{
	"scheduled": GameScheduled, "sched": GameScheduled, "upcoming": GameScheduled,
	"not started": GameScheduled, "ns": GameScheduled, "pre": GameScheduled,
	"pregame": GameScheduled, "tbd": GameScheduled,

	"live": GameLive, "in progress": GameLive, "inprogress": GameLive,
	"playing": GameLive, "ongoing": GameLive, "halftime": GameLive, "ht": GameLive,
	"q1": GameLive, "q2": GameLive, "q3": GameLive, "q4": GameLive, "ot": GameLive,

	"final": GameFinal, "finished": GameFinal, "ended": GameFinal, "complete": GameFinal,
	"completed": GameFinal, "ft": GameFinal, "aot": GameFinal, "after overtime": GameFinal,
	"closed": GameFinal, "result": GameFinal, "played": GameFinal, "off": GameFinal,
	"forfeit": GameFinal, "awarded": GameFinal,

	"postponed": GamePostponed, "pst": GamePostponed, "susp": GamePostponed,
	"suspended": GamePostponed, "delayed": GamePostponed, "rescheduled": GamePostponed,

	"cancelled": GameCancelled, "canceled": GameCancelled, "cnl": GameCancelled,
	"abandoned": GameCancelled, "abd": GameCancelled,
}

// ParseGameStatus collapses provider status spellings into the five canonical
// statuses. Unrecognized input yields no value.
func ParseGameStatus(raw string) (GameStatus, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "", false
	}
	status, ok := gameStatusTable[value]
	return status, ok
}
