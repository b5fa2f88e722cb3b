package canonical

import (
	"strings"
)

// Position is a canonical playing position. G and F are generic fallbacks for
// sources that do not distinguish guard or forward roles.
type Position string

const (
	PositionPointGuard    Position = "PG"
	PositionShootingGuard Position = "SG"
	PositionSmallForward  Position = "SF"
	PositionPowerForward  Position = "PF"
	PositionCenter        Position = "C"
	PositionGuard         Position = "G"
	PositionForward       Position = "F"
)

var AllPositions = map[Position]struct{}{
	PositionPointGuard:    {},
	PositionShootingGuard: {},
	PositionSmallForward:  {},
	PositionPowerForward:  {},
	PositionCenter:        {},
	PositionGuard:         {},
	PositionForward:       {},
}

var positionTable = map[string]Position{
	"pg": PositionPointGuard, "point guard": PositionPointGuard, "point": PositionPointGuard,
	"playmaker": PositionPointGuard, "1": PositionPointGuard, "רכז": PositionPointGuard,

	"sg": PositionShootingGuard, "shooting guard": PositionShootingGuard,
	"2": PositionShootingGuard, "קלע": PositionShootingGuard,

	"sf": PositionSmallForward, "small forward": PositionSmallForward,
	"3": PositionSmallForward, "כנף": PositionSmallForward,

	"pf": PositionPowerForward, "power forward": PositionPowerForward,
	"4": PositionPowerForward, "פוראוורד": PositionPowerForward,

	"c": PositionCenter, "center": PositionCenter, "centre": PositionCenter,
	"pivot": PositionCenter, "5": PositionCenter, "סנטר": PositionCenter,

	"g": PositionGuard, "guard": PositionGuard, "גארד": PositionGuard,

	"f": PositionForward, "forward": PositionForward, "wing": PositionForward,
}

// ParsePosition resolves one position token case-insensitively.
func ParsePosition(raw string) (Position, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "", false
	}
	pos, ok := positionTable[value]
	return pos, ok
}

// ParsePositions splits raw on "-", "/" and ",", parses each token and drops
// the ones the table does not know. Duplicates collapse to the first
// occurrence so order is preserved. All-unknown input yields an empty list.
func ParsePositions(raw string) []Position {
	out := make([]Position, 0, 2)
	if strings.TrimSpace(raw) == "" {
		return out
	}

	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '-' || r == '/' || r == ','
	})

	seen := make(map[Position]struct{}, len(tokens))
	for _, token := range tokens {
		pos, ok := ParsePosition(token)
		if !ok {
			continue
		}
		if _, dup := seen[pos]; dup {
			continue
		}
		seen[pos] = struct{}{}
		out = append(out, pos)
	}

	return out
}
