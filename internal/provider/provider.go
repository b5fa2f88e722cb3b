// Package provider defines the adapter contract every data source implements.
// Each source package (euroleague, winnerleague) maps its raw feed records
// into the canonical entities; downstream components never see a provider
// field name. Adding a source means one new package satisfying Converter.
package provider

import (
	crerr "github.com/cockroachdb/errors"

	"github.com/courtdata/courtsync/internal/domain/canonical"
)

// Record is one raw provider record: a decoded string-keyed document.
type Record map[string]any

// ErrConversion marks records that cannot be mapped into canonical form at
// all: a missing identifying field, an unparseable game date, an
// unrecognizable top-level shape. Optional bio fields never raise it.
var ErrConversion = crerr.New("conversion failed")

// Conversionf builds a conversion error for source, carrying the record kind.
func Conversionf(source, format string, args ...any) error {
	return crerr.Mark(crerr.Newf("%s: "+format, append([]any{source}, args...)...), ErrConversion)
}

// IsConversion reports whether err is a conversion failure.
func IsConversion(err error) bool {
	return crerr.Is(err, ErrConversion)
}

// EventMapping is the outcome of looking up a provider event code. Unknown
// codes yield Known=false and the caller skips the event; providers emit
// plenty of bookkeeping codes the pipeline does not track.
type EventMapping struct {
	Known        bool
	Type         canonical.EventType
	ShotType     *canonical.ShotType
	ReboundType  *canonical.ReboundType
	FoulType     *canonical.FoulType
	TurnoverType *canonical.TurnoverType
	Success      *bool
}

// Converter is the per-source adapter. Implementations are stateless pure
// transformations over a single Record and are safe to call concurrently.
type Converter interface {
	// Source names the provider, used as the key in external-id side-maps.
	Source() string

	// ConvertPlayer fails only when no usable external id is present;
	// unparseable bio fields degrade to absent values.
	ConvertPlayer(raw Record) (canonical.Player, error)
	// MapPositions translates provider position vocabulary, including
	// compound codes like "G-F". Unknown input yields an empty list.
	MapPositions(raw string) []canonical.Position
	// ConvertTeam fails when the external id or name is missing.
	ConvertTeam(raw Record) (canonical.Team, error)
	// ConvertGame fails when the external id, either team id or a parseable
	// date is missing.
	ConvertGame(raw Record) (canonical.Game, error)
	// ConvertPlayerStats converts minutes to seconds and folds the two and
	// three point splits into the field-goal totals.
	ConvertPlayerStats(raw Record) (canonical.PlayerStats, error)
	// ParseMinutesToSeconds accepts "MM:SS", integer minutes, the provider's
	// did-not-play token and nil/blank (all of the latter map to 0).
	ParseMinutesToSeconds(raw any) int
	// ConvertPBPEvent returns (nil, nil) for event codes the pipeline does
	// not track.
	ConvertPBPEvent(raw Record) (*canonical.PBPEvent, error)
	// MapEventType is the provider's static event-code table.
	MapEventType(raw string) EventMapping
	// ConvertSeason fails when no external id is derivable; a missing name
	// is synthesized from the start year.
	ConvertSeason(raw Record) (canonical.Season, error)
}
