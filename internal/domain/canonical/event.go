package canonical

// EventType classifies a play-by-play action.
type EventType string

const (
	EventShot         EventType = "SHOT"
	EventFreeThrow    EventType = "FREE_THROW"
	EventRebound      EventType = "REBOUND"
	EventAssist       EventType = "ASSIST"
	EventTurnover     EventType = "TURNOVER"
	EventSteal        EventType = "STEAL"
	EventBlock        EventType = "BLOCK"
	EventFoul         EventType = "FOUL"
	EventSubstitution EventType = "SUBSTITUTION"
	EventTimeout      EventType = "TIMEOUT"
	EventJumpBall     EventType = "JUMP_BALL"
	EventPeriodStart  EventType = "PERIOD_START"
	EventPeriodEnd    EventType = "PERIOD_END"
)

// ShotType subtypes EventShot and EventFreeThrow attempts.
type ShotType string

const (
	ShotTwoPointer   ShotType = "TWO_POINTER"
	ShotThreePointer ShotType = "THREE_POINTER"
	ShotDunk         ShotType = "DUNK"
	ShotLayup        ShotType = "LAYUP"
	ShotFreeThrow    ShotType = "FREE_THROW"
)

// ReboundType subtypes EventRebound.
type ReboundType string

const (
	ReboundOffensive ReboundType = "OFFENSIVE"
	ReboundDefensive ReboundType = "DEFENSIVE"
	ReboundTeam      ReboundType = "TEAM"
)

// FoulType subtypes EventFoul.
type FoulType string

const (
	FoulPersonal     FoulType = "PERSONAL"
	FoulOffensive    FoulType = "OFFENSIVE"
	FoulTechnical    FoulType = "TECHNICAL"
	FoulUnsportsman  FoulType = "UNSPORTSMANLIKE"
	FoulDisqualified FoulType = "DISQUALIFYING"
	FoulDrawn        FoulType = "DRAWN"
)

// TurnoverType subtypes EventTurnover.
type TurnoverType string

const (
	TurnoverBadPass       TurnoverType = "BAD_PASS"
	TurnoverBallHandling  TurnoverType = "BALL_HANDLING"
	TurnoverTravel        TurnoverType = "TRAVEL"
	TurnoverOutOfBounds   TurnoverType = "OUT_OF_BOUNDS"
	TurnoverOffensiveFoul TurnoverType = "OFFENSIVE_FOUL"
	TurnoverShotClock     TurnoverType = "SHOT_CLOCK"
	TurnoverOther         TurnoverType = "OTHER"
)
