package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/courtdata/courtsync/internal/domain/canonical"
	"github.com/courtdata/courtsync/internal/domain/player"
	"github.com/courtdata/courtsync/internal/domain/team"
	"github.com/courtdata/courtsync/internal/platform/id"
	"github.com/courtdata/courtsync/internal/platform/logging"
	"github.com/courtdata/courtsync/internal/platform/resilience"
)

// heightToleranceCm is the slack allowed when matching players on height:
// listed heights drift a few centimeters between leagues.
const heightToleranceCm = 3

// ResolverService decides whether an incoming converted player refers to an
// already stored player or a new one. The matching strategies run in strict
// precedence order and the first hit wins; no hit means a create, never an
// error.
type ResolverService struct {
	playerRepo player.Repository
	teamRepo   team.Repository
	idGen      id.Generator
	logger     *logging.Logger
	locks      resilience.KeyedMutex
}

func NewResolverService(
	playerRepo player.Repository,
	teamRepo team.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *ResolverService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResolverService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		idGen:      idGen,
		logger:     logger,
	}
}

// Resolve maps cp onto a stored player, creating one when nothing matches.
// teamID optionally scopes the roster-based strategy; pass "" when the team
// context is unknown. The whole read-then-write sequence runs inside a
// per-team critical section so two concurrent resolutions of the same new
// player cannot both miss each other's uncommitted write.
func (s *ResolverService) Resolve(ctx context.Context, cp canonical.Player, teamID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolverService.Resolve")
	defer span.End()

	if cp.ExternalID == "" || cp.Source == "" {
		return player.Player{}, fmt.Errorf("%w: player source and external id are required", ErrInvalidInput)
	}

	lockKey := teamID
	if lockKey == "" {
		lockKey = "global:" + cp.NormalizedName()
	}
	unlock := s.locks.Lock(lockKey)
	defer unlock()

	matchers := []func(context.Context, canonical.Player, string) (*player.Player, error){
		s.matchByExternalID,
		s.matchByTeamRoster,
		s.matchByNameAndBio,
	}
	for _, match := range matchers {
		found, err := match(ctx, cp, teamID)
		if err != nil {
			return player.Player{}, err
		}
		if found == nil {
			continue
		}
		resolved, err := s.absorb(ctx, *found, cp)
		if err != nil {
			return player.Player{}, err
		}
		if err := s.ensureMembership(ctx, teamID, resolved.ID); err != nil {
			return player.Player{}, err
		}
		return resolved, nil
	}

	created, err := s.create(ctx, cp)
	if err != nil {
		return player.Player{}, err
	}
	if err := s.ensureMembership(ctx, teamID, created.ID); err != nil {
		return player.Player{}, err
	}
	s.logger.InfoContext(ctx, "created player",
		"player_id", created.ID,
		"source", cp.Source,
		"external_id", cp.ExternalID,
	)
	return created, nil
}

// matchByExternalID is the exact lookup: the pair is already mapped.
func (s *ResolverService) matchByExternalID(ctx context.Context, cp canonical.Player, _ string) (*player.Player, error) {
	found, err := s.playerRepo.GetByExternalID(ctx, cp.Source, cp.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("lookup player by external id source=%s: %w", cp.Source, err)
	}
	return found, nil
}

// matchByTeamRoster matches the normalized name against the given roster.
// Players already mapped for this source are not candidates: two genuinely
// different players can share a name on one roster, and the mapped one was
// claimed earlier in the same pass.
func (s *ResolverService) matchByTeamRoster(ctx context.Context, cp canonical.Player, teamID string) (*player.Player, error) {
	if teamID == "" {
		return nil, nil
	}

	memberIDs, err := s.teamRepo.ListMemberIDs(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list roster for team=%s: %w", teamID, err)
	}

	want := cp.NormalizedName()
	for _, memberID := range memberIDs {
		candidate, err := s.playerRepo.GetByID(ctx, memberID)
		if err != nil {
			return nil, fmt.Errorf("load roster player %s: %w", memberID, err)
		}
		if candidate == nil {
			continue
		}
		if candidate.NormalizedName() != want {
			continue
		}
		if _, mapped := candidate.ExternalIDFor(cp.Source); mapped {
			continue
		}
		return candidate, nil
	}
	return nil, nil
}

// matchByNameAndBio searches all stored players, covering mid-season
// transfers where no roster link exists yet. A name hit needs exact
// birthdate equality or a height within tolerance; when neither side has
// bio data at all, a single unambiguous same-name candidate is accepted to
// avoid an obvious duplicate.
func (s *ResolverService) matchByNameAndBio(ctx context.Context, cp canonical.Player, _ string) (*player.Player, error) {
	candidates, err := s.playerRepo.ListByNormalizedName(ctx, cp.NormalizedName())
	if err != nil {
		return nil, fmt.Errorf("list players by name: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	for i := range candidates {
		candidate := &candidates[i]
		if cp.BirthDate != nil && candidate.BirthDate != nil && cp.BirthDate.Equal(*candidate.BirthDate) {
			return candidate, nil
		}
		if cp.Height != nil && candidate.Height != nil && absInt(cp.Height.Cm()-candidate.Height.Cm()) <= heightToleranceCm {
			return candidate, nil
		}
	}

	// Weak match: no bio on either side and exactly one candidate.
	if cp.BirthDate == nil && cp.Height == nil && len(candidates) == 1 {
		only := &candidates[0]
		if only.BirthDate == nil && only.Height == nil {
			return only, nil
		}
	}

	return nil, nil
}

// absorb merges the new source mapping (and any bio fields the stored row
// lacks) into matched and persists when something changed. Existing values
// are never overwritten.
func (s *ResolverService) absorb(ctx context.Context, matched player.Player, cp canonical.Player) (player.Player, error) {
	changed := matched.MergeExternalID(cp.Source, cp.ExternalID)

	if matched.Height == nil && cp.Height != nil {
		h := *cp.Height
		matched.Height = &h
		changed = true
	}
	if matched.BirthDate == nil && cp.BirthDate != nil {
		born := *cp.BirthDate
		matched.BirthDate = &born
		changed = true
	}
	if matched.Nationality == nil && cp.Nationality != nil {
		nat := *cp.Nationality
		matched.Nationality = &nat
		changed = true
	}
	if len(matched.Positions) == 0 && len(cp.Positions) > 0 {
		matched.Positions = append([]canonical.Position(nil), cp.Positions...)
		changed = true
	}

	if !changed {
		return matched, nil
	}
	if err := s.playerRepo.Update(ctx, matched); err != nil {
		return player.Player{}, fmt.Errorf("update player %s: %w", matched.ID, err)
	}
	return matched, nil
}

func (s *ResolverService) create(ctx context.Context, cp canonical.Player) (player.Player, error) {
	newID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	created := player.Player{
		ID:          newID,
		FirstName:   cp.FirstName,
		LastName:    cp.LastName,
		Positions:   append([]canonical.Position(nil), cp.Positions...),
		ExternalIDs: map[string]string{cp.Source: cp.ExternalID},
	}
	if cp.Height != nil {
		h := *cp.Height
		created.Height = &h
	}
	if cp.BirthDate != nil {
		born := *cp.BirthDate
		created.BirthDate = &born
	}
	if cp.Nationality != nil {
		nat := *cp.Nationality
		created.Nationality = &nat
	}
	if cp.JerseyNumber != nil {
		jersey := *cp.JerseyNumber
		created.JerseyNumber = &jersey
	}

	if err := created.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.playerRepo.Create(ctx, created); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}
	return created, nil
}

func (s *ResolverService) ensureMembership(ctx context.Context, teamID, playerID string) error {
	if teamID == "" {
		return nil
	}
	if err := s.teamRepo.AddMember(ctx, team.Membership{TeamID: teamID, PlayerID: playerID}); err != nil {
		return fmt.Errorf("add roster member team=%s player=%s: %w", teamID, playerID, err)
	}
	return nil
}

// DuplicateCandidate is one suspicious pair found by the audit, reported for
// manual review and never merged automatically.
type DuplicateCandidate struct {
	PlayerID      string `json:"player_id"`
	OtherPlayerID string `json:"other_player_id"`
	Reason        string `json:"reason"`
}

// AuditDuplicates scans all stored players for pairs sharing a normalized
// full name, or a last name plus exact birthdate. Batch diagnostic, not part
// of the ingestion hot path.
func (s *ResolverService) AuditDuplicates(ctx context.Context) ([]DuplicateCandidate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolverService.AuditDuplicates")
	defer span.End()

	all, err := s.playerRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players for duplicate audit: %w", err)
	}

	out := make([]DuplicateCandidate, 0)
	seen := make(map[string]struct{})

	byName := make(map[string][]player.Player)
	for _, p := range all {
		key := p.NormalizedName()
		if key == "" {
			continue
		}
		byName[key] = append(byName[key], p)
	}
	for _, group := range byName {
		appendPairs(&out, seen, group, "same normalized name")
	}

	byLastAndBirth := make(map[string][]player.Player)
	for _, p := range all {
		if p.BirthDate == nil || p.LastName == "" {
			continue
		}
		key := canonical.NormalizeName(p.LastName) + "|" + p.BirthDate.Format(time.DateOnly)
		byLastAndBirth[key] = append(byLastAndBirth[key], p)
	}
	for _, group := range byLastAndBirth {
		appendPairs(&out, seen, group, "same last name and birthdate")
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].PlayerID != out[j].PlayerID {
			return out[i].PlayerID < out[j].PlayerID
		}
		return out[i].OtherPlayerID < out[j].OtherPlayerID
	})
	return out, nil
}

func appendPairs(out *[]DuplicateCandidate, seen map[string]struct{}, group []player.Player, reason string) {
	if len(group) < 2 {
		return
	}
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			a, b := group[i].ID, group[j].ID
			if b < a {
				a, b = b, a
			}
			pairKey := a + "|" + b
			if _, dup := seen[pairKey]; dup {
				continue
			}
			seen[pairKey] = struct{}{}
			*out = append(*out, DuplicateCandidate{PlayerID: a, OtherPlayerID: b, Reason: reason})
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
