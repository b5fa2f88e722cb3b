package usecase

import (
	"context"
	"fmt"

	"github.com/courtdata/courtsync/internal/domain/game"
	"github.com/courtdata/courtsync/internal/platform/logging"
)

// SyncTrackerService answers "have we already ingested this game from this
// source" without a separate bookkeeping table: a game counts as synced for
// a source exactly when the stored game carries that source's external id.
type SyncTrackerService struct {
	gameRepo game.Repository
	logger   *logging.Logger
}

func NewSyncTrackerService(gameRepo game.Repository, logger *logging.Logger) *SyncTrackerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SyncTrackerService{
		gameRepo: gameRepo,
		logger:   logger,
	}
}

// IsSynced reports whether the (source, externalID) pair maps to a stored
// game.
func (s *SyncTrackerService) IsSynced(ctx context.Context, source, externalID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncTrackerService.IsSynced")
	defer span.End()

	if source == "" || externalID == "" {
		return false, fmt.Errorf("%w: source and external id are required", ErrInvalidInput)
	}

	found, err := s.gameRepo.GetByExternalID(ctx, source, externalID)
	if err != nil {
		return false, fmt.Errorf("lookup game source=%s external_id=%s: %w", source, externalID, err)
	}
	return found != nil, nil
}

// FilterUnsynced returns the subset of externalIDs with no stored game for
// source, preserving the input order. The known set is fetched in one bulk
// repository call so a feed of hundreds of games costs one query, not one
// per game.
func (s *SyncTrackerService) FilterUnsynced(ctx context.Context, source string, externalIDs []string) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncTrackerService.FilterUnsynced")
	defer span.End()

	if source == "" {
		return nil, fmt.Errorf("%w: source is required", ErrInvalidInput)
	}
	if len(externalIDs) == 0 {
		return []string{}, nil
	}

	existing, err := s.gameRepo.FilterExistingExternalIDs(ctx, source, externalIDs)
	if err != nil {
		return nil, fmt.Errorf("filter existing games for source=%s: %w", source, err)
	}

	unsynced := make([]string, 0, len(externalIDs))
	seen := make(map[string]struct{}, len(externalIDs))
	for _, externalID := range externalIDs {
		if externalID == "" {
			continue
		}
		if _, dup := seen[externalID]; dup {
			continue
		}
		seen[externalID] = struct{}{}
		if _, ok := existing[externalID]; !ok {
			unsynced = append(unsynced, externalID)
		}
	}

	s.logger.DebugContext(ctx, "filtered unsynced games",
		"source", source,
		"requested", len(externalIDs),
		"unsynced", len(unsynced),
	)
	return unsynced, nil
}

// MarkSynced records that gameID was ingested from source under externalID.
// The mapping is additive; marking an already synced pair again is a no-op.
func (s *SyncTrackerService) MarkSynced(ctx context.Context, gameID, source, externalID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncTrackerService.MarkSynced")
	defer span.End()

	if gameID == "" || source == "" || externalID == "" {
		return fmt.Errorf("%w: game id, source and external id are required", ErrInvalidInput)
	}

	stored, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("load game %s: %w", gameID, err)
	}
	if stored == nil {
		return fmt.Errorf("%w: game %s", ErrNotFound, gameID)
	}

	if !stored.MergeExternalID(source, externalID) {
		return nil
	}
	if err := s.gameRepo.Update(ctx, *stored); err != nil {
		return fmt.Errorf("update game %s: %w", gameID, err)
	}
	return nil
}

// GetByExternalID returns the stored game mapped to (source, externalID), or
// ErrNotFound.
func (s *SyncTrackerService) GetByExternalID(ctx context.Context, source, externalID string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncTrackerService.GetByExternalID")
	defer span.End()

	if source == "" || externalID == "" {
		return game.Game{}, fmt.Errorf("%w: source and external id are required", ErrInvalidInput)
	}

	found, err := s.gameRepo.GetByExternalID(ctx, source, externalID)
	if err != nil {
		return game.Game{}, fmt.Errorf("lookup game source=%s external_id=%s: %w", source, externalID, err)
	}
	if found == nil {
		return game.Game{}, fmt.Errorf("%w: game source=%s external_id=%s", ErrNotFound, source, externalID)
	}
	return *found, nil
}
