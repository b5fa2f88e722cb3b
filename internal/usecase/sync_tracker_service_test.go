package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/courtdata/courtsync/internal/domain/canonical"
	"github.com/courtdata/courtsync/internal/domain/game"
	"github.com/courtdata/courtsync/internal/infrastructure/repository/memory"
	"github.com/courtdata/courtsync/internal/platform/logging"
)

func seedGame(t *testing.T, repo *memory.GameRepository, id string, externalIDs map[string]string) {
	t.Helper()
	err := repo.Create(context.Background(), game.Game{
		ID:          id,
		HomeTeamID:  "tm-h",
		AwayTeamID:  "tm-a",
		Date:        time.Date(2024, time.November, 2, 20, 0, 0, 0, time.UTC),
		Status:      canonical.GameScheduled,
		ExternalIDs: externalIDs,
	})
	if err != nil {
		t.Fatalf("seed game %s: %v", id, err)
	}
}

func TestSyncTrackerService_IsSynced(t *testing.T) {
	t.Parallel()
	gameRepo := memory.NewGameRepository(nil, nil)
	svc := NewSyncTrackerService(gameRepo, logging.NewNop())
	ctx := context.Background()

	seedGame(t, gameRepo, "gm-1", map[string]string{"euroleague": "E2024_12"})

	synced, err := svc.IsSynced(ctx, "euroleague", "E2024_12")
	if err != nil {
		t.Fatalf("is synced: %v", err)
	}
	if !synced {
		t.Fatal("expected synced for stored mapping")
	}

	synced, err = svc.IsSynced(ctx, "winnerleague", "E2024_12")
	if err != nil {
		t.Fatalf("is synced: %v", err)
	}
	if synced {
		t.Fatal("mapping for another source must not count")
	}
}

func TestSyncTrackerService_FilterUnsynced(t *testing.T) {
	t.Parallel()
	gameRepo := memory.NewGameRepository(nil, nil)
	svc := NewSyncTrackerService(gameRepo, logging.NewNop())
	ctx := context.Background()

	seedGame(t, gameRepo, "gm-1", map[string]string{"euroleague": "E2024_1"})
	seedGame(t, gameRepo, "gm-3", map[string]string{"euroleague": "E2024_3"})

	unsynced, err := svc.FilterUnsynced(ctx, "euroleague", []string{"E2024_1", "E2024_2", "E2024_3", "E2024_4", "E2024_2"})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	want := []string{"E2024_2", "E2024_4"}
	if len(unsynced) != len(want) {
		t.Fatalf("unsynced = %v, want %v", unsynced, want)
	}
	for i := range want {
		if unsynced[i] != want[i] {
			t.Fatalf("unsynced[%d] = %q, want %q", i, unsynced[i], want[i])
		}
	}
}

func TestSyncTrackerService_FilterUnsynced_Empty(t *testing.T) {
	t.Parallel()
	svc := NewSyncTrackerService(memory.NewGameRepository(nil, nil), logging.NewNop())

	unsynced, err := svc.FilterUnsynced(context.Background(), "euroleague", nil)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(unsynced) != 0 {
		t.Fatalf("unsynced = %v, want empty", unsynced)
	}
}

func TestSyncTrackerService_MarkSynced(t *testing.T) {
	t.Parallel()
	gameRepo := memory.NewGameRepository(nil, nil)
	svc := NewSyncTrackerService(gameRepo, logging.NewNop())
	ctx := context.Background()

	seedGame(t, gameRepo, "gm-1", map[string]string{"euroleague": "E2024_5"})

	if err := svc.MarkSynced(ctx, "gm-1", "winnerleague", "3391"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	// Marking again is a no-op, not an error.
	if err := svc.MarkSynced(ctx, "gm-1", "winnerleague", "3391"); err != nil {
		t.Fatalf("mark twice: %v", err)
	}

	stored, err := svc.GetByExternalID(ctx, "winnerleague", "3391")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.ID != "gm-1" {
		t.Fatalf("stored id = %q, want gm-1", stored.ID)
	}
	if got, _ := stored.ExternalIDFor("euroleague"); got != "E2024_5" {
		t.Fatalf("existing mapping lost: %q", got)
	}
}

func TestSyncTrackerService_MarkSynced_UnknownGame(t *testing.T) {
	t.Parallel()
	svc := NewSyncTrackerService(memory.NewGameRepository(nil, nil), logging.NewNop())

	err := svc.MarkSynced(context.Background(), "missing", "euroleague", "E2024_9")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSyncTrackerService_GetByExternalID_NotFound(t *testing.T) {
	t.Parallel()
	svc := NewSyncTrackerService(memory.NewGameRepository(nil, nil), logging.NewNop())

	_, err := svc.GetByExternalID(context.Background(), "euroleague", "E2024_404")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
