package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/courtdata/courtsync/internal/domain/canonical"
	"github.com/courtdata/courtsync/internal/domain/player"
	"github.com/courtdata/courtsync/internal/domain/team"
	"github.com/courtdata/courtsync/internal/infrastructure/repository/memory"
	"github.com/courtdata/courtsync/internal/platform/id"
	"github.com/courtdata/courtsync/internal/platform/logging"
)

func newResolverFixture(t *testing.T) (*ResolverService, *memory.PlayerRepository, *memory.TeamRepository) {
	t.Helper()
	playerRepo := memory.NewPlayerRepository()
	teamRepo := memory.NewTeamRepository()
	svc := NewResolverService(playerRepo, teamRepo, id.NewRandomGenerator(), logging.NewNop())
	return svc, playerRepo, teamRepo
}

func mustHeight(t *testing.T, cm int) *canonical.Height {
	t.Helper()
	h, err := canonical.NewHeight(cm)
	if err != nil {
		t.Fatalf("height %d: %v", cm, err)
	}
	return &h
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestResolverService_Resolve_CreatesWhenUnknown(t *testing.T) {
	t.Parallel()
	svc, playerRepo, _ := newResolverFixture(t)
	ctx := context.Background()

	resolved, err := svc.Resolve(ctx, canonical.Player{
		Source:     "euroleague",
		ExternalID: "P003456",
		FirstName:  "Scottie",
		LastName:   "Wilbekin",
		Height:     mustHeight(t, 188),
	}, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID == "" {
		t.Fatal("expected a generated player id")
	}
	if got, _ := resolved.ExternalIDFor("euroleague"); got != "P003456" {
		t.Fatalf("external id = %q, want P003456", got)
	}

	stored, err := playerRepo.GetByID(ctx, resolved.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if stored == nil {
		t.Fatal("created player not persisted")
	}
}

func TestResolverService_Resolve_MatchesByExternalID(t *testing.T) {
	t.Parallel()
	svc, playerRepo, _ := newResolverFixture(t)
	ctx := context.Background()

	seed := player.Player{
		ID:          "pl-1",
		FirstName:   "Tamir",
		LastName:    "Blatt",
		ExternalIDs: map[string]string{"winnerleague": "7741"},
	}
	if err := playerRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resolved, err := svc.Resolve(ctx, canonical.Player{
		Source:     "winnerleague",
		ExternalID: "7741",
		FirstName:  "T.",
		LastName:   "Blatt",
	}, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != "pl-1" {
		t.Fatalf("resolved to %q, want pl-1", resolved.ID)
	}
	// Name variants never override the stored name.
	if resolved.FirstName != "Tamir" {
		t.Fatalf("first name = %q, want Tamir", resolved.FirstName)
	}
}

func TestResolverService_Resolve_MatchesByTeamRoster(t *testing.T) {
	t.Parallel()
	svc, playerRepo, teamRepo := newResolverFixture(t)
	ctx := context.Background()

	if err := teamRepo.Create(ctx, team.Team{ID: "tm-1", Name: "Maccabi Tel Aviv", ShortName: "MTA"}); err != nil {
		t.Fatalf("seed team: %v", err)
	}
	seed := player.Player{
		ID:          "pl-roster",
		FirstName:   "Lorenzo",
		LastName:    "Brown",
		ExternalIDs: map[string]string{"euroleague": "P009"},
	}
	if err := playerRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed player: %v", err)
	}
	if err := teamRepo.AddMember(ctx, team.Membership{TeamID: "tm-1", PlayerID: "pl-roster"}); err != nil {
		t.Fatalf("seed roster: %v", err)
	}

	resolved, err := svc.Resolve(ctx, canonical.Player{
		Source:     "winnerleague",
		ExternalID: "5120",
		FirstName:  "Lorenzo",
		LastName:   "Brown",
	}, "tm-1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != "pl-roster" {
		t.Fatalf("resolved to %q, want pl-roster", resolved.ID)
	}
	if got, _ := resolved.ExternalIDFor("winnerleague"); got != "5120" {
		t.Fatalf("merged external id = %q, want 5120", got)
	}
	if got, _ := resolved.ExternalIDFor("euroleague"); got != "P009" {
		t.Fatalf("existing mapping lost, euroleague id = %q", got)
	}
}

func TestResolverService_Resolve_RosterSkipsAlreadyMappedForSource(t *testing.T) {
	t.Parallel()
	svc, playerRepo, teamRepo := newResolverFixture(t)
	ctx := context.Background()

	// Two distinct players sharing a name on one roster. The first is
	// already claimed by this source, so the second incoming record must
	// not collapse onto it.
	if err := teamRepo.Create(ctx, team.Team{ID: "tm-2", Name: "Hapoel Jerusalem", ShortName: "JLM"}); err != nil {
		t.Fatalf("seed team: %v", err)
	}
	claimed := player.Player{
		ID:          "pl-claimed",
		FirstName:   "John",
		LastName:    "Smith",
		ExternalIDs: map[string]string{"winnerleague": "100"},
	}
	if err := playerRepo.Create(ctx, claimed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := teamRepo.AddMember(ctx, team.Membership{TeamID: "tm-2", PlayerID: "pl-claimed"}); err != nil {
		t.Fatalf("seed roster: %v", err)
	}

	resolved, err := svc.Resolve(ctx, canonical.Player{
		Source:     "winnerleague",
		ExternalID: "200",
		FirstName:  "John",
		LastName:   "Smith",
	}, "tm-2")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID == "pl-claimed" {
		t.Fatal("second John Smith collapsed onto the already mapped one")
	}
}

func TestResolverService_Resolve_GlobalNameAndBirthdate(t *testing.T) {
	t.Parallel()
	svc, playerRepo, _ := newResolverFixture(t)
	ctx := context.Background()

	seed := player.Player{
		ID:          "pl-transfer",
		FirstName:   "Wade",
		LastName:    "Baldwin",
		BirthDate:   datePtr(1996, time.March, 29),
		ExternalIDs: map[string]string{"euroleague": "P77"},
	}
	if err := playerRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Mid-season transfer: new source, no roster link yet.
	resolved, err := svc.Resolve(ctx, canonical.Player{
		Source:     "winnerleague",
		ExternalID: "9001",
		FirstName:  "Wade",
		LastName:   "Baldwin",
		BirthDate:  datePtr(1996, time.March, 29),
	}, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != "pl-transfer" {
		t.Fatalf("resolved to %q, want pl-transfer", resolved.ID)
	}
}

func TestResolverService_Resolve_GlobalNameAndHeightTolerance(t *testing.T) {
	t.Parallel()
	svc, playerRepo, _ := newResolverFixture(t)
	ctx := context.Background()

	seed := player.Player{
		ID:          "pl-h",
		FirstName:   "Nando",
		LastName:    "De Colo",
		Height:      mustHeight(t, 196),
		ExternalIDs: map[string]string{"euroleague": "P55"},
	}
	if err := playerRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Listed one league at 196, the other at 198.
	resolved, err := svc.Resolve(ctx, canonical.Player{
		Source:     "winnerleague",
		ExternalID: "42",
		FirstName:  "Nando",
		LastName:   "De Colo",
		Height:     mustHeight(t, 198),
	}, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != "pl-h" {
		t.Fatalf("resolved to %q, want pl-h", resolved.ID)
	}

	far, err := svc.Resolve(ctx, canonical.Player{
		Source:     "euroleague",
		ExternalID: "P991",
		FirstName:  "Nando",
		LastName:   "De Colo",
		Height:     mustHeight(t, 205),
	}, "")
	if err != nil {
		t.Fatalf("resolve far: %v", err)
	}
	if far.ID == "pl-h" {
		t.Fatal("height 9cm apart should not match")
	}
}

func TestResolverService_Resolve_WeakMatchSingleCandidateNoBio(t *testing.T) {
	t.Parallel()
	svc, playerRepo, _ := newResolverFixture(t)
	ctx := context.Background()

	seed := player.Player{
		ID:          "pl-bare",
		FirstName:   "Yam",
		LastName:    "Madar",
		ExternalIDs: map[string]string{"euroleague": "P31"},
	}
	if err := playerRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resolved, err := svc.Resolve(ctx, canonical.Player{
		Source:     "winnerleague",
		ExternalID: "808",
		FirstName:  "Yam",
		LastName:   "Madar",
	}, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != "pl-bare" {
		t.Fatalf("resolved to %q, want pl-bare", resolved.ID)
	}
}

func TestResolverService_Resolve_EnrichesMissingBio(t *testing.T) {
	t.Parallel()
	svc, playerRepo, _ := newResolverFixture(t)
	ctx := context.Background()

	seed := player.Player{
		ID:          "pl-thin",
		FirstName:   "Roman",
		LastName:    "Sorkin",
		ExternalIDs: map[string]string{"winnerleague": "311"},
	}
	if err := playerRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.Resolve(ctx, canonical.Player{
		Source:     "winnerleague",
		ExternalID: "311",
		FirstName:  "Roman",
		LastName:   "Sorkin",
		Height:     mustHeight(t, 208),
		BirthDate:  datePtr(1996, time.September, 16),
		Positions:  []canonical.Position{canonical.PositionCenter},
	}, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	stored, err := playerRepo.GetByID(ctx, "pl-thin")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Height == nil || stored.Height.Cm() != 208 {
		t.Fatalf("height not enriched: %v", stored.Height)
	}
	if stored.BirthDate == nil {
		t.Fatal("birthdate not enriched")
	}
	if len(stored.Positions) != 1 || stored.Positions[0] != canonical.PositionCenter {
		t.Fatalf("positions not enriched: %v", stored.Positions)
	}
}

func TestResolverService_Resolve_ConcurrentSamePlayerCreatesOnce(t *testing.T) {
	t.Parallel()
	svc, playerRepo, teamRepo := newResolverFixture(t)
	ctx := context.Background()

	if err := teamRepo.Create(ctx, team.Team{ID: "tm-c", Name: "Panathinaikos", ShortName: "PAO"}); err != nil {
		t.Fatalf("seed team: %v", err)
	}

	const workers = 10
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.Resolve(ctx, canonical.Player{
				Source:     "euroleague",
				ExternalID: "P500",
				FirstName:  "Kostas",
				LastName:   "Sloukas",
			}, "tm-c")
			if err != nil {
				t.Errorf("resolve: %v", err)
			}
		}()
	}
	wg.Wait()

	all, err := playerRepo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 stored player, got %d", len(all))
	}
}

func TestResolverService_AuditDuplicates(t *testing.T) {
	t.Parallel()
	svc, playerRepo, _ := newResolverFixture(t)
	ctx := context.Background()

	born := datePtr(1990, time.June, 1)
	seeds := []player.Player{
		{ID: "a", FirstName: "Nick", LastName: "Calathes", ExternalIDs: map[string]string{"euroleague": "1"}},
		{ID: "b", FirstName: "Nick", LastName: "Calathes", ExternalIDs: map[string]string{"winnerleague": "2"}},
		{ID: "c", FirstName: "Pat", LastName: "Calathes", BirthDate: born, ExternalIDs: map[string]string{"euroleague": "3"}},
		{ID: "d", FirstName: "Patrick", LastName: "Calathes", BirthDate: born, ExternalIDs: map[string]string{"winnerleague": "4"}},
		{ID: "e", FirstName: "Shane", LastName: "Larkin", ExternalIDs: map[string]string{"euroleague": "5"}},
	}
	for _, p := range seeds {
		if err := playerRepo.Create(ctx, p); err != nil {
			t.Fatalf("seed %s: %v", p.ID, err)
		}
	}

	candidates, err := svc.AuditDuplicates(ctx)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}

	want := map[string]string{
		"a|b": "same normalized name",
		"c|d": "same last name and birthdate",
	}
	if len(candidates) != len(want) {
		t.Fatalf("got %d candidates %v, want %d", len(candidates), candidates, len(want))
	}
	for _, c := range candidates {
		key := c.PlayerID + "|" + c.OtherPlayerID
		reason, ok := want[key]
		if !ok {
			t.Fatalf("unexpected pair %s", key)
		}
		if c.Reason != reason {
			t.Fatalf("pair %s reason = %q, want %q", key, c.Reason, reason)
		}
	}
}

func TestResolverService_Resolve_RejectsMissingIdentity(t *testing.T) {
	t.Parallel()
	svc, _, _ := newResolverFixture(t)

	_, err := svc.Resolve(context.Background(), canonical.Player{FirstName: "No", LastName: "Source"}, "")
	if err == nil {
		t.Fatal("expected error for missing source and external id")
	}
}
