package memory

import (
	"context"
	"sync"

	"github.com/courtdata/courtsync/internal/domain/team"
)

// TeamRepository is an in-memory team and roster store.
type TeamRepository struct {
	mu      sync.RWMutex
	teams   map[string]team.Team
	rosters map[string][]string
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{
		teams:   make(map[string]team.Team),
		rosters: make(map[string][]string),
	}
}

func (r *TeamRepository) GetByID(_ context.Context, id string) (*team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[id]
	if !ok {
		return nil, nil
	}
	out := cloneTeam(t)
	return &out, nil
}

func (r *TeamRepository) GetByExternalID(_ context.Context, source, externalID string) (*team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.teams {
		if t.ExternalIDs[source] == externalID && externalID != "" {
			out := cloneTeam(t)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *TeamRepository) ListAll(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	for _, t := range r.teams {
		out = append(out, cloneTeam(t))
	}
	return out, nil
}

func (r *TeamRepository) ListIncomplete(_ context.Context, source string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, t := range r.teams {
		if t.IsComplete() {
			continue
		}
		if source != "" {
			if _, mapped := t.ExternalIDs[source]; !mapped {
				continue
			}
		}
		out = append(out, cloneTeam(t))
	}
	return out, nil
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams[t.ID] = cloneTeam(t)
	return nil
}

func (r *TeamRepository) Update(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams[t.ID] = cloneTeam(t)
	return nil
}

func (r *TeamRepository) ListMemberIDs(_ context.Context, teamID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.rosters[teamID]
	out := make([]string, 0, len(ids))
	out = append(out, ids...)
	return out, nil
}

func (r *TeamRepository) AddMember(_ context.Context, m team.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.rosters[m.TeamID] {
		if id == m.PlayerID {
			return nil
		}
	}
	r.rosters[m.TeamID] = append(r.rosters[m.TeamID], m.PlayerID)
	return nil
}

func cloneTeam(t team.Team) team.Team {
	out := t
	if t.ExternalIDs != nil {
		out.ExternalIDs = make(map[string]string, len(t.ExternalIDs))
		for k, v := range t.ExternalIDs {
			out.ExternalIDs[k] = v
		}
	}
	return out
}
