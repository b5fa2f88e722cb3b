package memory

import (
	"context"
	"sync"

	"github.com/courtdata/courtsync/internal/domain/player"
)

// PlayerRepository is an in-memory player store. Used in tests and for dry
// runs of the sync pipeline.
type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{
		players: make(map[string]player.Player),
	}
}

func (r *PlayerRepository) GetByID(_ context.Context, id string) (*player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[id]
	if !ok {
		return nil, nil
	}
	out := clonePlayer(p)
	return &out, nil
}

func (r *PlayerRepository) GetByExternalID(_ context.Context, source, externalID string) (*player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.players {
		if p.ExternalIDs[source] == externalID && externalID != "" {
			out := clonePlayer(p)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *PlayerRepository) ListByNormalizedName(_ context.Context, normalizedName string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, p := range r.players {
		if p.NormalizedName() == normalizedName {
			out = append(out, clonePlayer(p))
		}
	}
	return out, nil
}

func (r *PlayerRepository) ListAll(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, clonePlayer(p))
	}
	return out, nil
}

func (r *PlayerRepository) ListIncomplete(_ context.Context, source string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, p := range r.players {
		if p.HasBio() {
			continue
		}
		if source != "" {
			if _, mapped := p.ExternalIDs[source]; !mapped {
				continue
			}
		}
		out = append(out, clonePlayer(p))
	}
	return out, nil
}

func (r *PlayerRepository) FilterExistingExternalIDs(_ context.Context, source string, externalIDs []string) (map[string]struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	known := make(map[string]struct{}, len(r.players))
	for _, p := range r.players {
		if id, ok := p.ExternalIDs[source]; ok {
			known[id] = struct{}{}
		}
	}

	out := make(map[string]struct{})
	for _, id := range externalIDs {
		if _, ok := known[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[p.ID] = clonePlayer(p)
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[p.ID] = clonePlayer(p)
	return nil
}

func clonePlayer(p player.Player) player.Player {
	out := p
	if p.ExternalIDs != nil {
		out.ExternalIDs = make(map[string]string, len(p.ExternalIDs))
		for k, v := range p.ExternalIDs {
			out.ExternalIDs[k] = v
		}
	}
	if p.Positions != nil {
		out.Positions = append(out.Positions[:0:0], p.Positions...)
	}
	return out
}
