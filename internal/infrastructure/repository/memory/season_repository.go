package memory

import (
	"context"
	"sync"

	"github.com/courtdata/courtsync/internal/domain/season"
)

// SeasonRepository is an in-memory season store.
type SeasonRepository struct {
	mu      sync.RWMutex
	seasons map[string]season.Season
}

func NewSeasonRepository() *SeasonRepository {
	return &SeasonRepository{
		seasons: make(map[string]season.Season),
	}
}

func (r *SeasonRepository) GetByExternalID(_ context.Context, source, externalID string) (*season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.seasons {
		if s.ExternalIDs[source] == externalID && externalID != "" {
			out := cloneSeason(s)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *SeasonRepository) List(_ context.Context) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0, len(r.seasons))
	for _, s := range r.seasons {
		out = append(out, cloneSeason(s))
	}
	return out, nil
}

func (r *SeasonRepository) Create(_ context.Context, s season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seasons[s.ID] = cloneSeason(s)
	return nil
}

func (r *SeasonRepository) Update(_ context.Context, s season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seasons[s.ID] = cloneSeason(s)
	return nil
}

func cloneSeason(s season.Season) season.Season {
	out := s
	if s.ExternalIDs != nil {
		out.ExternalIDs = make(map[string]string, len(s.ExternalIDs))
		for k, v := range s.ExternalIDs {
			out.ExternalIDs[k] = v
		}
	}
	return out
}
