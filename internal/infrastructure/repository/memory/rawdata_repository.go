package memory

import (
	"context"
	"sync"

	"github.com/courtdata/courtsync/internal/domain/rawdata"
)

// RawDataRepository keeps raw provider payloads keyed by
// (source, entity type, entity key). Later payloads for the same key win.
type RawDataRepository struct {
	mu       sync.RWMutex
	payloads map[string]rawdata.Payload
}

func NewRawDataRepository() *RawDataRepository {
	return &RawDataRepository{
		payloads: make(map[string]rawdata.Payload),
	}
}

func (r *RawDataRepository) UpsertMany(_ context.Context, items []rawdata.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		key := item.Source + "|" + item.EntityType + "|" + item.EntityKey
		r.payloads[key] = item
	}
	return nil
}

// List returns all stored payloads. Test helper, not part of the repository
// contract.
func (r *RawDataRepository) List() []rawdata.Payload {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rawdata.Payload, 0, len(r.payloads))
	for _, item := range r.payloads {
		out = append(out, item)
	}
	return out
}
