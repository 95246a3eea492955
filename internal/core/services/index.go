package services

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/gitpress-labs/gitpress/internal/core/domain"
)

// IndexStore holds the process-wide published snapshot. The snapshot is
// replaced wholesale on every successful synchronisation cycle and read
// freely otherwise; there are no locks on the read path. Readers that
// already hold a snapshot reference keep using it safely because
// published snapshots are immutable.
type IndexStore struct {
	current atomic.Pointer[domain.Snapshot]
}

// NewIndexStore creates an empty index store. Current returns nil until
// the first publish.
func NewIndexStore() *IndexStore {
	return &IndexStore{}
}

// Publish stamps the snapshot and makes it the visible one. The single
// writer (the synchroniser) constructs the entire snapshot off to the
// side first, so no caller ever observes a partially built value.
func (s *IndexStore) Publish(partitions map[string]*domain.Partition) *domain.Snapshot {
	snap := &domain.Snapshot{
		ID:          uuid.NewString(),
		PublishedAt: time.Now(),
		Partitions:  partitions,
	}
	s.current.Store(snap)
	return snap
}

// Current returns the presently visible snapshot, always a fully formed
// value. Returns nil before the first publish.
func (s *IndexStore) Current() *domain.Snapshot {
	return s.current.Load()
}
