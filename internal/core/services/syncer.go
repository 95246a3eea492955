package services

import (
	"context"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gitpress-labs/gitpress/internal/core/domain"
	"github.com/gitpress-labs/gitpress/internal/core/ports/driven"
	"github.com/gitpress-labs/gitpress/internal/core/ports/driving"
	"github.com/gitpress-labs/gitpress/internal/logger"
)

// Ensure Synchronizer implements the interface.
var _ driving.Synchronizer = (*Synchronizer)(nil)

// Synchronizer owns all writes to the index store. It polls the source
// for diffs, rebuilds only the affected documents and publishes each new
// snapshot atomically, so readers are never blocked and never observe
// partial state.
type Synchronizer struct {
	cfg     domain.Config
	src     driven.Source
	builder *Builder
	store   *IndexStore

	// cycleMu serialises cycles; a tick that fires while a cycle is
	// running is coalesced via TryLock, never overlapped.
	cycleMu sync.Mutex

	mu                  sync.RWMutex
	state               driving.SyncState
	cursor              string
	lastSync            time.Time
	lastError           string
	consecutiveFailures int
	cyclesCompleted     int
}

// NewSynchronizer creates a synchroniser for the configured languages.
func NewSynchronizer(
	cfg domain.Config, src driven.Source, builder *Builder, store *IndexStore,
) *Synchronizer {
	return &Synchronizer{
		cfg:     cfg,
		src:     src,
		builder: builder,
		store:   store,
		state:   driving.StateIdle,
	}
}

// Run executes the initial full build and then, with polling enabled,
// one cycle per poll interval until the context is cancelled. Sources
// that support watching additionally trigger a cycle on change
// notifications between ticks.
func (s *Synchronizer) Run(ctx context.Context) error {
	if err := s.SyncOnce(ctx); err != nil {
		logger.Warn("Initial build failed: %v", err)
	}

	if !s.cfg.PollingEnabled {
		return nil
	}

	var watchCh <-chan struct{}
	if s.src.Capabilities().SupportsWatch {
		ch, err := s.src.Watch(ctx)
		if err != nil {
			logger.Warn("Source watch unavailable: %v", err)
		} else {
			watchCh = ch
		}
	}

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.SyncOnce(ctx); err != nil {
				logger.Warn("Sync cycle failed: %v", err)
			}
		case _, ok := <-watchCh:
			if !ok {
				watchCh = nil
				continue
			}
			if err := s.SyncOnce(ctx); err != nil {
				logger.Warn("Sync cycle failed: %v", err)
			}
		}
	}
}

// SyncOnce runs a single cycle. When a cycle is already in progress the
// call is coalesced and returns immediately.
func (s *Synchronizer) SyncOnce(ctx context.Context) error {
	if !s.cycleMu.TryLock() {
		logger.Debug("Sync tick coalesced: cycle already running")
		return nil
	}
	defer s.cycleMu.Unlock()

	return s.cycle(ctx)
}

// Status returns the current synchroniser state.
func (s *Synchronizer) Status() driving.SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return driving.SyncStatus{
		State:               s.state,
		Cursor:              s.cursor,
		LastSync:            s.lastSync,
		LastError:           s.lastError,
		ConsecutiveFailures: s.consecutiveFailures,
		CyclesCompleted:     s.cyclesCompleted,
	}
}

// cycle is one Checking -> Rebuilding -> Publishing pass. It either
// completes and publishes, or fails atomically: partial work is
// discarded and the last good snapshot keeps serving.
func (s *Synchronizer) cycle(ctx context.Context) error {
	s.setState(driving.StateChecking)
	defer s.setState(driving.StateIdle)

	diff, newCursor, err := s.src.DiffSince(ctx, s.Status().Cursor)
	if err != nil {
		// Transient by policy: retain the previous snapshot and retry on
		// the next tick. Failures never become fatal, however many in a
		// row; the count is surfaced through Status.
		s.recordFailure(err)
		logger.Warn("Source diff failed (%d consecutive): %v", s.Status().ConsecutiveFailures, err)
		return nil
	}

	prev := s.store.Current()
	if diff.Empty() && prev != nil {
		s.recordSuccess(newCursor)
		logger.Debug("No changes at cursor %s", newCursor)
		return nil
	}

	s.setState(driving.StateRebuilding)

	type langUpdate struct {
		lang   string
		merged map[string]*domain.Post
	}
	var updates []langUpdate

	for _, lang := range s.cfg.Languages {
		folder := path.Join(s.cfg.ContentFolder, lang)
		rebuildFiles, removedSlugs, explicit := resolveChanges(diff, folder)

		var prevPosts map[string]*domain.Post
		if p, ok := prev.Partition(lang); ok {
			prevPosts = p.Posts
		}

		if len(rebuildFiles) == 0 && len(removedSlugs) == 0 && prevPosts != nil {
			continue // unaffected, carried over by reference
		}

		rebuilt := s.builder.Build(ctx, s.src, rebuildFiles)

		// A changed file that failed to parse is absent from the index.
		for _, file := range explicit {
			if _, ok := rebuilt[Slug(file)]; !ok {
				removedSlugs = append(removedSlugs, Slug(file))
			}
		}

		updates = append(updates, langUpdate{
			lang:   lang,
			merged: domain.Merge(prevPosts, removedSlugs, rebuilt),
		})
	}

	if len(updates) == 0 && prev != nil {
		s.recordSuccess(newCursor)
		return nil
	}

	s.setState(driving.StatePublishing)

	partitions := make(map[string]*domain.Partition, len(s.cfg.Languages))
	if prev != nil {
		for lang, p := range prev.Partitions {
			partitions[lang] = p
		}
	}
	for _, u := range updates {
		partitions[u.lang] = domain.NewPartition(u.merged)
	}

	snap := s.store.Publish(partitions)
	s.recordSuccess(newCursor)
	logger.Info("Published snapshot %s: %d languages, cursor %s", snap.ID, len(partitions), newCursor)
	return nil
}

// resolveChanges maps a raw change set onto one language folder.
// Returns the content files to rebuild, the slugs to remove, and the
// subset of rebuild files that were explicitly reported as changed
// (as opposed to re-parses triggered by sidecar metadata changes).
func resolveChanges(diff *domain.ChangeSet, folder string) (rebuild, removed, explicit []string) {
	seen := make(map[string]bool)
	add := func(file string) {
		if !seen[file] {
			seen[file] = true
			rebuild = append(rebuild, file)
		}
	}
	// A changed or removed sidecar re-parses its content file, whichever
	// recognised extension it carries. Candidates that do not exist are
	// skipped by the builder.
	sidecar := func(file string) {
		base := strings.TrimSuffix(file, metaFileSuffix)
		add(base + ".md")
		add(base + ".markdown")
	}

	prefix := folder + "/"
	for _, file := range diff.Changed {
		if !strings.HasPrefix(file, prefix) {
			continue
		}
		switch {
		case IsContentFile(file):
			add(file)
			explicit = append(explicit, file)
		case strings.HasSuffix(file, metaFileSuffix):
			sidecar(file)
		}
	}
	for _, file := range diff.Removed {
		if !strings.HasPrefix(file, prefix) {
			continue
		}
		switch {
		case IsContentFile(file):
			removed = append(removed, Slug(file))
		case strings.HasSuffix(file, metaFileSuffix):
			sidecar(file)
		}
	}
	return rebuild, removed, explicit
}

// setState records a state machine transition.
func (s *Synchronizer) setState(state driving.SyncState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// recordSuccess advances the cursor and clears the failure streak.
func (s *Synchronizer) recordSuccess(cursor string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = cursor
	s.lastSync = time.Now()
	s.lastError = ""
	s.consecutiveFailures = 0
	s.cyclesCompleted++
}

// recordFailure notes a failed cycle without touching the cursor, so
// the next tick retries the same diff.
func (s *Synchronizer) recordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err.Error()
	s.consecutiveFailures++
}
