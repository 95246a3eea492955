// Package memory provides an in-memory fixture source. It is selected
// by configuration for tests and demos: files are put and deleted
// programmatically, diffs are tracked through a revision journal, and
// the source can be switched into an unreachable mode to exercise
// transient-failure handling.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/gitpress-labs/gitpress/internal/core/domain"
	"github.com/gitpress-labs/gitpress/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.Source = (*Source)(nil)

// entry records one mutation in the journal.
type entry struct {
	revision int
	path     string
	removed  bool
}

// Source is an in-memory implementation of driven.Source.
type Source struct {
	mu          sync.Mutex
	files       map[string][]byte
	history     map[string]domain.CommitInfo
	journal     []entry
	revision    int
	unreachable bool
}

// New creates an empty in-memory source.
func New() *Source {
	return &Source{
		files:   make(map[string][]byte),
		history: make(map[string]domain.CommitInfo),
	}
}

// Put stores or replaces a file and records the change.
func (s *Source) Put(path string, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revision++
	s.files[path] = content
	s.journal = append(s.journal, entry{revision: s.revision, path: path})
}

// Delete removes a file and records the removal.
func (s *Source) Delete(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revision++
	delete(s.files, path)
	s.journal = append(s.journal, entry{revision: s.revision, path: path, removed: true})
}

// SetCommitInfo attaches commit history to a file.
func (s *Source) SetCommitInfo(path string, info domain.CommitInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[path] = info
}

// SetUnreachable switches the unreachable simulation on or off.
// While unreachable, DiffSince fails with domain.ErrSourceUnreachable.
func (s *Source) SetUnreachable(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unreachable = v
}

// Type returns the source type identifier.
func (s *Source) Type() string {
	return domain.SourceTypeMemory
}

// Capabilities returns what this source supports.
func (s *Source) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{SupportsHistory: true}
}

// ListFiles returns the paths of all files under folder.
func (s *Source) ListFiles(_ context.Context, folder string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var paths []string
	for path := range s.files {
		if folder == "" || strings.HasPrefix(path, folder+"/") {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// ReadFile returns the bytes of one file.
func (s *Source) ReadFile(_ context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	return content, nil
}

// DiffSince returns the files changed and removed since the cursor.
// The cursor is the decimal journal revision; empty means "from the
// beginning" and reports every current file as changed.
func (s *Source) DiffSince(_ context.Context, cursor string) (*domain.ChangeSet, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unreachable {
		return nil, "", fmt.Errorf("%w: fixture source switched off", domain.ErrSourceUnreachable)
	}

	since := 0
	if cursor != "" {
		parsed, err := strconv.Atoi(cursor)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %q", domain.ErrInvalidCursor, cursor)
		}
		since = parsed
	}

	newCursor := strconv.Itoa(s.revision)
	diff := &domain.ChangeSet{}

	if since == 0 {
		for path := range s.files {
			diff.Changed = append(diff.Changed, path)
		}
		return diff, newCursor, nil
	}

	// Replay the journal; only the final state of each path counts.
	final := make(map[string]bool)
	for _, e := range s.journal {
		if e.revision > since {
			final[e.path] = e.removed
		}
	}
	for path, removed := range final {
		if removed {
			diff.Removed = append(diff.Removed, path)
		} else {
			diff.Changed = append(diff.Changed, path)
		}
	}
	return diff, newCursor, nil
}

// CommitInfo returns the attached history for a file.
func (s *Source) CommitInfo(_ context.Context, path string) (*domain.CommitInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.history[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoHistory, path)
	}
	return &info, nil
}

// Watch is not supported by the fixture source.
func (s *Source) Watch(context.Context) (<-chan struct{}, error) {
	return nil, domain.ErrNotImplemented
}

// Close releases resources.
func (s *Source) Close() error {
	return nil
}
