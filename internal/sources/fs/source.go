// Package fs provides a source backed by a plain local directory.
// It has no version history: diffs are computed from modification
// times recorded in the cursor, and CommitInfo always reports absence
// so parsed posts fall back to current-time timestamps (or to explicit
// front matter). The directory can additionally be watched through
// fsnotify so local edits trigger a cycle without waiting for a tick.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gitpress-labs/gitpress/internal/core/domain"
	"github.com/gitpress-labs/gitpress/internal/core/ports/driven"
	"github.com/gitpress-labs/gitpress/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.Source = (*Source)(nil)

// Source is a local-directory implementation of driven.Source.
// All returned paths are slash-separated and relative to the root.
type Source struct {
	root    string
	watcher *fsnotify.Watcher
}

// New creates a source over a local directory root.
func New(root string) (*Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat source root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, root)
	}
	return &Source{root: root}, nil
}

// Type returns the source type identifier.
func (s *Source) Type() string {
	return domain.SourceTypeFS
}

// Capabilities returns what this source supports.
func (s *Source) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{SupportsWatch: true}
}

// ListFiles returns the paths of all files under folder.
func (s *Source) ListFiles(_ context.Context, folder string) ([]string, error) {
	files, err := s.walk()
	if err != nil {
		return nil, err
	}

	var paths []string
	prefix := folder + "/"
	for path := range files {
		if folder == "" || path == folder || len(path) > len(prefix) && path[:len(prefix)] == prefix {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// ReadFile returns the bytes of one file.
func (s *Source) ReadFile(_ context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(path)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return content, nil
}

// DiffSince compares a fresh walk of the tree against the cursor.
// An undecodable cursor is treated as empty, reporting a full change
// set rather than failing the cycle.
func (s *Source) DiffSince(_ context.Context, cursor string) (*domain.ChangeSet, string, error) {
	previous, err := DecodeCursor(cursor)
	if err != nil {
		logger.Warn("Resetting invalid cursor: %v", err)
		previous = NewCursor()
	}

	current, err := s.walk()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrSourceUnreachable, err)
	}

	diff := &domain.ChangeSet{}
	for path, modTime := range current {
		if previous.Files[path] != modTime {
			diff.Changed = append(diff.Changed, path)
		}
	}
	for path := range previous.Files {
		if _, ok := current[path]; !ok {
			diff.Removed = append(diff.Removed, path)
		}
	}

	next := &Cursor{Version: CursorVersion, Files: current}
	return diff, next.Encode(), nil
}

// CommitInfo is unavailable for a plain directory.
func (s *Source) CommitInfo(_ context.Context, path string) (*domain.CommitInfo, error) {
	return nil, fmt.Errorf("%w: %s", domain.ErrNoHistory, path)
}

// Watch emits a notification on any file event under the root.
// Coalescing bursts into cycles is the synchroniser's concern.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	s.watcher = watcher

	// Watch the root and every subdirectory; fsnotify is not recursive.
	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch tree: %w", err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				// New directories must be added to the watch list.
				if event.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if err := watcher.Add(event.Name); err != nil {
							logger.Debug("Watch add %s: %v", event.Name, err)
						}
					}
				}
				select {
				case ch <- struct{}{}:
				default: // a notification is already pending
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error: %v", err)
			}
		}
	}()
	return ch, nil
}

// Close releases the watcher if one was started.
func (s *Source) Close() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// walk returns every file under the root mapped to its modification
// time, with slash-separated paths relative to the root.
func (s *Source) walk() (map[string]int64, error) {
	files := make(map[string]int64)
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = info.ModTime().UnixNano()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", s.root, err)
	}
	return files, nil
}
