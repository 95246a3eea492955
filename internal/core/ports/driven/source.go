package driven

import (
	"context"

	"github.com/gitpress-labs/gitpress/internal/core/domain"
)

// Source provides access to the externally versioned source of truth.
// Each source variant (git, github, fs, memory) implements this
// interface; the variant is selected by configuration, never by type
// switching in core code.
type Source interface {
	// Type returns the source type identifier.
	Type() string

	// Capabilities returns what this source supports.
	Capabilities() SourceCapabilities

	// ListFiles returns the paths of all files under folder,
	// relative to the source root.
	ListFiles(ctx context.Context, folder string) ([]string, error)

	// ReadFile returns the raw bytes of one file.
	// Returns domain.ErrNotFound if the file does not exist.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// DiffSince returns the files changed and removed since the given
	// cursor, plus the new cursor to persist. An empty cursor means
	// "from the beginning": every current file is reported as changed.
	// Transient failures return domain.ErrSourceUnreachable.
	DiffSince(ctx context.Context, cursor string) (*domain.ChangeSet, string, error)

	// CommitInfo returns the version-control history for one file.
	// Returns domain.ErrNoHistory when the source cannot produce commit
	// times (uncommitted file, or a variant without history).
	CommitInfo(ctx context.Context, path string) (*domain.CommitInfo, error)

	// Watch emits a notification whenever the source may have changed,
	// letting the synchroniser run a cycle between ticks. Only available
	// if SupportsWatch is true; otherwise returns domain.ErrNotImplemented.
	Watch(ctx context.Context) (<-chan struct{}, error)

	// Close releases resources.
	Close() error
}

// SourceCapabilities describes what a source variant supports.
type SourceCapabilities struct {
	// SupportsHistory indicates CommitInfo can produce real commit
	// times and authors. When false every file parses with
	// current-time fallbacks.
	SupportsHistory bool

	// SupportsWatch indicates Watch can push change notifications.
	SupportsWatch bool
}
