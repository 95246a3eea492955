package domain

import (
	"fmt"
	"time"
)

// Source type identifiers for configuration.
const (
	// SourceTypeGit is a git repository reached through a local clone.
	SourceTypeGit = "git"

	// SourceTypeGitHub is a repository reached through the GitHub API.
	SourceTypeGitHub = "github"

	// SourceTypeFS is a plain local directory without version history.
	SourceTypeFS = "fs"

	// SourceTypeMemory is the in-memory fixture source used in tests.
	SourceTypeMemory = "memory"
)

// DefaultPollInterval is used when no poll interval is configured.
const DefaultPollInterval = 60 * time.Second

// Config holds the engine configuration.
type Config struct {
	// SourceType selects the source variant (git, github, fs, memory).
	SourceType string

	// SourceLocation is the URI or path of the source of truth:
	// a clone URL or local path for git, "owner/repo" for github,
	// a directory for fs.
	SourceLocation string

	// ContentFolder is the path within the source that holds content.
	// Each language has a subfolder: <ContentFolder>/<lang>.
	ContentFolder string

	// Languages lists the configured language tags.
	Languages []string

	// PollingEnabled controls the background refresh loop. When false
	// the index is built exactly once at startup and never refreshed.
	PollingEnabled bool

	// PollInterval is the time between change checks.
	PollInterval time.Duration

	// DataDir is where the git variant keeps its local clone.
	DataDir string

	// GitHubToken authenticates the github variant. Optional; without
	// it requests run against the unauthenticated rate limit.
	GitHubToken string

	// GitHubBranch is the branch the github variant reads. Empty means
	// the repository's default branch.
	GitHubBranch string
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.SourceType {
	case SourceTypeGit, SourceTypeGitHub, SourceTypeFS, SourceTypeMemory:
	default:
		return fmt.Errorf("%w: source type %q", ErrUnsupportedType, c.SourceType)
	}
	if c.SourceType != SourceTypeMemory && c.SourceLocation == "" {
		return fmt.Errorf("%w: source location is required", ErrInvalidInput)
	}
	if len(c.Languages) == 0 {
		return fmt.Errorf("%w: at least one language is required", ErrInvalidInput)
	}
	if c.PollingEnabled && c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive", ErrInvalidInput)
	}
	return nil
}

// DefaultConfig returns sensible defaults. SourceLocation must still be
// provided by the user.
func DefaultConfig() Config {
	return Config{
		SourceType:     SourceTypeGit,
		ContentFolder:  "posts",
		Languages:      []string{"en"},
		PollingEnabled: true,
		PollInterval:   DefaultPollInterval,
	}
}
