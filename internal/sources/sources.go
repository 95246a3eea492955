// Package sources provides implementations of the Source interface for
// the supported sources of truth. Each source knows how to list, read
// and diff the content repository for a specific backend (git clone,
// GitHub API, plain filesystem, in-memory fixture).
package sources

import (
	"context"
	"fmt"

	"github.com/gitpress-labs/gitpress/internal/core/domain"
	"github.com/gitpress-labs/gitpress/internal/core/ports/driven"
	fssource "github.com/gitpress-labs/gitpress/internal/sources/fs"
	gitsource "github.com/gitpress-labs/gitpress/internal/sources/git"
	githubsource "github.com/gitpress-labs/gitpress/internal/sources/github"
	memorysource "github.com/gitpress-labs/gitpress/internal/sources/memory"
)

// New creates the source named by the configuration.
func New(ctx context.Context, cfg *domain.Config) (driven.Source, error) {
	switch cfg.SourceType {
	case domain.SourceTypeGit:
		return gitsource.New(cfg.SourceLocation, cfg.DataDir)
	case domain.SourceTypeGitHub:
		return githubsource.New(ctx, cfg)
	case domain.SourceTypeFS:
		return fssource.New(cfg.SourceLocation)
	case domain.SourceTypeMemory:
		return memorysource.New(), nil
	default:
		return nil, fmt.Errorf("%w: unknown source type %q", domain.ErrInvalidInput, cfg.SourceType)
	}
}
