package services

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/gitpress-labs/gitpress/internal/core/domain"
	"github.com/gitpress-labs/gitpress/internal/core/ports/driven"
	"github.com/gitpress-labs/gitpress/internal/logger"
)

// contentExtensions are the recognised content file extensions.
// Anything else is silently ignored by Build.
var contentExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// metaFileSuffix names the optional sibling metadata file:
// "welcome.md" may carry its block in "welcome.meta.yml".
const metaFileSuffix = ".meta.yml"

// Builder produces the slug-to-post map for a set of file names by
// invoking the parser per file. One bad document never blocks the rest
// of the collection.
type Builder struct {
	parser *Parser
}

// NewBuilder creates a builder around a parser.
func NewBuilder(parser *Parser) *Builder {
	return &Builder{parser: parser}
}

// Build parses the given files through the source and returns the
// resulting posts keyed by slug. Files with unrecognised extensions are
// skipped; files that fail to read or parse are excluded and logged.
func (b *Builder) Build(
	ctx context.Context, src driven.Source, files []string,
) map[string]*domain.Post {
	posts := make(map[string]*domain.Post, len(files))
	history := src.Capabilities().SupportsHistory

	for _, file := range files {
		if !IsContentFile(file) {
			continue
		}

		raw, err := src.ReadFile(ctx, file)
		if err != nil {
			// A file that vanished between diff and read is treated as
			// absent from the index, same as any other per-file failure.
			logger.Warn("Skipping %s: %v", file, err)
			continue
		}

		metaBytes, err := src.ReadFile(ctx, MetaFilePath(file))
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Ignoring sidecar metadata for %s: %v", file, err)
			metaBytes = nil
		}

		var info *domain.CommitInfo
		if history {
			info, err = src.CommitInfo(ctx, file)
			switch {
			case err == nil:
			case errors.Is(err, domain.ErrNoHistory):
				// Untracked files fall back to front matter or parse time.
				logger.Debug("No commit info for %s: %v", file, err)
				info = nil
			default:
				// A failed history lookup would stamp the post with the
				// wrong date, so it is excluded like a failed read.
				logger.Warn("Skipping %s: %v", file, err)
				continue
			}
		}

		post, err := b.parser.Parse(ctx, file, raw, metaBytes, info)
		if err != nil {
			logger.Warn("Skipping %s: %v", file, err)
			continue
		}
		posts[post.Slug] = post
	}

	return posts
}

// IsContentFile reports whether a path has a recognised content extension.
func IsContentFile(file string) bool {
	return contentExtensions[strings.ToLower(path.Ext(file))]
}

// MetaFilePath returns the sibling metadata file path for a content file.
func MetaFilePath(file string) string {
	ext := path.Ext(file)
	return strings.TrimSuffix(file, ext) + metaFileSuffix
}
