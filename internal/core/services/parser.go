package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gitpress-labs/gitpress/internal/core/domain"
	"github.com/gitpress-labs/gitpress/internal/core/ports/driven"
	"github.com/gitpress-labs/gitpress/internal/logger"
)

// frontMatterDelimiter separates an inline metadata block from the body.
const frontMatterDelimiter = "---"

// Parser turns one raw file plus optional metadata into a Post.
// It performs no I/O itself; content, metadata bytes and commit history
// are fetched by the caller.
type Parser struct {
	renderer driven.Renderer
	metadata driven.MetadataParser
}

// NewParser creates a parser with the given renderer and metadata parser.
func NewParser(renderer driven.Renderer, metadata driven.MetadataParser) *Parser {
	return &Parser{
		renderer: renderer,
		metadata: metadata,
	}
}

// Parse builds a Post from a file name, its raw bytes, an optional
// sibling metadata block and optional commit history.
//
// Title resolution order, first match wins: explicit front matter
// (sibling file, then inline block), leading heading line, humanised
// file name. Returns domain.ErrMalformedDocument for content that is
// not valid text.
func (p *Parser) Parse(
	ctx context.Context, fileName string, raw, metaBytes []byte, info *domain.CommitInfo,
) (*domain.Post, error) {
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrMalformedDocument, fileName)
	}

	body := normaliseNewlines(string(raw))

	// An inline block only counts when a sibling metadata file is absent;
	// otherwise it is stripped but the sibling fields win.
	inline, rest, hasInline := splitFrontMatter(body)
	if hasInline {
		body = rest
	}

	blockBytes := metaBytes
	if len(blockBytes) == 0 && hasInline {
		blockBytes = []byte(inline)
	}

	var fm *domain.FrontMatter
	if len(blockBytes) > 0 {
		parsed, err := p.metadata.Parse(blockBytes)
		if err != nil {
			// Treated as absent metadata; resolution falls through to
			// the heading and filename rules.
			logger.Warn("Ignoring front matter of %s: %v", fileName, err)
		} else {
			fm = parsed
		}
	}

	heading, body := stripLeadingHeading(body)

	slug := Slug(fileName)
	title := heading
	if fm != nil && fm.Title != "" {
		title = fm.Title
	}
	if title == "" {
		title = humanise(slug)
	}

	rendered, err := p.renderer.Render(ctx, []byte(body))
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", fileName, err)
	}

	meta := resolveMeta(title, fm, info)

	return &domain.Post{
		Slug:     slug,
		Path:     fileName,
		Raw:      raw,
		Rendered: rendered,
		Meta:     meta,
	}, nil
}

// resolveMeta combines front matter, commit history and defaults.
// Front matter fields override everything; commit history supplies
// timestamps and author; the current time is the last resort.
func resolveMeta(title string, fm *domain.FrontMatter, info *domain.CommitInfo) domain.PostMeta {
	now := time.Now()
	meta := domain.PostMeta{
		Title:     title,
		Published: true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if info != nil {
		meta.CreatedAt = info.CreatedAt
		meta.UpdatedAt = info.UpdatedAt
		meta.Author = info.Author
	}

	if fm == nil {
		return meta
	}

	meta.Category = fm.Category
	meta.TitleImage = fm.TitleImage
	if len(fm.Tags) > 0 {
		meta.Tags = append([]string(nil), fm.Tags...)
	}
	if fm.Published != nil {
		meta.Published = *fm.Published
	}
	if fm.Author != "" {
		meta.Author = fm.Author
	}
	if fm.CreatedAt != nil {
		meta.CreatedAt = *fm.CreatedAt
	}
	if fm.UpdatedAt != nil {
		meta.UpdatedAt = *fm.UpdatedAt
	}

	return meta
}

// Slug derives the partition-unique identity from a file name.
func Slug(fileName string) string {
	base := path.Base(fileName)
	return strings.TrimSuffix(base, path.Ext(base))
}

// splitFrontMatter extracts an inline metadata block delimited by "---"
// lines at the top of the content. Returns the block body, the content
// after the closing delimiter and whether a block was found.
func splitFrontMatter(content string) (block, rest string, ok bool) {
	if !strings.HasPrefix(content, frontMatterDelimiter+"\n") {
		return "", content, false
	}

	inner := content[len(frontMatterDelimiter)+1:]
	end := strings.Index(inner, "\n"+frontMatterDelimiter)
	if end < 0 {
		// Unterminated block: not a metadata block at all.
		return "", content, false
	}

	block = inner[:end]
	rest = inner[end+1+len(frontMatterDelimiter):]
	rest = strings.TrimPrefix(rest, "\n")
	return block, rest, true
}

// stripLeadingHeading removes a "# Title" line when it is the first
// non-blank line, returning the heading text and the remaining body.
func stripLeadingHeading(body string) (heading, rest string) {
	trimmed := strings.TrimLeft(body, "\n")
	line, remainder, _ := strings.Cut(trimmed, "\n")
	if text, ok := strings.CutPrefix(line, "# "); ok {
		return strings.TrimSpace(text), strings.TrimLeft(remainder, "\n")
	}
	return "", body
}

var titleCaser = cases.Title(language.Und)

// humanise turns a file base name into a display title:
// separators become spaces and each word is title-cased.
func humanise(slug string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return titleCaser.String(s)
}

// normaliseNewlines converts CRLF line endings so delimiter and heading
// detection only deal with "\n".
func normaliseNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
