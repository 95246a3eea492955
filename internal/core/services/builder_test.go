package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpress-labs/gitpress/internal/core/domain"
	"github.com/gitpress-labs/gitpress/internal/core/ports/driven"
	"github.com/gitpress-labs/gitpress/internal/metadata/yaml"
	"github.com/gitpress-labs/gitpress/internal/render/markdown"
	"github.com/gitpress-labs/gitpress/internal/sources/memory"
)

func newTestBuilder() *Builder {
	return NewBuilder(NewParser(markdown.New(), yaml.New()))
}

func TestBuild_ParsesContentFiles(t *testing.T) {
	src := memory.New()
	src.Put("posts/en/hello.md", []byte("# Hello\n\nWorld."))
	src.Put("posts/en/other.markdown", []byte("Other body."))

	posts := newTestBuilder().Build(context.Background(), src,
		[]string{"posts/en/hello.md", "posts/en/other.markdown"})

	require.Len(t, posts, 2)
	assert.Equal(t, "Hello", posts["hello"].Meta.Title)
	assert.Equal(t, "Other", posts["other"].Meta.Title)
}

func TestBuild_SkipsUnrecognisedExtensions(t *testing.T) {
	src := memory.New()
	src.Put("posts/en/image.png", []byte{0x89, 0x50})
	src.Put("posts/en/hello.md", []byte("Body."))

	posts := newTestBuilder().Build(context.Background(), src,
		[]string{"posts/en/image.png", "posts/en/hello.md", "posts/en/notes.txt"})

	require.Len(t, posts, 1)
	assert.Contains(t, posts, "hello")
}

func TestBuild_SkipsFailedDocuments(t *testing.T) {
	src := memory.New()
	src.Put("posts/en/good.md", []byte("Body."))
	src.Put("posts/en/bad.md", []byte{0xff, 0xfe})

	posts := newTestBuilder().Build(context.Background(), src,
		[]string{"posts/en/good.md", "posts/en/bad.md", "posts/en/vanished.md"})

	// The bad document and the missing one are excluded; the rest build.
	require.Len(t, posts, 1)
	assert.Contains(t, posts, "good")
}

func TestBuild_SidecarMetadataApplied(t *testing.T) {
	src := memory.New()
	src.Put("posts/en/hello.md", []byte("# Inline Heading\n\nBody."))
	src.Put("posts/en/hello.meta.yml", []byte("title: Sidecar Title\ncategory: tech"))

	posts := newTestBuilder().Build(context.Background(), src, []string{"posts/en/hello.md"})

	require.Contains(t, posts, "hello")
	assert.Equal(t, "Sidecar Title", posts["hello"].Meta.Title)
	assert.Equal(t, "tech", posts["hello"].Meta.Category)
}

func TestBuild_CommitInfoApplied(t *testing.T) {
	src := memory.New()
	src.Put("posts/en/hello.md", []byte("Body."))
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	src.SetCommitInfo("posts/en/hello.md", domain.CommitInfo{
		CreatedAt: created, UpdatedAt: created, Author: "Ann Author",
	})

	posts := newTestBuilder().Build(context.Background(), src, []string{"posts/en/hello.md"})

	require.Contains(t, posts, "hello")
	assert.Equal(t, created, posts["hello"].Meta.CreatedAt)
	assert.Equal(t, "Ann Author", posts["hello"].Meta.Author)
}

// brokenHistorySource fails every commit lookup while reads succeed.
type brokenHistorySource struct {
	driven.Source
}

func (s *brokenHistorySource) CommitInfo(ctx context.Context, path string) (*domain.CommitInfo, error) {
	return nil, fmt.Errorf("%w: connection reset", domain.ErrSourceUnreachable)
}

func TestBuild_SkipsFilesWithFailedCommitLookup(t *testing.T) {
	inner := memory.New()
	inner.Put("posts/en/hello.md", []byte("Body."))
	src := &brokenHistorySource{Source: inner}

	posts := newTestBuilder().Build(context.Background(), src, []string{"posts/en/hello.md"})

	// A broken history lookup excludes the file rather than stamping it
	// with a wrong date.
	assert.Empty(t, posts)
}

func TestIsContentFile(t *testing.T) {
	assert.True(t, IsContentFile("posts/en/a.md"))
	assert.True(t, IsContentFile("posts/en/a.markdown"))
	assert.True(t, IsContentFile("posts/en/a.MD"))
	assert.False(t, IsContentFile("posts/en/a.meta.yml"))
	assert.False(t, IsContentFile("posts/en/a.png"))
	assert.False(t, IsContentFile("posts/en/a"))
}

func TestMetaFilePath(t *testing.T) {
	assert.Equal(t, "posts/en/a.meta.yml", MetaFilePath("posts/en/a.md"))
	assert.Equal(t, "posts/en/a.meta.yml", MetaFilePath("posts/en/a.markdown"))
}
