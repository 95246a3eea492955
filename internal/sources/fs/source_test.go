package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpress-labs/gitpress/internal/core/domain"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNew_RejectsMissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestListFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/en/a.md", "# A")
	writeFile(t, root, "posts/de/b.md", "# B")
	writeFile(t, root, "README.md", "readme")

	src, err := New(root)
	require.NoError(t, err)
	defer src.Close()

	files, err := src.ListFiles(context.Background(), "posts/en")
	require.NoError(t, err)
	assert.Equal(t, []string{"posts/en/a.md"}, files)
}

func TestReadFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/en/a.md", "hello")

	src, err := New(root)
	require.NoError(t, err)
	defer src.Close()

	content, err := src.ReadFile(context.Background(), "posts/en/a.md")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	_, err = src.ReadFile(context.Background(), "posts/en/missing.md")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDiffSince_FullThenIncremental(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/en/a.md", "# A")
	writeFile(t, root, "posts/en/b.md", "# B")

	src, err := New(root)
	require.NoError(t, err)
	defer src.Close()
	ctx := context.Background()

	diff, cursor, err := src.DiffSince(ctx, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"posts/en/a.md", "posts/en/b.md"}, diff.Changed)
	assert.Empty(t, diff.Removed)

	// Unchanged tree diffs empty against its own cursor.
	diff, cursor2, err := src.DiffSince(ctx, cursor)
	require.NoError(t, err)
	assert.True(t, diff.Empty())
	assert.Equal(t, cursor, cursor2)

	// Touch one file with a distinct mtime, remove another.
	future := time.Now().Add(2 * time.Second)
	path := filepath.Join(root, "posts", "en", "a.md")
	require.NoError(t, os.WriteFile(path, []byte("# A2"), 0o644))
	require.NoError(t, os.Chtimes(path, future, future))
	require.NoError(t, os.Remove(filepath.Join(root, "posts", "en", "b.md")))

	diff, _, err = src.DiffSince(ctx, cursor)
	require.NoError(t, err)
	assert.Equal(t, []string{"posts/en/a.md"}, diff.Changed)
	assert.Equal(t, []string{"posts/en/b.md"}, diff.Removed)
}

func TestDiffSince_InvalidCursorResets(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/en/a.md", "# A")

	src, err := New(root)
	require.NoError(t, err)
	defer src.Close()

	diff, _, err := src.DiffSince(context.Background(), "!!not-base64!!")
	require.NoError(t, err)
	assert.Equal(t, []string{"posts/en/a.md"}, diff.Changed)
}

func TestCommitInfo_NoHistory(t *testing.T) {
	root := t.TempDir()
	src, err := New(root)
	require.NoError(t, err)
	defer src.Close()

	_, err = src.CommitInfo(context.Background(), "posts/en/a.md")
	assert.ErrorIs(t, err, domain.ErrNoHistory)
}

func TestCursorRoundTrip(t *testing.T) {
	c := NewCursor()
	c.Files["posts/en/a.md"] = 12345

	decoded, err := DecodeCursor(c.Encode())
	require.NoError(t, err)
	assert.Equal(t, c.Files, decoded.Files)
	assert.Equal(t, CursorVersion, decoded.Version)
}

func TestDecodeCursor_Empty(t *testing.T) {
	c, err := DecodeCursor("")
	require.NoError(t, err)
	assert.Empty(t, c.Files)
}

func TestWatch_EmitsOnChange(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/en/a.md", "# A")

	src, err := New(root)
	require.NoError(t, err)
	defer src.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := src.Watch(ctx)
	require.NoError(t, err)

	writeFile(t, root, "posts/en/new.md", "# New")

	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a watch notification")
	}
}
