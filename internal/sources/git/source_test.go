package git

import (
	"context"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpress-labs/gitpress/internal/core/domain"
)

type testRepo struct {
	t    *testing.T
	repo *gogit.Repository
	wt   *gogit.Worktree
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	repo, err := gogit.Init(memory.NewStorage(), memfs.New())
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &testRepo{t: t, repo: repo, wt: wt}
}

func (r *testRepo) write(path, content string) {
	r.t.Helper()
	require.NoError(r.t, util.WriteFile(r.wt.Filesystem, path, []byte(content), 0o644))
	_, err := r.wt.Add(path)
	require.NoError(r.t, err)
}

func (r *testRepo) remove(path string) {
	r.t.Helper()
	_, err := r.wt.Remove(path)
	require.NoError(r.t, err)
}

func (r *testRepo) commit(msg string, when time.Time) string {
	r.t.Helper()
	hash, err := r.wt.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{Name: "Ann Author", Email: "ann@example.com", When: when},
	})
	require.NoError(r.t, err)
	return hash.String()
}

var (
	day1 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	day2 = time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	day3 = time.Date(2024, 3, 9, 9, 0, 0, 0, time.UTC)
)

func TestListFiles_FiltersByFolder(t *testing.T) {
	r := newTestRepo(t)
	r.write("posts/en/a.md", "# A")
	r.write("posts/de/b.md", "# B")
	r.write("README.md", "readme")
	r.commit("initial", day1)

	src := NewFromRepository(r.repo)

	paths, err := src.ListFiles(context.Background(), "posts")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"posts/en/a.md", "posts/de/b.md"}, paths)

	all, err := src.ListFiles(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestReadFile(t *testing.T) {
	r := newTestRepo(t)
	r.write("posts/en/a.md", "# Hello")
	r.commit("initial", day1)

	src := NewFromRepository(r.repo)

	data, err := src.ReadFile(context.Background(), "posts/en/a.md")
	require.NoError(t, err)
	assert.Equal(t, "# Hello", string(data))

	_, err = src.ReadFile(context.Background(), "posts/en/missing.md")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDiffSince_EmptyCursorListsEverything(t *testing.T) {
	r := newTestRepo(t)
	r.write("posts/en/a.md", "# A")
	r.write("posts/en/b.md", "# B")
	head := r.commit("initial", day1)

	src := NewFromRepository(r.repo)

	diff, cursor, err := src.DiffSince(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, head, cursor)
	assert.ElementsMatch(t, []string{"posts/en/a.md", "posts/en/b.md"}, diff.Changed)
	assert.Empty(t, diff.Removed)
}

func TestDiffSince_Incremental(t *testing.T) {
	r := newTestRepo(t)
	r.write("posts/en/a.md", "# A")
	r.write("posts/en/b.md", "# B")
	first := r.commit("initial", day1)

	src := NewFromRepository(r.repo)

	// Unchanged head yields an empty diff and the same cursor.
	diff, cursor, err := src.DiffSince(context.Background(), first)
	require.NoError(t, err)
	assert.True(t, diff.Empty())
	assert.Equal(t, first, cursor)

	r.write("posts/en/b.md", "# B updated")
	r.write("posts/en/c.md", "# C")
	r.remove("posts/en/a.md")
	second := r.commit("update", day2)

	diff, cursor, err = src.DiffSince(context.Background(), first)
	require.NoError(t, err)
	assert.Equal(t, second, cursor)
	assert.ElementsMatch(t, []string{"posts/en/b.md", "posts/en/c.md"}, diff.Changed)
	assert.Equal(t, []string{"posts/en/a.md"}, diff.Removed)
}

func TestDiffSince_UnknownCursorRebuilds(t *testing.T) {
	r := newTestRepo(t)
	r.write("posts/en/a.md", "# A")
	head := r.commit("initial", day1)

	src := NewFromRepository(r.repo)

	diff, cursor, err := src.DiffSince(context.Background(), "0000000000000000000000000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, head, cursor)
	assert.Equal(t, []string{"posts/en/a.md"}, diff.Changed)
}

func TestCommitInfo(t *testing.T) {
	r := newTestRepo(t)
	r.write("posts/en/a.md", "# A")
	r.commit("add a", day1)
	r.write("posts/en/b.md", "# B")
	r.commit("add b", day2)
	r.write("posts/en/a.md", "# A updated")
	r.commit("update a", day3)

	src := NewFromRepository(r.repo)

	info, err := src.CommitInfo(context.Background(), "posts/en/a.md")
	require.NoError(t, err)
	assert.Equal(t, day1, info.CreatedAt.UTC())
	assert.Equal(t, day3, info.UpdatedAt.UTC())
	assert.Equal(t, "Ann Author", info.Author)

	info, err = src.CommitInfo(context.Background(), "posts/en/b.md")
	require.NoError(t, err)
	assert.Equal(t, day2, info.CreatedAt.UTC())
	assert.Equal(t, day2, info.UpdatedAt.UTC())

	_, err = src.CommitInfo(context.Background(), "posts/en/missing.md")
	assert.ErrorIs(t, err, domain.ErrNoHistory)
}

func TestCapabilities(t *testing.T) {
	r := newTestRepo(t)
	r.write("posts/en/a.md", "# A")
	r.commit("initial", day1)

	src := NewFromRepository(r.repo)
	caps := src.Capabilities()
	assert.True(t, caps.SupportsHistory)
	assert.False(t, caps.SupportsWatch)
	assert.Equal(t, domain.SourceTypeGit, src.Type())
}
