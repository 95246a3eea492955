// Package git provides the git-backed source of truth. The repository
// is reached through a local clone kept under the data directory (or an
// existing local repository opened in place). All reads come from the
// HEAD commit tree, never the worktree, so a half-edited checkout can
// never leak into the index. Diffs compare the cursor commit's tree
// against HEAD after a pull.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/gitpress-labs/gitpress/internal/core/domain"
	"github.com/gitpress-labs/gitpress/internal/core/ports/driven"
	"github.com/gitpress-labs/gitpress/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.Source = (*Source)(nil)

// Source is a go-git implementation of driven.Source.
type Source struct {
	repo      *gogit.Repository
	hasRemote bool
}

// New opens the source of truth at location. A local path holding a
// repository is opened in place; anything else is treated as a clone
// URL and cloned under dataDir (reusing an existing clone).
func New(location, dataDir string) (*Source, error) {
	if info, err := os.Stat(location); err == nil && info.IsDir() {
		repo, err := gogit.PlainOpen(location)
		if err != nil {
			return nil, fmt.Errorf("open repository %s: %w", location, err)
		}
		return newSource(repo), nil
	}

	cloneDir := filepath.Join(dataDir, "repo")
	repo, err := gogit.PlainOpen(cloneDir)
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		logger.Info("Cloning %s into %s", location, cloneDir)
		repo, err = gogit.PlainClone(cloneDir, false, &gogit.CloneOptions{URL: location})
	}
	if err != nil {
		return nil, fmt.Errorf("clone %s: %w", location, err)
	}
	return newSource(repo), nil
}

// NewFromRepository wraps an already opened repository. Used by tests
// with in-memory repositories.
func NewFromRepository(repo *gogit.Repository) *Source {
	return newSource(repo)
}

func newSource(repo *gogit.Repository) *Source {
	remotes, err := repo.Remotes()
	return &Source{
		repo:      repo,
		hasRemote: err == nil && len(remotes) > 0,
	}
}

// Type returns the source type identifier.
func (s *Source) Type() string {
	return domain.SourceTypeGit
}

// Capabilities returns what this source supports.
func (s *Source) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{SupportsHistory: true}
}

// ListFiles returns the paths of all files under folder at HEAD.
func (s *Source) ListFiles(_ context.Context, folder string) ([]string, error) {
	commit, err := s.head()
	if err != nil {
		return nil, err
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("head tree: %w", err)
	}

	var paths []string
	err = tree.Files().ForEach(func(f *object.File) error {
		if underFolder(f.Name, folder) {
			paths = append(paths, f.Name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk head tree: %w", err)
	}
	return paths, nil
}

// ReadFile returns the bytes of one file at HEAD.
func (s *Source) ReadFile(_ context.Context, path string) ([]byte, error) {
	commit, err := s.head()
	if err != nil {
		return nil, err
	}

	file, err := commit.File(path)
	if errors.Is(err, object.ErrFileNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return []byte(contents), nil
}

// DiffSince pulls from the remote (when one is configured) and diffs
// the cursor commit's tree against HEAD. The cursor is the commit hash;
// empty or unknown cursors report every current file as changed.
func (s *Source) DiffSince(ctx context.Context, cursor string) (*domain.ChangeSet, string, error) {
	if err := s.pull(ctx); err != nil {
		return nil, "", err
	}

	headCommit, err := s.head()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrSourceUnreachable, err)
	}
	newCursor := headCommit.Hash.String()

	if cursor == newCursor {
		return &domain.ChangeSet{}, newCursor, nil
	}

	if cursor != "" {
		if diff, err := s.diffCommits(cursor, headCommit); err == nil {
			return diff, newCursor, nil
		}
		// Unknown cursor commit (history rewritten): fall through to a
		// full listing.
		logger.Warn("Cursor %s not found in history, rebuilding from scratch", cursor)
	}

	all, err := s.ListFiles(ctx, "")
	if err != nil {
		return nil, "", err
	}
	return &domain.ChangeSet{Changed: all}, newCursor, nil
}

// CommitInfo walks the log for one file. The newest commit supplies
// UpdatedAt; the oldest supplies CreatedAt and the author.
func (s *Source) CommitInfo(_ context.Context, path string) (*domain.CommitInfo, error) {
	iter, err := s.repo.Log(&gogit.LogOptions{FileName: &path})
	if err != nil {
		return nil, fmt.Errorf("log %s: %w", path, err)
	}
	defer iter.Close()

	var newest, oldest *object.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if newest == nil {
			newest = c
		}
		oldest = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("log %s: %w", path, err)
	}
	if newest == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoHistory, path)
	}

	return &domain.CommitInfo{
		CreatedAt: oldest.Author.When,
		UpdatedAt: newest.Author.When,
		Author:    oldest.Author.Name,
	}, nil
}

// Watch is not supported; the git source is poll-only.
func (s *Source) Watch(context.Context) (<-chan struct{}, error) {
	return nil, domain.ErrNotImplemented
}

// Close releases resources.
func (s *Source) Close() error {
	return nil
}

// pull fast-forwards the clone. Network failures are reported as
// domain.ErrSourceUnreachable so the synchroniser retries next tick.
func (s *Source) pull(ctx context.Context) error {
	if !s.hasRemote {
		return nil
	}

	worktree, err := s.repo.Worktree()
	if err != nil {
		// A bare clone has nothing to pull into; serve what we have.
		logger.Debug("No worktree to pull: %v", err)
		return nil
	}

	err = worktree.PullContext(ctx, &gogit.PullOptions{})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("%w: pull: %v", domain.ErrSourceUnreachable, err)
	}
	return nil
}

func (s *Source) head() (*object.Commit, error) {
	ref, err := s.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	commit, err := s.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("head commit: %w", err)
	}
	return commit, nil
}

// diffCommits diffs the trees of the cursor commit and HEAD.
func (s *Source) diffCommits(cursor string, headCommit *object.Commit) (*domain.ChangeSet, error) {
	oldCommit, err := s.repo.CommitObject(plumbing.NewHash(cursor))
	if err != nil {
		return nil, fmt.Errorf("cursor commit %s: %w", cursor, err)
	}

	oldTree, err := oldCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("cursor tree: %w", err)
	}
	newTree, err := headCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("head tree: %w", err)
	}

	changes, err := object.DiffTree(oldTree, newTree)
	if err != nil {
		return nil, fmt.Errorf("diff trees: %w", err)
	}

	diff := &domain.ChangeSet{}
	for _, change := range changes {
		from, to := change.From.Name, change.To.Name
		switch {
		case from == "": // insert
			diff.Changed = append(diff.Changed, to)
		case to == "": // delete
			diff.Removed = append(diff.Removed, from)
		case from != to: // rename
			diff.Removed = append(diff.Removed, from)
			diff.Changed = append(diff.Changed, to)
		default: // modify
			diff.Changed = append(diff.Changed, to)
		}
	}
	return diff, nil
}

func underFolder(path, folder string) bool {
	return folder == "" || strings.HasPrefix(path, folder+"/")
}
