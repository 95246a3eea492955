// Package github provides a source of truth backed by the GitHub REST
// API, for deployments that cannot keep a local clone. Reads and diffs
// go through the API with dual-strategy rate limiting; the cursor
// carries the last synchronised head commit SHA.
package github

import (
	"context"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v80/github"

	"github.com/gitpress-labs/gitpress/internal/core/domain"
	"github.com/gitpress-labs/gitpress/internal/core/ports/driven"
	"github.com/gitpress-labs/gitpress/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.Source = (*Source)(nil)

// Source is a GitHub API implementation of driven.Source.
type Source struct {
	client *Client
	owner  string
	repo   string
	branch string
}

// New creates a GitHub source from the configuration. The source
// location accepts "owner/repo" or a github.com URL.
func New(ctx context.Context, cfg *domain.Config) (*Source, error) {
	owner, repo, err := ParseLocation(cfg.SourceLocation)
	if err != nil {
		return nil, err
	}

	return &Source{
		client: NewClientWithToken(ctx, cfg.GitHubToken),
		owner:  owner,
		repo:   repo,
		branch: cfg.GitHubBranch,
	}, nil
}

// NewWithClient wraps an existing client. Used by tests.
func NewWithClient(client *Client, owner, repo, branch string) *Source {
	return &Source{client: client, owner: owner, repo: repo, branch: branch}
}

// ParseLocation extracts owner and repository from a source location.
func ParseLocation(location string) (owner, repo string, err error) {
	loc := strings.TrimSuffix(location, ".git")
	loc = strings.TrimPrefix(loc, "https://")
	loc = strings.TrimPrefix(loc, "http://")
	loc = strings.TrimPrefix(loc, "github.com/")
	loc = strings.Trim(loc, "/")

	parts := strings.Split(loc, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidLocation, location)
	}
	return parts[0], parts[1], nil
}

// Type returns the source type identifier.
func (s *Source) Type() string {
	return domain.SourceTypeGitHub
}

// Capabilities returns what this source supports.
func (s *Source) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{SupportsHistory: true}
}

// ListFiles returns the paths of all files under folder at the branch
// head, using one recursive tree call.
func (s *Source) ListFiles(ctx context.Context, folder string) ([]string, error) {
	tree, err := s.client.GetTree(ctx, s.owner, s.repo, s.ref())
	if err != nil {
		return nil, s.asUnreachable(err)
	}

	var paths []string
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		if path := entry.GetPath(); underFolder(path, folder) {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// ReadFile returns the bytes of one file at the branch head.
func (s *Source) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := s.client.GetFileContent(ctx, s.owner, s.repo, path, s.branch)
	if IsNotFound(err) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	if err != nil {
		return nil, s.asUnreachable(err)
	}
	return []byte(content), nil
}

// DiffSince compares the cursor commit against the branch head. Empty
// or stale cursors fall back to reporting every current file as
// changed.
func (s *Source) DiffSince(ctx context.Context, cursor string) (*domain.ChangeSet, string, error) {
	prev, err := DecodeCursor(cursor)
	if err != nil {
		logger.Warn("Invalid cursor, rebuilding from scratch: %v", err)
		prev = NewCursor()
	}

	head, err := s.client.HeadCommit(ctx, s.owner, s.repo, s.branch)
	if err != nil {
		return nil, "", s.asUnreachable(err)
	}
	headSHA := head.GetSHA()
	newCursor := (&Cursor{Version: CursorVersion, HeadSHA: headSHA}).Encode()

	if prev.HeadSHA == headSHA {
		return &domain.ChangeSet{}, newCursor, nil
	}

	if prev.HeadSHA != "" {
		files, err := s.client.CompareCommits(ctx, s.owner, s.repo, prev.HeadSHA, headSHA)
		if err == nil {
			return diffFromCommitFiles(files), newCursor, nil
		}
		if !IsNotFound(err) {
			return nil, "", s.asUnreachable(err)
		}
		// Cursor commit no longer exists (force push): full rebuild.
		logger.Warn("Cursor commit %s not found, rebuilding from scratch", prev.HeadSHA)
	}

	all, err := s.ListFiles(ctx, "")
	if err != nil {
		return nil, "", err
	}
	return &domain.ChangeSet{Changed: all}, newCursor, nil
}

// CommitInfo walks the commit log for one file. The newest commit
// supplies UpdatedAt; the oldest supplies CreatedAt and the author.
func (s *Source) CommitInfo(ctx context.Context, path string) (*domain.CommitInfo, error) {
	opts := &gh.CommitsListOptions{
		SHA:         s.branch,
		Path:        path,
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	commits, err := s.client.ListCommits(ctx, s.owner, s.repo, opts)
	if err != nil {
		return nil, s.asUnreachable(err)
	}
	if len(commits) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoHistory, path)
	}

	newest := commits[0].GetCommit().GetAuthor()
	oldest := commits[len(commits)-1].GetCommit().GetAuthor()

	return &domain.CommitInfo{
		CreatedAt: oldest.GetDate().Time,
		UpdatedAt: newest.GetDate().Time,
		Author:    oldest.GetName(),
	}, nil
}

// Watch is not supported; the GitHub source is poll-only.
func (s *Source) Watch(context.Context) (<-chan struct{}, error) {
	return nil, domain.ErrNotImplemented
}

// Close releases resources.
func (s *Source) Close() error {
	return nil
}

// ref is the tree reference to read from.
func (s *Source) ref() string {
	if s.branch != "" {
		return s.branch
	}
	return "HEAD"
}

// asUnreachable folds transport, API and rate limit failures into
// domain.ErrSourceUnreachable so the synchroniser retries next tick.
// Exhausted rate limits are called out separately; the message carries
// the reset time.
func (s *Source) asUnreachable(err error) error {
	if err == nil {
		return nil
	}
	if IsRateLimited(err) {
		logger.Warn("GitHub rate limit exhausted, retrying next tick: %v", err)
	}
	return fmt.Errorf("%w: %v", domain.ErrSourceUnreachable, err)
}

func diffFromCommitFiles(files []*gh.CommitFile) *domain.ChangeSet {
	diff := &domain.ChangeSet{}
	for _, f := range files {
		switch f.GetStatus() {
		case "removed":
			diff.Removed = append(diff.Removed, f.GetFilename())
		case "renamed":
			diff.Removed = append(diff.Removed, f.GetPreviousFilename())
			diff.Changed = append(diff.Changed, f.GetFilename())
		default:
			diff.Changed = append(diff.Changed, f.GetFilename())
		}
	}
	return diff
}

func underFolder(path, folder string) bool {
	return folder == "" || strings.HasPrefix(path, folder+"/")
}
