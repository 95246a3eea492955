package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Client wraps the go-github client with helper methods.
type Client struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
}

// NewClientWithToken creates a GitHub client with a static access token.
// An empty token yields an unauthenticated client, good enough for
// public repositories at a much lower rate limit.
func NewClientWithToken(ctx context.Context, token string) *Client {
	if token == "" {
		return &Client{
			gh:          gh.NewClient(nil),
			rateLimiter: NewRateLimiter(),
		}
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	return &Client{
		gh:          gh.NewClient(tc),
		rateLimiter: NewRateLimiter(),
	}
}

// GetTree fetches the entire tree for a repository recursively.
// This is efficient for getting all file paths in one API call.
func (c *Client) GetTree(ctx context.Context, owner, repo, ref string) (*gh.Tree, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	tree, resp, err := c.gh.Git.GetTree(ctx, owner, repo, ref, true) // recursive=true
	if err != nil {
		return nil, c.wrapError(err, "get tree")
	}

	c.updateRateLimitFromResponse(resp)
	return tree, nil
}

// GetFileContent fetches the content of a file at ref.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path, ref string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.RepositoryContentGetOptions{Ref: ref}
	content, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return "", c.wrapError(err, "get contents")
	}

	c.updateRateLimitFromResponse(resp)

	if content == nil {
		return "", fmt.Errorf("path is a directory, not a file")
	}

	decoded, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode content: %w", err)
	}
	return decoded, nil
}

// ListCommits lists commits for a repository, newest first, following
// pagination. opts.Path restricts the log to one file; opts.SHA pins
// the branch.
func (c *Client) ListCommits(
	ctx context.Context, owner, repo string, opts *gh.CommitsListOptions,
) ([]*gh.RepositoryCommit, error) {
	var all []*gh.RepositoryCommit

	for {
		select {
		case <-ctx.Done():
			return all, ctx.Err()
		default:
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		commits, resp, err := c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
		if err != nil {
			return nil, c.wrapError(err, "list commits")
		}

		c.updateRateLimitFromResponse(resp)
		all = append(all, commits...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// HeadCommit returns the newest commit of a branch.
func (c *Client) HeadCommit(ctx context.Context, owner, repo, branch string) (*gh.RepositoryCommit, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.CommitsListOptions{
		SHA:         branch,
		ListOptions: gh.ListOptions{PerPage: 1},
	}
	commits, resp, err := c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		return nil, c.wrapError(err, "head commit")
	}

	c.updateRateLimitFromResponse(resp)

	if len(commits) == 0 {
		return nil, fmt.Errorf("head commit: empty repository")
	}
	return commits[0], nil
}

// CompareCommits compares two commits and returns the changed files,
// following pagination.
func (c *Client) CompareCommits(ctx context.Context, owner, repo, base, head string) ([]*gh.CommitFile, error) {
	var files []*gh.CommitFile

	opts := &gh.ListOptions{PerPage: 100}
	for {
		select {
		case <-ctx.Done():
			return files, ctx.Err()
		default:
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		cmp, resp, err := c.gh.Repositories.CompareCommits(ctx, owner, repo, base, head, opts)
		if err != nil {
			return nil, c.wrapError(err, "compare commits")
		}

		c.updateRateLimitFromResponse(resp)
		files = append(files, cmp.Files...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return files, nil
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		return &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
			URL:        ghErr.Response.Request.URL.String(),
		}
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   c.rateLimiter.ResetTime(),
			Remaining: c.rateLimiter.Remaining(),
			Limit:     c.rateLimiter.Limit(),
		}
	}

	return fmt.Errorf("%s: %w", operation, err)
}
