package services

import (
	"context"
	"fmt"

	"github.com/gitpress-labs/gitpress/internal/core/domain"
	"github.com/gitpress-labs/gitpress/internal/core/ports/driving"
)

// Ensure Query implements the interface.
var _ driving.QueryService = (*Query)(nil)

// Query serves reads from the currently published snapshot. Each call
// resolves the snapshot reference once and answers entirely from it, so
// a concurrent publish can never leak mixed state into one query.
type Query struct {
	store *IndexStore
}

// NewQuery creates a query service over an index store.
func NewQuery(store *IndexStore) *Query {
	return &Query{store: store}
}

// Get retrieves a post by language and slug. Unpublished posts are
// returned; only list views filter them.
func (q *Query) Get(_ context.Context, lang, slug string) (*domain.Post, error) {
	partition, ok := q.store.Current().Partition(lang)
	if !ok {
		return nil, fmt.Errorf("%w: language %q", domain.ErrNotFound, lang)
	}
	post, ok := partition.Posts[slug]
	if !ok {
		return nil, fmt.Errorf("%w: post %q", domain.ErrNotFound, slug)
	}
	return post, nil
}

// List returns posts ordered by CreatedAt descending, filtered and
// paginated per the options.
func (q *Query) List(_ context.Context, lang string, opts driving.ListOptions) ([]*domain.Post, error) {
	partition, ok := q.store.Current().Partition(lang)
	if !ok {
		return nil, fmt.Errorf("%w: language %q", domain.ErrNotFound, lang)
	}

	// The narrowest aggregate serves as the base list; remaining filters
	// are applied on top. Every aggregate is already in ByDate order.
	base := partition.ByDate
	switch {
	case opts.Category != "":
		base = partition.ByCategory[opts.Category]
	case opts.Tag != "":
		base = partition.ByTag[opts.Tag]
	case opts.YearMonth != "":
		base = partition.ByMonth[opts.YearMonth]
	}

	matched := make([]*domain.Post, 0, len(base))
	for _, post := range base {
		if opts.PublishedOnly && !post.Meta.Published {
			continue
		}
		if opts.Category != "" && post.Meta.Category != opts.Category {
			continue
		}
		if opts.Tag != "" && !hasTag(post, opts.Tag) {
			continue
		}
		if opts.YearMonth != "" && post.Meta.CreatedAt.Format(domain.MonthKeyFormat) != opts.YearMonth {
			continue
		}
		matched = append(matched, post)
	}

	// Negative pagination values behave like zero.
	offset := max(opts.Offset, 0)
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func hasTag(post *domain.Post, tag string) bool {
	for _, t := range post.Meta.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
