package driving

import (
	"context"

	"github.com/gitpress-labs/gitpress/internal/core/domain"
)

// QueryService provides read access to the published index.
// Every call is served from one consistent snapshot; callers never
// observe a mix of old and new state and never block on a running
// synchronisation cycle.
type QueryService interface {
	// Get retrieves a post by language and slug. Unpublished posts are
	// returned; visibility filtering applies to List only.
	// Returns domain.ErrNotFound as a normal negative result.
	Get(ctx context.Context, lang, slug string) (*domain.Post, error)

	// List returns posts for a language ordered by CreatedAt descending,
	// filtered and paginated per the options.
	List(ctx context.Context, lang string, opts ListOptions) ([]*domain.Post, error)
}

// ListOptions filters and paginates a List query. Filters compose;
// pagination applies after filtering.
type ListOptions struct {
	// PublishedOnly excludes posts with Published = false.
	PublishedOnly bool

	// Category restricts to one category when non-empty.
	Category string

	// Tag restricts to one tag when non-empty.
	Tag string

	// YearMonth restricts to one "YYYY-MM" bucket when non-empty.
	YearMonth string

	// Limit caps the number of results. Zero means no limit.
	Limit int

	// Offset skips results from the start.
	Offset int
}
