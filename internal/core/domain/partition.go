package domain

import "sort"

// MonthKeyFormat is the time layout for ByMonth aggregate keys.
const MonthKeyFormat = "2006-01"

// Partition holds the post map for one language plus derived aggregate
// views. Aggregates are pure functions of the post map and are recomputed
// wholesale on every publish; they are never patched incrementally.
type Partition struct {
	// Posts maps slug to post. It retains unpublished posts so they
	// remain available to privileged queries.
	Posts map[string]*Post

	// ByDate lists all posts sorted descending by CreatedAt, with ties
	// broken by slug ascending.
	ByDate []*Post

	// ByCategory groups posts by category, each list in ByDate order.
	// Posts without a category are not present in any group.
	ByCategory map[string][]*Post

	// ByTag groups posts by tag, each list in ByDate order.
	ByTag map[string][]*Post

	// ByMonth groups posts by "YYYY-MM" of CreatedAt, each list in
	// ByDate order.
	ByMonth map[string][]*Post
}

// NewPartition derives all aggregate views from a post map.
// The map is used as-is; callers must not mutate it afterwards.
func NewPartition(posts map[string]*Post) *Partition {
	p := &Partition{
		Posts:      posts,
		ByDate:     make([]*Post, 0, len(posts)),
		ByCategory: make(map[string][]*Post),
		ByTag:      make(map[string][]*Post),
		ByMonth:    make(map[string][]*Post),
	}

	for _, post := range posts {
		p.ByDate = append(p.ByDate, post)
	}
	sort.Slice(p.ByDate, func(i, j int) bool {
		a, b := p.ByDate[i], p.ByDate[j]
		if !a.Meta.CreatedAt.Equal(b.Meta.CreatedAt) {
			return a.Meta.CreatedAt.After(b.Meta.CreatedAt)
		}
		return a.Slug < b.Slug
	})

	// Grouped views are built from the sorted slice so every group
	// inherits ByDate ordering.
	for _, post := range p.ByDate {
		if post.Meta.Category != "" {
			p.ByCategory[post.Meta.Category] = append(p.ByCategory[post.Meta.Category], post)
		}
		for _, tag := range post.Meta.Tags {
			p.ByTag[tag] = append(p.ByTag[tag], post)
		}
		month := post.Meta.CreatedAt.Format(MonthKeyFormat)
		p.ByMonth[month] = append(p.ByMonth[month], post)
	}

	return p
}

// Merge produces a new post map equal to previous with removed slugs
// deleted and rebuilt entries inserted or overwritten. All other entries
// are carried over by reference, preserving pointer identity for posts
// that were not re-parsed.
func Merge(previous map[string]*Post, removed []string, rebuilt map[string]*Post) map[string]*Post {
	merged := make(map[string]*Post, len(previous)+len(rebuilt))
	for slug, post := range previous {
		merged[slug] = post
	}
	for _, slug := range removed {
		delete(merged, slug)
	}
	for slug, post := range rebuilt {
		merged[slug] = post
	}
	return merged
}
