package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(slug string, created time.Time, category string, tags ...string) *Post {
	return &Post{
		Slug: slug,
		Meta: PostMeta{
			Title:     slug,
			Category:  category,
			Tags:      tags,
			Published: true,
			CreatedAt: created,
			UpdatedAt: created,
		},
	}
}

func postMap(posts ...*Post) map[string]*Post {
	m := make(map[string]*Post, len(posts))
	for _, p := range posts {
		m[p.Slug] = p
	}
	return m
}

var (
	jan = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	feb = time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
	mar = time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
)

func TestNewPartition_ByDateOrder(t *testing.T) {
	p := NewPartition(postMap(
		post("oldest", jan, ""),
		post("newest", mar, ""),
		post("middle", feb, ""),
	))

	require.Len(t, p.ByDate, 3)
	assert.Equal(t, "newest", p.ByDate[0].Slug)
	assert.Equal(t, "middle", p.ByDate[1].Slug)
	assert.Equal(t, "oldest", p.ByDate[2].Slug)
}

func TestNewPartition_ByDateTieBrokenBySlug(t *testing.T) {
	p := NewPartition(postMap(
		post("banana", jan, ""),
		post("apple", jan, ""),
		post("cherry", jan, ""),
	))

	require.Len(t, p.ByDate, 3)
	assert.Equal(t, "apple", p.ByDate[0].Slug)
	assert.Equal(t, "banana", p.ByDate[1].Slug)
	assert.Equal(t, "cherry", p.ByDate[2].Slug)
}

func TestNewPartition_Aggregates(t *testing.T) {
	p := NewPartition(postMap(
		post("go-post", mar, "tech", "go", "testing"),
		post("cooking", feb, "food", "recipes"),
		post("plain", jan, ""),
	))

	// Category groups exclude posts without a category.
	require.Len(t, p.ByCategory, 2)
	assert.Equal(t, "go-post", p.ByCategory["tech"][0].Slug)
	assert.Equal(t, "cooking", p.ByCategory["food"][0].Slug)

	assert.Len(t, p.ByTag["go"], 1)
	assert.Len(t, p.ByTag["testing"], 1)
	assert.Len(t, p.ByTag["recipes"], 1)

	assert.Len(t, p.ByMonth["2024-03"], 1)
	assert.Len(t, p.ByMonth["2024-02"], 1)
	assert.Len(t, p.ByMonth["2024-01"], 1)
}

func TestNewPartition_GroupsInheritByDateOrder(t *testing.T) {
	p := NewPartition(postMap(
		post("old-tech", jan, "tech", "go"),
		post("new-tech", mar, "tech", "go"),
	))

	require.Len(t, p.ByCategory["tech"], 2)
	assert.Equal(t, "new-tech", p.ByCategory["tech"][0].Slug)
	assert.Equal(t, "new-tech", p.ByTag["go"][0].Slug)
}

func TestNewPartition_Empty(t *testing.T) {
	p := NewPartition(map[string]*Post{})
	assert.Empty(t, p.ByDate)
	assert.Empty(t, p.ByCategory)
	assert.Empty(t, p.ByTag)
	assert.Empty(t, p.ByMonth)
}

func TestMerge_PreservesPointerIdentity(t *testing.T) {
	untouched := post("untouched", jan, "")
	stale := post("updated", feb, "")
	fresh := post("updated", mar, "")

	merged := Merge(postMap(untouched, stale), nil, postMap(fresh))

	assert.Same(t, untouched, merged["untouched"])
	assert.Same(t, fresh, merged["updated"])
}

func TestMerge_RemovesSlugs(t *testing.T) {
	previous := postMap(post("keep", jan, ""), post("gone", feb, ""))

	merged := Merge(previous, []string{"gone"}, nil)

	assert.Len(t, merged, 1)
	assert.Contains(t, merged, "keep")
	// The input map is never mutated.
	assert.Len(t, previous, 2)
}

func TestMerge_RemovedThenRebuiltWins(t *testing.T) {
	replacement := post("both", mar, "")

	merged := Merge(postMap(post("both", jan, "")), []string{"both"}, postMap(replacement))

	assert.Same(t, replacement, merged["both"])
}

func TestMerge_NoChangesKeepsPreviousEntries(t *testing.T) {
	previous := postMap(post("first", jan, ""), post("second", feb, ""))

	merged := Merge(previous, nil, nil)

	assert.Equal(t, previous, merged)
	for slug, p := range previous {
		assert.Same(t, p, merged[slug])
	}
}

func TestMerge_NilPrevious(t *testing.T) {
	fresh := post("only", jan, "")
	merged := Merge(nil, nil, postMap(fresh))
	assert.Len(t, merged, 1)
	assert.Same(t, fresh, merged["only"])
}
