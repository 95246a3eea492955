package domain

import "time"

// Post represents one parsed content unit within a language partition.
// Posts are replaced wholesale when the source file changes, never
// field-mutated, so a *Post held by a reader is safe to use forever.
type Post struct {
	// Slug is the unique identity within a language partition,
	// derived from the file name without its extension.
	Slug string

	// Path is the source location used to re-read raw content.
	Path string

	// Raw is the original byte content as last read.
	Raw []byte

	// Rendered is the HTML body derived from Raw with metadata blocks
	// stripped and title resolution applied. It is recomputed whenever
	// Raw changes; it never reflects stale content.
	Rendered []byte

	// Meta holds the resolved post metadata.
	Meta PostMeta
}

// PostMeta holds the metadata resolved for a post, combining any
// explicit front matter with commit history and fallback rules.
type PostMeta struct {
	// Title is resolved in order: front matter, leading heading line,
	// humanised file name.
	Title string

	// Category is the optional post category. Empty when absent.
	Category string

	// Tags is the set of tags. Order is not significant.
	Tags []string

	// Published controls visibility in public list views.
	// Defaults to true when absent from front matter.
	Published bool

	// Author is the identity of the first committer of the file.
	// Empty when the source has no history for the file.
	Author string

	// CreatedAt is the first-commit time of the file, or the time of
	// parsing when the source has no history.
	CreatedAt time.Time

	// UpdatedAt is the latest-commit time of the file, or the time of
	// parsing when the source has no history.
	UpdatedAt time.Time

	// TitleImage is the optional path to a title image. Empty when absent.
	TitleImage string
}

// CommitInfo carries the version-control history for one file.
type CommitInfo struct {
	// CreatedAt is the time of the first commit touching the file.
	CreatedAt time.Time

	// UpdatedAt is the time of the latest commit touching the file.
	UpdatedAt time.Time

	// Author is the name of the first committer of the file.
	Author string
}

// FrontMatter holds the fields an explicit metadata block may provide.
// Pointer fields distinguish "absent" from a zero value so that absent
// fields fall through to the next resolution tier.
type FrontMatter struct {
	// Title overrides heading and filename title resolution.
	Title string

	// Category is the optional post category.
	Category string

	// Tags is the set of tags.
	Tags []string

	// Published overrides the default of true when present.
	Published *bool

	// Author overrides the first-committer author when present.
	Author string

	// CreatedAt overrides the first-commit time when present.
	CreatedAt *time.Time

	// UpdatedAt overrides the latest-commit time when present.
	UpdatedAt *time.Time

	// TitleImage is the optional path to a title image.
	TitleImage string
}
