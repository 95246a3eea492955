package driven

import "github.com/gitpress-labs/gitpress/internal/core/domain"

// MetadataParser parses a structured metadata block (front matter).
// Returns domain.ErrInvalidFrontMatter when the bytes are not a valid
// block; callers treat that as absent metadata, never as a fatal error.
type MetadataParser interface {
	// Parse decodes a metadata block.
	Parse(data []byte) (*domain.FrontMatter, error)
}
