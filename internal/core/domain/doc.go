// Package domain defines the core business entities for gitpress.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Post: A parsed blog post with metadata and rendered body
//   - Partition: The per-language post map plus derived aggregate views
//   - Snapshot: One immutable, fully built index value
//   - ChangeSet: The outcome of a diff against the source of truth
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
