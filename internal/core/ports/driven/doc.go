// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Source: Lists, reads and diffs files in the source of truth
//   - Renderer: Converts markdown bytes to HTML bytes
//   - MetadataParser: Parses front matter blocks
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any source, render or metadata adapter package
package driven
