// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters):
//
//   - Parser: Turns one file's bytes plus optional metadata into a Post
//   - Builder: Builds the slug-to-post map for a set of file names
//   - IndexStore: Holds the atomically published snapshot
//   - Synchronizer: Runs the poll/diff/rebuild/publish cycle
//   - Query: Serves reads from the current snapshot
package services
